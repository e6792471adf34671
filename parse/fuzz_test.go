package parse

import (
	"bytes"
	"testing"

	"github.com/gdevelop/gdser/encode"
	"github.com/gdevelop/gdser/format"
	"github.com/gdevelop/gdser/sertree"
	"github.com/gdevelop/gdser/wire"
)

func FuzzParseJSON(f *testing.F) {
	seeds := []string{
		``,
		`null`,
		`true`,
		`42`,
		`-1e10`,
		`"hello"`,
		`"esc \" \\ \n é 😀"`,
		`[]`,
		`[1, [2, [3]]]`,
		`{}`,
		`{"a": 1, "b": {"c": [true, false, null]}}`,
		`{"name": "Hero","hp": 100,"tags": ["a","b"]}`,
		`{"a": 1,}`,
		`{"a" 1}`,
		`[[[[`,
		`12abc`,
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		if wire.IsCompressed(data) {
			return
		}
		// lenient parsing accepts any uncompressed input
		e, err := Parse(data, ParseJSON())
		if err != nil {
			t.Fatalf("lenient parse failed: %v", err)
		}
		if e == nil {
			t.Fatal("nil tree")
		}
		strict, err := Parse(data, ParseJSON(), ParseStrict())
		if err != nil {
			return
		}
		// a strictly valid document survives encoding
		var buf bytes.Buffer
		if err := encode.Encode(strict, &buf); err != nil {
			t.Fatal(err)
		}
		if _, err := Parse(buf.Bytes(), ParseJSON(), ParseStrict()); err != nil {
			t.Fatalf("re-parse of %q failed: %v", buf.String(), err)
		}
	})
}

func FuzzParseBinary(f *testing.F) {
	e := sertree.New()
	e.SetStringAttribute("name", "Hero")
	e.AddChild("tags").ConsiderAsArrayOf("tag").AddChild("").SetDoubleValue(1.5)
	f.Add(encode.AppendBinary(nil, e))
	f.Add(encode.AppendBinary(nil, sertree.New()))

	f.Fuzz(func(t *testing.T, data []byte) {
		res, err := Parse(data, ParseFormat(format.BinaryFormat))
		if err != nil {
			if res != nil {
				t.Fatal("partial tree returned with an error")
			}
			return
		}
		again, err := Parse(encode.AppendBinary(nil, res), ParseBinary())
		if err != nil {
			t.Fatalf("re-encoded payload rejected: %v", err)
		}
		if !sertree.Equal(res, again) {
			t.Fatal("re-encoded payload differs")
		}
	})
}
