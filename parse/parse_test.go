package parse

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdevelop/gdser/encode"
	"github.com/gdevelop/gdser/format"
	"github.com/gdevelop/gdser/sertree"
)

func TestParseJSON(t *testing.T) {
	e, err := Parse([]byte(`{"name": "Hero","hp": 100,"tags": ["a","b"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := e.StringAttribute("name", ""); got != "Hero" {
		t.Errorf("name: %q", got)
	}
	hp := e.Child("hp").Value()
	if !hp.IsDouble() || hp.Int() != 100 {
		t.Errorf("hp: %v %s", hp, hp.Type())
	}
	tags := e.Child("tags")
	if tags.IsArray() {
		t.Error("parser must not set array mode")
	}
	if n := len(tags.Children()); n != 2 {
		t.Fatalf("tags: %d children", n)
	}
	tags.ConsiderAsArrayOf("tag")
	if got := tags.Item(1).StringValue(); got != "b" {
		t.Errorf("tags[1]: %q", got)
	}
}

func TestParseJSONValues(t *testing.T) {
	tests := []struct {
		in   string
		typ  sertree.ValueType
		want string
	}{
		{`"x"`, sertree.StringType, "x"},
		{`true`, sertree.BooleanType, "true"},
		{`false`, sertree.BooleanType, "false"},
		{`null`, sertree.UndefinedType, ""},
		{`12`, sertree.DoubleType, "12"},
		{`-1.5e2`, sertree.DoubleType, "-150"},
		{`12abc`, sertree.DoubleType, "12"},
		{`abc`, sertree.DoubleType, "0"},
		{`"q\"b\\c\né😀\/"`, sertree.StringType, "q\"b\\c\né😀/"},
		{`"\u00e9\ud83d\ude00"`, sertree.StringType, "é😀"},
		{`"lone\ud83d"`, sertree.StringType, "lone\ufffd"},
		{`"tab\there"`, sertree.StringType, "tab\there"},
		{`"bad\u00zz"`, sertree.StringType, "badu00zz"},
		{`"unknown\q"`, sertree.StringType, "unknownq"},
		{`"héros"`, sertree.StringType, "héros"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := Parse([]byte(tt.in), ParseJSON())
			if err != nil {
				t.Fatal(err)
			}
			v := e.Value()
			if v.Type() != tt.typ || v.String() != tt.want {
				t.Errorf("got %s %q, want %s %q", v.Type(), v.String(), tt.typ, tt.want)
			}
		})
	}
}

func TestParseJSONNested(t *testing.T) {
	e, err := Parse([]byte(` [1, [2,3] ,{"a":[]}, [[]]]`))
	if err != nil {
		t.Fatal(err)
	}
	c := e.Children()
	if len(c) != 4 {
		t.Fatalf("%d children", len(c))
	}
	if len(c[1].Element.Children()) != 2 {
		t.Error("nested array")
	}
	if !c[2].Element.HasChild("a") {
		t.Error("nested object")
	}
	if len(c[3].Element.Children()) != 1 {
		t.Error("array in array")
	}
	for _, x := range c {
		if x.Name != "" {
			t.Errorf("array item named %q", x.Name)
		}
	}
}

func TestParseJSONLenient(t *testing.T) {
	logs := bytes.NewBuffer(nil)
	sertree.SetLogger(slog.New(slog.NewTextHandler(logs, nil)))
	defer sertree.SetLogger(nil)

	tests := []struct {
		name     string
		in       string
		children int
	}{
		{"blank", "", 0},
		{"spaces", " \n\t ", 0},
		{"bom", "\xef\xbb\xbf{\"a\": 1}", 1},
		{"unterminated object", `{"a": 1`, 0},
		{"missing colon", `{"a" 1}`, 0},
		{"unquoted key", `{a: 1}`, 0},
		{"unterminated string", `{"a": "b}`, 0},
		{"stray close", `}`, 0},
		{"trailing data", `{"a": 1} garbage`, 1},
		{"trailing comma", `[1,2,]`, 2},
		{"trailing comma object", `{"a":1,}`, 1},
		{"too deep", strings.Repeat("[", MaxDepth+5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse([]byte(tt.in), ParseJSON())
			if err != nil {
				t.Fatalf("lenient parse failed: %v", err)
			}
			if e == nil {
				t.Fatal("nil tree")
			}
			if n := len(e.Children()); n != tt.children {
				t.Errorf("%d children, want %d", n, tt.children)
			}
		})
	}
	if !strings.Contains(logs.String(), "malformed JSON") {
		t.Errorf("no diagnostic logged: %q", logs.String())
	}
}

func TestParseJSONStrict(t *testing.T) {
	bad := []string{
		`{"a": 1`,
		`{"a" 1}`,
		`{"a": 1} garbage`,
		`[1,2,]`,
		`{"a": abc}`,
		`"bad\q"`,
		`"bad\u12"`,
		strings.Repeat("[", MaxDepth+5),
	}
	for _, in := range bad {
		if _, err := Parse([]byte(in), ParseJSON(), ParseStrict()); !errors.Is(err, ErrParse) {
			t.Errorf("%.20q: got %v, want ErrParse", in, err)
		}
	}
	good := []string{``, `{}`, `[1, 2.5e3, -0]`, `{"a": {"b": null}} `}
	for _, in := range good {
		if _, err := Parse([]byte(in), ParseJSON(), ParseStrict()); err != nil {
			t.Errorf("%q: %v", in, err)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		in   []byte
		want format.Format
	}{
		{[]byte(`{"a":1}`), format.JSONFormat},
		{[]byte(""), format.JSONFormat},
		{[]byte("  \n<?xml version=\"1.0\"?><project/>"), format.XMLFormat},
		{[]byte("\xef\xbb\xbf<project/>"), format.XMLFormat},
		{encode.AppendBinary(nil, sertree.New()), format.BinaryFormat},
	}
	for _, tt := range tests {
		if got := Detect(tt.in); got != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseXML(t *testing.T) {
	logs := bytes.NewBuffer(nil)
	sertree.SetLogger(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelWarn})))
	defer sertree.SetLogger(nil)

	in := `<?xml version="1.0" encoding="UTF-8"?>
<project name="Hero" hp="100" visible="false">
  <tags>
    <tag>a</tag>
    <tag>b</tag>
  </tags>
  <description>  spaced  </description>
  <empty/>
</project>
`
	e, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := e.Attribute("name"); !v.IsUndefined() || v.String() != "Hero" {
		t.Errorf("attributes should be opaque: %s %q", v.Type(), v.String())
	}
	if e.IntAttribute("hp", 0) != 100 || e.BoolAttribute("visible", true) {
		t.Error("typed attribute reads")
	}
	if !e.IsValueUndefined() {
		t.Errorf("layout whitespace read as a value: %q", e.StringValue())
	}
	tags := e.Child("tags").ConsiderAsArrayOf("tag")
	if tags.ChildrenCount("") != 2 || tags.Item(1).StringValue() != "b" {
		t.Error("tags")
	}
	if got := e.Child("description").StringValue(); got != "  spaced  " {
		t.Errorf("text: %q", got)
	}
	if !e.Child("empty").IsEmpty() {
		t.Error("empty element")
	}
	if logs.Len() != 0 {
		t.Errorf("warnings while reading XML: %s", logs)
	}
}

func TestParseXMLRoots(t *testing.T) {
	for _, root := range DefaultXMLRoots {
		if _, err := Parse([]byte("<"+root+"/>"), ParseXMLRoots(DefaultXMLRoots...)); err != nil {
			t.Errorf("%s: %v", root, err)
		}
	}
	if _, err := Parse([]byte("<other/>"), ParseXMLRoots(DefaultXMLRoots...)); !errors.Is(err, ErrParse) {
		t.Errorf("unexpected root accepted: %v", err)
	}
	if _, err := Parse([]byte("<other/>")); err != nil {
		t.Errorf("any root without restriction: %v", err)
	}
	if _, err := Parse([]byte(`<project attr=unquoted/>`)); !errors.Is(err, ErrParse) {
		t.Errorf("syntax error: %v", err)
	}
	e, err := Parse([]byte(" "), ParseXML())
	if err != nil || !e.IsEmpty() {
		t.Errorf("blank XML: %v", err)
	}
}

func TestParseYAML(t *testing.T) {
	in := `name: Hero
hp: 100
speed: 2.5
alive: true
tags:
  - a
  - b
nothing: null
layer: x
layer: y
`
	e, err := Parse([]byte(in), ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Child("hp").Value(); !got.IsInt() || got.Int() != 100 {
		t.Errorf("hp: %s %v", got.Type(), got)
	}
	if e.DoubleAttribute("speed", 0) != 2.5 || !e.BoolAttribute("alive", false) {
		t.Error("scalars")
	}
	if e.StringAttribute("name", "") != "Hero" {
		t.Error("name")
	}
	if n := len(e.Child("tags").Children()); n != 2 {
		t.Errorf("tags: %d", n)
	}
	if !e.Child("nothing").IsValueUndefined() {
		t.Error("null")
	}
	if e.ChildrenCount("layer") != 2 {
		t.Error("repeated keys")
	}
	names := []string{}
	for _, c := range e.Children() {
		names = append(names, c.Name)
	}
	if got := strings.Join(names, ","); got != "name,hp,speed,alive,tags,nothing,layer,layer" {
		t.Errorf("order: %s", got)
	}
	if _, err := Parse([]byte("a: [1,"), ParseYAML()); !errors.Is(err, ErrParse) {
		t.Errorf("bad yaml: %v", err)
	}
}
