package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestPrimitives(t *testing.T) {
	var d []byte
	d = AppendHeader(d)
	d = AppendTag(d, NodeElement)
	d = AppendUint32(d, 7)
	d = AppendBool(d, true)
	d = AppendInt64(d, math.MinInt64)
	d = AppendFloat64(d, -0.5)
	d = AppendString(d, "héros")
	d = AppendString(d, "")

	r := NewReader(d)
	if err := r.Header(); err != nil {
		t.Fatal(err)
	}
	if tag, err := r.Tag(); err != nil || tag != NodeElement {
		t.Fatalf("tag %v %v", tag, err)
	}
	if n, err := r.Uint32(); err != nil || n != 7 {
		t.Fatalf("u32 %v %v", n, err)
	}
	if b, err := r.Bool(); err != nil || !b {
		t.Fatalf("bool %v %v", b, err)
	}
	if i, err := r.Int64(); err != nil || i != math.MinInt64 {
		t.Fatalf("int %v %v", i, err)
	}
	if f, err := r.Float64(); err != nil || f != -0.5 {
		t.Fatalf("float %v %v", f, err)
	}
	if s, err := r.String(); err != nil || s != "héros" {
		t.Fatalf("string %q %v", s, err)
	}
	if s, err := r.String(); err != nil || s != "" {
		t.Fatalf("empty string %q %v", s, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("%d bytes left", r.Remaining())
	}
	if _, err := r.Tag(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("read past end: %v", err)
	}
}

func TestHeader(t *testing.T) {
	good := AppendHeader(nil)
	if !bytes.Equal(good, []byte{0x53, 0x42, 0x44, 0x47, 1, 0, 0, 0}) {
		t.Fatalf("header bytes % x", good)
	}
	tests := []struct {
		name string
		in   []byte
		err  error
	}{
		{"zero magic", make([]byte, 8), ErrBadMagic},
		{"version 2", append(AppendUint32(nil, Magic), 2, 0, 0, 0), ErrBadVersion},
		{"short", good[:6], ErrTruncated},
		{"empty", nil, ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewReader(tt.in).Header(); !errors.Is(err, tt.err) {
				t.Errorf("got %v, want %v", err, tt.err)
			}
		})
	}
}

func TestStringLengthBeyondInput(t *testing.T) {
	d := AppendUint32(nil, 1<<31)
	d = append(d, "abc"...)
	r := NewReader(d)
	if _, err := r.String(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("got %v", err)
	}
}

func TestCount(t *testing.T) {
	d := AppendUint32(nil, 3)
	d = append(d, make([]byte, 12)...)
	if n, err := NewReader(d).Count(4); err != nil || n != 3 {
		t.Fatalf("count %d %v", n, err)
	}
	if _, err := NewReader(d).Count(5); !errors.Is(err, ErrTruncated) {
		t.Fatalf("oversized count: %v", err)
	}
	huge := AppendUint32(nil, math.MaxUint32)
	if _, err := NewReader(huge).Count(0); !errors.Is(err, ErrTruncated) {
		t.Fatalf("huge count: %v", err)
	}
}

func TestCompress(t *testing.T) {
	payload := bytes.Repeat(AppendString(AppendHeader(nil), "layout"), 100)
	if IsCompressed(payload) {
		t.Fatal("plain payload detected as compressed")
	}
	z, err := Compress(payload)
	if err != nil {
		t.Fatal(err)
	}
	if !IsCompressed(z) {
		t.Fatal("missing zstd frame")
	}
	if len(z) >= len(payload) {
		t.Errorf("no gain: %d >= %d", len(z), len(payload))
	}
	back, err := Decompress(z)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, payload) {
		t.Fatal("round trip mismatch")
	}
	same, err := Decompress(payload)
	if err != nil || !bytes.Equal(same, payload) {
		t.Fatal("plain payload altered")
	}
	if _, err := Decompress(append(z[:4:4], 0xff, 0xff, 0xff)); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("corrupt frame: %v", err)
	}
}

func TestNodeTypeString(t *testing.T) {
	if ValueDouble.String() != "Double" || NodeType(99).String() != "NodeType(99)" {
		t.Error("NodeType.String")
	}
	if NodeElement.IsScalar() || ValueUndefined.IsScalar() || !ValueString.IsScalar() {
		t.Error("IsScalar")
	}
}
