package encode

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gdevelop/gdser/sertree"
)

func encodeJSON(e *sertree.Element, w io.Writer, es *EncState) error {
	if !e.IsValueUndefined() {
		return writeString(w, jsonScalar(e.Value(), es))
	}
	if e.IsList() {
		return encodeJSONArray(e, w, es)
	}
	return encodeJSONObject(e, w, es)
}

func encodeJSONArray(e *sertree.Element, w io.Writer, es *EncState) error {
	if n := len(e.Attributes()); n != 0 {
		sertree.Logger().Warn("dropping attributes of array element in JSON output",
			"arrayOf", e.ArrayOf(), "attributes", n)
	}
	children := e.Children()
	if len(children) == 0 {
		return writeString(w, sep(es, "[]"))
	}
	if err := writeString(w, sep(es, "[")); err != nil {
		return err
	}
	es.depth++
	for i := range children {
		if i != 0 {
			if err := writeString(w, sep(es, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encodeJSON(children[i].Element, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, sep(es, "]"))
}

func encodeJSONObject(e *sertree.Element, w io.Writer, es *EncState) error {
	attrs, children := e.Attributes(), e.Children()
	if len(attrs)+len(children) == 0 {
		return writeString(w, sep(es, "{}"))
	}
	if err := writeString(w, sep(es, "{")); err != nil {
		return err
	}
	es.depth++
	n := 0
	field := func(name string) error {
		if n != 0 {
			if err := writeString(w, sep(es, ",")); err != nil {
				return err
			}
		}
		n++
		if err := writeNL(w, es); err != nil {
			return err
		}
		key := applyColor(es, sertree.StringType, FieldColor, QuoteJSON(name))
		return writeString(w, key+sep(es, ":")+" ")
	}
	for _, a := range attrs {
		if err := field(a.Name); err != nil {
			return err
		}
		if err := writeString(w, jsonScalar(a.Value, es)); err != nil {
			return err
		}
	}
	for _, c := range children {
		if err := field(c.Name); err != nil {
			return err
		}
		if err := encodeJSON(c.Element, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, sep(es, "}"))
}

func sep(es *EncState, s string) string {
	return applyColor(es, sertree.UndefinedType, SepColor, s)
}

func jsonScalar(v sertree.Value, es *EncState) string {
	var s string
	switch v.Type() {
	case sertree.BooleanType:
		s = strconv.FormatBool(v.Bool())
	case sertree.IntType:
		s = strconv.Itoa(v.Int())
	case sertree.DoubleType:
		d := v.Double()
		if math.IsNaN(d) || math.IsInf(d, 0) {
			s = "null"
		} else {
			s = sertree.FormatDouble(d)
		}
	default:
		s = QuoteJSON(v.String())
	}
	return applyColor(es, v.Type(), ValueColor, s)
}

const hex = "0123456789abcdef"

// QuoteJSON returns s as a JSON string literal. Backslash, quote, newline,
// carriage return and tab get short escapes and other control characters
// are written as \u00XX. Everything else, including non ASCII text, is
// written unchanged.
func QuoteJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', '"':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&0xf])
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
