package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gdevelop/gdser/format"
	"github.com/gdevelop/gdser/sertree"
	"github.com/gdevelop/gdser/wire"
)

const DefaultXMLRoot = "project"

type EncState struct {
	depth, indent int

	format   format.Format
	xmlRoot  string
	compress bool

	Color func(sertree.ValueType, ColorAttr, string) string
}

func Encode(e *sertree.Element, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		xmlRoot: DefaultXMLRoot,
	}
	for _, opt := range opts {
		opt(es)
	}
	if e == nil {
		e = sertree.New()
	}
	if es.compress {
		buf := bytes.NewBuffer(nil)
		if err := encode(e, buf, es); err != nil {
			return err
		}
		z, err := wire.Compress(buf.Bytes())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		_, err = w.Write(z)
		return err
	}
	return encode(e, w, es)
}

func encode(e *sertree.Element, w io.Writer, es *EncState) error {
	switch es.format {
	case format.JSONFormat:
		if err := encodeJSON(e, w, es); err != nil {
			return err
		}
		if es.indent > 0 {
			return writeString(w, "\n")
		}
		return nil
	case format.XMLFormat:
		return encodeXML(e, w, es)
	case format.BinaryFormat:
		_, err := w.Write(AppendBinary(nil, e))
		return err
	case format.YAMLFormat:
		return encodeYAML(e, w, es)
	default:
		return fmt.Errorf("%w: unknown format %s", ErrEncoding, es.format)
	}
}

// Helper functions for writing
func writeNL(w io.Writer, es *EncState) error {
	if es.indent == 0 {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func applyColor(es *EncState, t sertree.ValueType, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}
