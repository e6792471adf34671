package parse

import (
	"bytes"
	"fmt"

	"github.com/gdevelop/gdser/debug"
	"github.com/gdevelop/gdser/format"
	"github.com/gdevelop/gdser/sertree"
	"github.com/gdevelop/gdser/wire"
)

// MaxDepth bounds the nesting of parsed documents.
const MaxDepth = wire.MaxDepth

func Parse(d []byte, opts ...ParseOption) (*sertree.Element, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	if wire.IsCompressed(d) {
		var err error
		d, err = wire.Decompress(d)
		if err != nil {
			return nil, err
		}
	}
	if !pOpts.formatSet {
		pOpts.format = Detect(d)
	}
	var (
		res *sertree.Element
		err error
	)
	switch pOpts.format {
	case format.JSONFormat:
		res, err = parseJSON(d, pOpts)
	case format.XMLFormat:
		res, err = parseXML(d, pOpts)
	case format.BinaryFormat:
		res, err = parseBinary(d)
	case format.YAMLFormat:
		res, err = parseYAML(d)
	default:
		return nil, fmt.Errorf("%w: unknown format %s", ErrParse, pOpts.format)
	}
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parsed %v document of %d bytes: %v\n", pOpts.format, len(d), res)
	}
	return res, nil
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Detect guesses the format of d: binary if it starts with the binary
// magic number, XML if its first non blank character is '<' and JSON
// otherwise. YAML is never detected.
func Detect(d []byte) format.Format {
	if wire.HasMagic(d) {
		return format.BinaryFormat
	}
	d = bytes.TrimPrefix(d, utf8BOM)
	d = bytes.TrimLeft(d, " \t\r\n")
	if len(d) > 0 && d[0] == '<' {
		return format.XMLFormat
	}
	return format.JSONFormat
}
