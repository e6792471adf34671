package parse

import "github.com/gdevelop/gdser/format"

type parseOpts struct {
	format    format.Format
	formatSet bool
	strict    bool
	xmlRoots  []string
}

type ParseOption func(*parseOpts)

func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseXML() ParseOption {
	return ParseFormat(format.XMLFormat)
}
func ParseBinary() ParseOption {
	return ParseFormat(format.BinaryFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}

// ParseFormat disables format detection.
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) {
		o.format = f
		o.formatSet = true
	}
}

// ParseStrict makes the JSON parser report malformed input and trailing
// data as ErrParse.
func ParseStrict() ParseOption {
	return func(o *parseOpts) { o.strict = true }
}

// ParseXMLRoots restricts the accepted names of the XML document element.
func ParseXMLRoots(names ...string) ParseOption {
	return func(o *parseOpts) { o.xmlRoots = names }
}
