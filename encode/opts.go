package encode

import "github.com/gdevelop/gdser/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// EncodeIndent sets the number of spaces per nesting level. 0, the
// default, writes compact output.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = max(n, 0) }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// EncodeXMLRoot names the document element of XML output. The default is
// "project".
func EncodeXMLRoot(name string) EncodeOption {
	return func(es *EncState) { es.xmlRoot = name }
}

// EncodeCompress wraps the output in a zstd frame.
func EncodeCompress(v bool) EncodeOption {
	return func(es *EncState) { es.compress = v }
}
