package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	XMLFormat
	BinaryFormat
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":      JSONFormat,
		"json":   JSONFormat,
		"x":      XMLFormat,
		"xml":    XMLFormat,
		"b":      BinaryFormat,
		"bin":    BinaryFormat,
		"binary": BinaryFormat,
		"y":      YAMLFormat,
		"yaml":   YAMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case XMLFormat:
		return []byte("xml"), nil
	case BinaryFormat:
		return []byte("binary"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool   { return f == JSONFormat }
func (f Format) IsXML() bool    { return f == XMLFormat }
func (f Format) IsBinary() bool { return f == BinaryFormat }
func (f Format) IsYAML() bool   { return f == YAMLFormat }

// IsText reports whether the format is human readable.
func (f Format) IsText() bool { return f != BinaryFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case XMLFormat:
		return ".xml"
	case BinaryFormat:
		return ".gdbs"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// FromSuffix guesses the format of a file from its extension.
func FromSuffix(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range AllFormats() {
		if f.Suffix() == ext {
			return f, nil
		}
	}
	if ext == ".yml" {
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("%w: no format for extension %q", ErrBadFormat, ext)
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{JSONFormat, XMLFormat, BinaryFormat, YAMLFormat}
}
