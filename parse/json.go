package parse

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gdevelop/gdser/sertree"
)

// parseJSON is a hand written recursive descent parser. Object keys become
// named children, array items unnamed children, strings String values and
// bare tokens Double values parsed leniently, except true, false and null.
func parseJSON(d []byte, o *parseOpts) (*sertree.Element, error) {
	p := &jsonParser{d: bytes.TrimPrefix(d, utf8BOM), strict: o.strict}
	p.skipWS()
	root := sertree.New()
	if p.eof() {
		return root, nil
	}
	err := p.value(root)
	if err == nil {
		p.skipWS()
		if p.eof() {
			return root, nil
		}
		if o.strict {
			return nil, p.errorf("trailing data after value")
		}
		sertree.Logger().Debug("ignoring trailing data after JSON value", "offset", p.off)
		return root, nil
	}
	if o.strict {
		return nil, err
	}
	sertree.Logger().Warn("malformed JSON document read as an empty tree", "error", err)
	return sertree.New(), nil
}

type jsonParser struct {
	d      []byte
	off    int
	depth  int
	strict bool
}

func (p *jsonParser) errorf(msg string, args ...any) error {
	return fmt.Errorf("%w: offset %d: %s", ErrParse, p.off, fmt.Sprintf(msg, args...))
}

func (p *jsonParser) eof() bool { return p.off >= len(p.d) }

func (p *jsonParser) skipWS() {
	for !p.eof() && isSpace(p.d[p.off]) {
		p.off++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// isSep reports whether c ends a bare token.
func isSep(c byte) bool {
	return isSpace(c) || c == ',' || c == '}' || c == ']'
}

func (p *jsonParser) value(e *sertree.Element) error {
	p.skipWS()
	if p.eof() {
		return p.errorf("unexpected end of input")
	}
	switch c := p.d[p.off]; c {
	case '{':
		return p.object(e)
	case '[':
		return p.array(e)
	case '"':
		s, err := p.str()
		if err != nil {
			return err
		}
		e.SetStringValue(s)
		return nil
	case '}', ']', ',', ':':
		return p.errorf("unexpected %q", c)
	default:
		return p.bare(e)
	}
}

func (p *jsonParser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return p.errorf("nesting deeper than %d", MaxDepth)
	}
	return nil
}

func (p *jsonParser) object(e *sertree.Element) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer func() { p.depth-- }()
	p.off++
	p.skipWS()
	if !p.eof() && p.d[p.off] == '}' {
		p.off++
		return nil
	}
	for {
		p.skipWS()
		if p.eof() || p.d[p.off] != '"' {
			return p.errorf("expected object key")
		}
		key, err := p.str()
		if err != nil {
			return err
		}
		p.skipWS()
		if p.eof() || p.d[p.off] != ':' {
			return p.errorf("expected ':' after key %q", key)
		}
		p.off++
		if err := p.value(e.AddChild(key)); err != nil {
			return err
		}
		p.skipWS()
		if p.eof() {
			return p.errorf("unterminated object")
		}
		switch p.d[p.off] {
		case '}':
			p.off++
			return nil
		case ',':
			p.off++
			if p.trailingComma('}') {
				return nil
			}
		default:
			return p.errorf("expected ',' or '}'")
		}
	}
}

func (p *jsonParser) array(e *sertree.Element) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer func() { p.depth-- }()
	p.off++
	p.skipWS()
	if !p.eof() && p.d[p.off] == ']' {
		p.off++
		return nil
	}
	for {
		if err := p.value(e.AddChild("")); err != nil {
			return err
		}
		p.skipWS()
		if p.eof() {
			return p.errorf("unterminated array")
		}
		switch p.d[p.off] {
		case ']':
			p.off++
			return nil
		case ',':
			p.off++
			if p.trailingComma(']') {
				return nil
			}
		default:
			return p.errorf("expected ',' or ']'")
		}
	}
}

// trailingComma consumes a closing delimiter directly following a comma.
// Strict parsing leaves it to fail as a missing value.
func (p *jsonParser) trailingComma(end byte) bool {
	if p.strict {
		return false
	}
	p.skipWS()
	if !p.eof() && p.d[p.off] == end {
		p.off++
		return true
	}
	return false
}

// str reads a quoted string starting at the opening quote.
func (p *jsonParser) str() (string, error) {
	start := p.off
	p.off++
	var b strings.Builder
	for !p.eof() {
		c := p.d[p.off]
		switch c {
		case '"':
			p.off++
			return b.String(), nil
		case '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			p.off++
		}
	}
	p.off = start
	return "", p.errorf("unterminated string")
}

func (p *jsonParser) escape(b *strings.Builder) error {
	p.off++
	if p.eof() {
		return p.errorf("unterminated escape")
	}
	c := p.d[p.off]
	p.off++
	switch c {
	case '"', '\\', '/':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'u':
		r, ok := p.hex4()
		if !ok {
			if p.strict {
				return p.errorf("bad \\u escape")
			}
			b.WriteByte('u')
			return nil
		}
		if utf16.IsSurrogate(r) {
			if lo, ok := p.lowSurrogate(); ok {
				r = utf16.DecodeRune(r, lo)
			} else {
				r = utf8.RuneError
			}
		}
		b.WriteRune(r)
	default:
		if p.strict {
			return p.errorf("bad escape %q", c)
		}
		b.WriteByte(c)
	}
	return nil
}

func (p *jsonParser) hex4() (rune, bool) {
	if p.off+4 > len(p.d) {
		return 0, false
	}
	v, err := strconv.ParseUint(string(p.d[p.off:p.off+4]), 16, 32)
	if err != nil {
		return 0, false
	}
	p.off += 4
	return rune(v), true
}

func (p *jsonParser) lowSurrogate() (rune, bool) {
	if p.off+6 > len(p.d) || p.d[p.off] != '\\' || p.d[p.off+1] != 'u' {
		return 0, false
	}
	save := p.off
	p.off += 2
	r, ok := p.hex4()
	if !ok || r < 0xdc00 || r > 0xdfff {
		p.off = save
		return 0, false
	}
	return r, true
}

// bare reads a token up to the next separator.
func (p *jsonParser) bare(e *sertree.Element) error {
	start := p.off
	for !p.eof() && !isSep(p.d[p.off]) {
		p.off++
	}
	tok := string(p.d[start:p.off])
	switch tok {
	case "true":
		e.SetBoolValue(true)
	case "false":
		e.SetBoolValue(false)
	case "null":
	default:
		if p.strict {
			if _, err := strconv.ParseFloat(tok, 64); err != nil {
				p.off = start
				return p.errorf("bad literal %q", tok)
			}
		}
		e.SetDoubleValue(sertree.LenientFloat(tok))
	}
	return nil
}
