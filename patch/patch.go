// Package patch applies JSON Patch (RFC 6902) and JSON Merge Patch
// (RFC 7386) documents to serialization trees.
//
// Trees go through the JSON codec: the result reads like a freshly parsed
// JSON document. Attributes become children, numbers become doubles and
// object keys may come back in a different order.
package patch

import (
	"bytes"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/gdevelop/gdser/encode"
	"github.com/gdevelop/gdser/format"
	"github.com/gdevelop/gdser/parse"
	"github.com/gdevelop/gdser/sertree"
)

var ErrPatch = errors.New("patch error")

func toJSON(e *sertree.Element) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := encode.Encode(e, buf, encode.EncodeFormat(format.JSONFormat)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fromJSON(d []byte) (*sertree.Element, error) {
	return parse.Parse(d, parse.ParseJSON(), parse.ParseStrict())
}

// ApplyJSONPatch applies the JSON Patch ops to e and returns the patched
// tree. e is left untouched.
func ApplyJSONPatch(e *sertree.Element, ops []byte) (*sertree.Element, error) {
	p, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	d, err := toJSON(e)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return fromJSON(out)
}

// ApplyMergePatch applies the merge patch to e and returns the patched
// tree. e is left untouched.
func ApplyMergePatch(e *sertree.Element, patch []byte) (*sertree.Element, error) {
	d, err := toJSON(e)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return fromJSON(out)
}

// CreateMergePatch returns the merge patch turning from into to.
func CreateMergePatch(from, to *sertree.Element) ([]byte, error) {
	a, err := toJSON(from)
	if err != nil {
		return nil, err
	}
	b, err := toJSON(to)
	if err != nil {
		return nil, err
	}
	res, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return res, nil
}
