package parse

import (
	"fmt"

	"github.com/gdevelop/gdser/sertree"
	"github.com/gdevelop/gdser/wire"
)

const (
	// minAttrSize is an empty name and a Bool.
	minAttrSize = 4 + 1 + 1
	// minChildSize is an empty name and a node without content.
	minChildSize = 4 + 1 + 1 + 4 + 1 + 4 + 4
)

func parseBinary(d []byte) (*sertree.Element, error) {
	r := wire.NewReader(d)
	if err := r.Header(); err != nil {
		return nil, err
	}
	res := sertree.New()
	if err := readNode(r, res, 0); err != nil {
		return nil, err
	}
	if n := r.Remaining(); n != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after binary tree", ErrParse, n)
	}
	return res, nil
}

func readNode(r *wire.Reader, e *sertree.Element, depth int) error {
	if depth > wire.MaxDepth {
		return fmt.Errorf("%w: offset %d", wire.ErrTooDeep, r.Offset())
	}
	tag, err := r.Tag()
	if err != nil {
		return err
	}
	if tag != wire.NodeElement {
		return fmt.Errorf("%w: %s at offset %d, want %s", wire.ErrBadTag, tag, r.Offset()-1, wire.NodeElement)
	}
	v, ok, err := readValue(r, true)
	if err != nil {
		return err
	}
	if ok {
		e.SetValue(v)
	}

	n, err := r.Count(minAttrSize)
	if err != nil {
		return err
	}
	for range n {
		name, err := r.String()
		if err != nil {
			return err
		}
		v, _, err := readValue(r, false)
		if err != nil {
			return err
		}
		e.SetAttribute(name, v)
	}

	isArray, err := r.Bool()
	if err != nil {
		return err
	}
	arrayOf, err := r.String()
	if err != nil {
		return err
	}

	n, err = r.Count(minChildSize)
	if err != nil {
		return err
	}
	for range n {
		name, err := r.String()
		if err != nil {
			return err
		}
		if err := readNode(r, e.AddChild(name), depth+1); err != nil {
			return err
		}
	}
	// array mode last: children keep the names they were written with
	if isArray {
		if arrayOf == "" {
			e.ConsiderAsArray()
		} else {
			e.ConsiderAsArrayOf(arrayOf)
		}
	}
	return nil
}

func readValue(r *wire.Reader, allowUndefined bool) (sertree.Value, bool, error) {
	tag, err := r.Tag()
	if err != nil {
		return sertree.Value{}, false, err
	}
	switch tag {
	case wire.ValueUndefined:
		if allowUndefined {
			return sertree.Value{}, false, nil
		}
	case wire.ValueBool:
		b, err := r.Bool()
		return sertree.FromBool(b), true, err
	case wire.ValueInt:
		i, err := r.Int64()
		return sertree.FromInt(int(i)), true, err
	case wire.ValueDouble:
		f, err := r.Float64()
		return sertree.FromDouble(f), true, err
	case wire.ValueString:
		s, err := r.String()
		return sertree.FromString(s), true, err
	}
	return sertree.Value{}, false, fmt.Errorf("%w: %s at offset %d", wire.ErrBadTag, tag, r.Offset()-1)
}
