package sertree

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed element path such as
//
//	$.layouts.layout[1].objects
//
// A field followed by an index selects the n-th child with that name. An
// index alone selects among array members, or among all children of an
// element which is not an array. [*] selects all of them and .. selects the
// element and all of its descendants.
type Path struct {
	IndexAll bool
	Index    *int
	Field    *string
	Subtree  bool
	Next     *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	sub := false
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Subtree:
			buf.WriteString("..")
			sub = true
			continue
		case x.IndexAll:
			buf.WriteString("[*]")
		case x.Field != nil:
			if !sub {
				buf.WriteByte('.')
			}
			buf.WriteString(pathString(*x.Field))
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
		sub = false
	}
	return buf.String()
}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrBadPath, p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBadPath, p, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			parent.Subtree = true
			if len(frag) == 2 {
				return nil
			}
			next := &Path{}
			rest := frag[2:]
			if rest[0] != '[' {
				rest = "." + rest
			}
			if err := parseFrag(rest, next); err != nil {
				return err
			}
			parent.Next = next
			return nil
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		if len(rest) == 0 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(rest, next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		if len(frag) == i+2 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(frag[i+2:], next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	default:
		return fmt.Errorf("expected '.' or '['")
	}
}

func parseIndex(is string) (index int, all bool, err error) {
	if len(is) == 1 && is[0] == '*' {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, false, err
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			if escaped {
				escaped = false
				res = append(res, c)
				continue
			}
			escaped = true
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

func pathString(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]\\") == -1 {
		return f
	}
	f = strings.ReplaceAll(f, "\\", "\\\\")
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

// Lookup returns the element at path. Unlike the tolerant accessors it
// reports a missing element as ErrNotFound. A final field naming an
// attribute rather than a child yields a new element holding the attribute
// value.
func (e *Element) Lookup(path string) (*Element, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return e.lookup(p)
}

func (e *Element) lookup(p *Path) (*Element, error) {
	res := e
	for p != nil {
		if p.IndexAll {
			return nil, fmt.Errorf("%w: any index [*] in lookup", ErrBadPath)
		}
		if p.Subtree {
			return nil, fmt.Errorf("%w: recurse .. in lookup", ErrBadPath)
		}
		switch {
		case p.Field != nil:
			field := *p.Field
			index := 0
			next := p.Next
			if next != nil && next.Index != nil && !next.IndexAll && !next.Subtree && next.Field == nil {
				index = *next.Index
				next = next.Next
			}
			child := res.nth(res.selects(field), index)
			if child != nil {
				res = child
				p = next
				continue
			}
			if p.Next == nil {
				if v, ok := res.Attribute(field); ok {
					return FromValue(v), nil
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrNotFound, pathString(field))
		case p.Index != nil:
			match := func(string) bool { return true }
			if res.isArray {
				match = res.isMember
			}
			child := res.nth(match, *p.Index)
			if child == nil {
				return nil, fmt.Errorf("%w: index %d", ErrNotFound, *p.Index)
			}
			res = child
			p = p.Next
		default:
			p = p.Next
		}
	}
	return res, nil
}

// List returns every element matched by path, in document order.
func (e *Element) List(path string) ([]*Element, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return e.list(nil, p), nil
}

func (e *Element) list(dst []*Element, p *Path) []*Element {
	if p == nil {
		return append(dst, e)
	}
	if p.Subtree {
		_ = e.Visit(func(_ string, node *Element, isPost bool) (bool, error) {
			if isPost {
				return false, nil
			}
			dst = node.list(dst, p.Next)
			return true, nil
		})
		return dst
	}
	switch {
	case p.Field != nil:
		field := *p.Field
		next := p.Next
		index := -1
		if next != nil && next.Index != nil && next.Field == nil && !next.Subtree {
			index = *next.Index
			next = next.Next
		} else if next != nil && next.IndexAll && next.Field == nil && !next.Subtree {
			next = next.Next
		}
		match := e.selects(field)
		cur := 0
		found := false
		for _, c := range e.children {
			if !match(c.Name) {
				continue
			}
			found = true
			if index == -1 || cur == index {
				dst = c.Element.list(dst, next)
			}
			cur++
		}
		if !found && p.Next == nil {
			if v, ok := e.Attribute(field); ok {
				dst = append(dst, FromValue(v))
			}
		}
		return dst
	case p.Index != nil || p.IndexAll:
		match := func(string) bool { return true }
		if e.isArray {
			match = e.isMember
		}
		cur := 0
		for _, c := range e.children {
			if !match(c.Name) {
				continue
			}
			if p.IndexAll || cur == *p.Index {
				dst = c.Element.list(dst, p.Next)
			}
			cur++
		}
		return dst
	default:
		return e.list(dst, p.Next)
	}
}

// JoinField returns path p followed by field, quoted if needed.
func JoinField(p, field string) string {
	return p + "." + pathString(field)
}

// JoinIndex returns path p followed by index i.
func JoinIndex(p string, i int) string {
	return p + "[" + strconv.Itoa(i) + "]"
}
