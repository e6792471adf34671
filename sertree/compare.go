package sertree

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing two trees.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Attributes are compared as a set keyed by name; children are compared
// in order. The deprecated array tag is a lookup alias and is ignored.
func Compare(a, b *Element) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if c := compareOwnValues(a, b); c != 0 {
		return c
	}
	if c := compareAttributes(a.attrs, b.attrs); c != 0 {
		return c
	}
	if a.isArray != b.isArray {
		if !a.isArray {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.arrayOf, b.arrayOf); c != 0 {
		return c
	}
	return compareChildren(a.children, b.children)
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b *Element) bool {
	return Compare(a, b) == 0
}

func compareOwnValues(a, b *Element) int {
	switch {
	case a.value == nil && b.value == nil:
		return 0
	case a.value == nil:
		return -1
	case b.value == nil:
		return 1
	}
	return compareValues(*a.value, *b.value)
}

func compareAttributes(a, b []Attribute) int {
	sa := sortedAttributes(a)
	sb := sortedAttributes(b)
	n := min(len(sa), len(sb))
	for i := 0; i < n; i++ {
		if c := strings.Compare(sa[i].Name, sb[i].Name); c != 0 {
			return c
		}
		if c := compareValues(sa[i].Value, sb[i].Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(sa), len(sb))
}

func sortedAttributes(attrs []Attribute) []Attribute {
	res := slices.Clone(attrs)
	slices.SortFunc(res, func(x, y Attribute) int {
		return strings.Compare(x.Name, y.Name)
	})
	return res
}

func compareChildren(a, b []Child) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := strings.Compare(a[i].Name, b[i].Name); c != 0 {
			return c
		}
		if c := Compare(a[i].Element, b[i].Element); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
