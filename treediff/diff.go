package treediff

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/gdevelop/gdser/encode"
	"github.com/gdevelop/gdser/sertree"
)

type Kind int

const (
	Added Kind = iota
	Removed
	Modified
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return fmt.Sprintf("<kind %d>", int(k))
	}
}

func (k Kind) symbol() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return "~"
	}
}

// Change is one difference between two trees. Path locates it with the
// syntax of sertree.ParsePath, in the tree where it exists: the "to" tree
// for additions and modifications and the "from" tree for removals.
//
// Values and attributes are held by elements built with
// sertree.FromValue. From is nil for additions and To is nil for removals.
type Change struct {
	Path string
	Kind Kind
	From *sertree.Element
	To   *sertree.Element
}

func (c Change) String() string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("+ %s: %s", c.Path, show(c.To))
	case Removed:
		return fmt.Sprintf("- %s: %s", c.Path, show(c.From))
	default:
		return fmt.Sprintf("%s %s: %s -> %s", c.Kind.symbol(), c.Path, show(c.From), show(c.To))
	}
}

func show(e *sertree.Element) string {
	if e == nil {
		return "<none>"
	}
	return encode.MustString(e)
}

// NameAttribute is the attribute used with the child name to align
// children.
const NameAttribute = "name"

// Diff lists the changes turning from into to, in document order. Array
// mode is not data and is not compared.
func Diff(from, to *sertree.Element) []Change {
	d := &differ{summaries: map[string]rune{}}
	d.diff("$", from, to)
	return d.changes
}

type differ struct {
	summaries map[string]rune
	changes   []Change
}

func (d *differ) add(path string, kind Kind, from, to *sertree.Element) {
	d.changes = append(d.changes, Change{Path: path, Kind: kind, From: from, To: to})
}

func (d *differ) diff(path string, from, to *sertree.Element) {
	fu, tu := from.IsValueUndefined(), to.IsValueUndefined()
	switch {
	case fu && !tu:
		d.add(path, Added, nil, sertree.FromValue(to.Value()))
	case !fu && tu:
		d.add(path, Removed, sertree.FromValue(from.Value()), nil)
	case !fu && !tu && !from.Value().Equal(to.Value()):
		d.add(path, Modified, sertree.FromValue(from.Value()), sertree.FromValue(to.Value()))
	}

	for _, a := range from.Attributes() {
		ap := sertree.JoinField(path, a.Name)
		tv, ok := to.Attribute(a.Name)
		switch {
		case !ok:
			d.add(ap, Removed, sertree.FromValue(a.Value), nil)
		case !a.Value.Equal(tv):
			d.add(ap, Modified, sertree.FromValue(a.Value), sertree.FromValue(tv))
		}
	}
	for _, a := range to.Attributes() {
		if !from.HasAttribute(a.Name) {
			d.add(sertree.JoinField(path, a.Name), Added, nil, sertree.FromValue(a.Value))
		}
	}
	d.children(path, from, to)
}

// children aligns the children of from and to, recursing into matched
// pairs. A run of removals directly followed by a run of additions pairs
// children with the same name, so a renamed layout is reported as a
// modified name attribute.
func (d *differ) children(path string, from, to *sertree.Element) {
	fc, tc := from.Children(), to.Children()
	if len(fc) == 0 && len(tc) == 0 {
		return
	}
	fp, tp := childPaths(path, fc), childPaths(path, tc)
	diffs := diffpatch.New().DiffMainRunes(d.runes(fc), d.runes(tc), false)

	fi, ti := 0, 0
	var removed []int
	flush := func() {
		for _, i := range removed {
			d.add(fp[i], Removed, fc[i].Element.Clone(), nil)
		}
		removed = removed[:0]
	}
	for _, df := range diffs {
		n := len([]rune(df.Text))
		switch df.Type {
		case diffpatch.DiffEqual:
			flush()
			for range n {
				d.diff(tp[ti], fc[fi].Element, tc[ti].Element)
				fi++
				ti++
			}
		case diffpatch.DiffDelete:
			for range n {
				removed = append(removed, fi)
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				if len(removed) > 0 && fc[removed[0]].Name == tc[ti].Name {
					d.diff(tp[ti], fc[removed[0]].Element, tc[ti].Element)
					removed = removed[1:]
				} else {
					flush()
					d.add(tp[ti], Added, nil, tc[ti].Element.Clone())
				}
				ti++
			}
			flush()
		}
	}
	flush()
}

func (d *differ) runes(cs []sertree.Child) []rune {
	rs := make([]rune, len(cs))
	for i, c := range cs {
		sum := c.Name + "\x00" + c.Element.StringAttribute(NameAttribute, "")
		r, ok := d.summaries[sum]
		if !ok {
			r = rune(len(d.summaries))
			if r >= 0xd800 {
				// skip surrogates, go-diff handles the runes as text
				r += 0x800
			}
			d.summaries[sum] = r
		}
		rs[i] = r
	}
	return rs
}

// childPaths returns the path of each child. A name shared with other
// siblings is followed by its occurrence index, and unnamed children are
// addressed by index alone. A bare index after a field would select among
// the children with that name, so the parent path is given one first.
func childPaths(path string, cs []sertree.Child) []string {
	unnamedBase := path
	if path != "$" && !strings.HasSuffix(path, "]") {
		unnamedBase = sertree.JoinIndex(path, 0)
	}
	count := lo.CountValuesBy(cs, func(c sertree.Child) string { return c.Name })
	seen := map[string]int{}
	res := make([]string, len(cs))
	for i, c := range cs {
		k := seen[c.Name]
		seen[c.Name]++
		switch {
		case c.Name == "":
			res[i] = sertree.JoinIndex(unnamedBase, k)
		case count[c.Name] == 1:
			res[i] = sertree.JoinField(path, c.Name)
		default:
			res[i] = sertree.JoinIndex(sertree.JoinField(path, c.Name), k)
		}
	}
	return res
}
