package splitter

import (
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/gdevelop/gdser/debug"
	"github.com/gdevelop/gdser/sertree"
)

const (
	DefaultNameAttribute = "name"
	DefaultSeparator     = "/"

	// attributes of placeholders
	ReferenceAttribute = "referenceTo"
	PlaceholderName    = "name"
)

// DefaultSplitPaths are the parts of a project stored in their own files.
var DefaultSplitPaths = []string{
	"/layouts/layout",
	"/externalLayouts/externalLayout",
	"/externalEvents/externalEvents",
	"/eventsFunctionsExtensions/eventsFunctionsExtension",
}

// Fragment is a subtree cut out of a tree by Split.
type Fragment struct {
	Path    string
	Name    string
	Element *sertree.Element
}

// FileName returns the fragment file name with suffix appended.
func (f Fragment) FileName(suffix string) string {
	return FragmentFileName(f.Path, f.Name) + suffix
}

// Resolver returns the fragment stored for a placeholder. A nil result
// means the fragment is missing.
type Resolver func(path, name string) *sertree.Element

// Splitter splits and reassembles trees. The zero value uses the name
// attribute "name", the separator "/" and slog.Default().
type Splitter struct {
	NameAttribute string
	Separator     string
	Logger        *slog.Logger
}

func (s *Splitter) nameAttribute() string {
	if s.NameAttribute == "" {
		return DefaultNameAttribute
	}
	return s.NameAttribute
}

func (s *Splitter) separator() string {
	if s.Separator == "" {
		return DefaultSeparator
	}
	return s.Separator
}

func (s *Splitter) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Split moves the subtrees of tree found at paths into fragments, in
// document order, leaving placeholders behind. basePath, empty by default,
// is the path of tree itself.
//
// Unnamed children take the tag of their parent in path computations. When
// the parent has no tag, as happens after parsing JSON, they take the last
// segment of the cut path below their parent. If several cut paths share
// that parent, the first one listed wins.
func (s *Splitter) Split(tree *sertree.Element, paths []string, basePath ...string) []Fragment {
	st := &splitState{
		Splitter: s,
		sep:      s.separator(),
		cut:      lo.Keyify(paths),
		unnamed:  map[string]string{},
	}
	for _, p := range paths {
		i := strings.LastIndex(p, st.sep)
		if i < 0 {
			continue
		}
		parent, seg := p[:i], p[i+len(st.sep):]
		if prev, ok := st.unnamed[parent]; ok {
			s.logger().Debug("unnamed children keep the first cut path segment",
				"parent", parent, "segment", prev, "ignored", seg)
			continue
		}
		st.unnamed[parent] = seg
	}
	base := ""
	if len(basePath) > 0 {
		base = basePath[0]
	}
	st.split(tree, base)
	if debug.Split() {
		debug.Logf("split %d fragments at %v\n", len(st.frags), paths)
	}
	return st.frags
}

type splitState struct {
	*Splitter
	sep     string
	cut     map[string]struct{}
	unnamed map[string]string
	frags   []Fragment
}

func (st *splitState) split(e *sertree.Element, path string) {
	for _, c := range e.Children() {
		ref := path + st.sep + st.segment(e, c.Name, path)
		if _, ok := st.cut[ref]; !ok {
			st.split(c.Element, ref)
			continue
		}
		name := c.Element.StringAttribute(st.nameAttribute(), "")
		detached := sertree.New()
		detached.ReplaceWith(c.Element)
		st.frags = append(st.frags, Fragment{Path: ref, Name: name, Element: detached})
		c.Element.SetStringAttribute(ReferenceAttribute, ref)
		c.Element.SetStringAttribute(PlaceholderName, name)
	}
}

func (st *splitState) segment(parent *sertree.Element, name, path string) string {
	if name != "" {
		return name
	}
	if tag := parent.ArrayOf(); tag != "" {
		return tag
	}
	return st.unnamed[path]
}

// Unsplit replaces the placeholders of tree by the fragments resolve
// returns. A missing fragment leaves an empty element and a log line; the
// rest of the tree is still resolved. A placeholder met again inside its
// own fragment is left empty.
func (s *Splitter) Unsplit(tree *sertree.Element, resolve Resolver) {
	s.unsplit(tree, resolve, map[string]bool{})
}

func (s *Splitter) unsplit(e *sertree.Element, resolve Resolver, active map[string]bool) {
	for _, c := range e.Children() {
		ref, name, ok := Placeholder(c.Element)
		if !ok {
			s.unsplit(c.Element, resolve, active)
			continue
		}
		key := ref + "\x00" + name
		if active[key] {
			s.logger().Warn("fragment references itself", "path", ref, "name", name)
			c.Element.ReplaceWith(sertree.New())
			continue
		}
		frag := resolve(ref, name)
		if frag == nil {
			s.logger().Warn("fragment not found", "path", ref, "name", name)
			c.Element.ReplaceWith(sertree.New())
			continue
		}
		frag.CloneTo(c.Element)
		if debug.Split() {
			debug.Logf("resolved %s %q\n", ref, name)
		}
		active[key] = true
		s.unsplit(c.Element, resolve, active)
		delete(active, key)
	}
}

// Placeholder reports whether e stands for a fragment and which one.
func Placeholder(e *sertree.Element) (path, name string, ok bool) {
	ref, ok := e.AttributeValue(ReferenceAttribute)
	if !ok {
		return "", "", false
	}
	n, ok := e.AttributeValue(PlaceholderName)
	if !ok {
		return "", "", false
	}
	return ref.String(), n.String(), true
}

// FragmentResolver resolves placeholders from frags, as produced by Split.
func FragmentResolver(frags []Fragment) Resolver {
	byKey := lo.KeyBy(frags, func(f Fragment) string {
		return f.Path + "\x00" + f.Name
	})
	return func(path, name string) *sertree.Element {
		f, ok := byKey[path+"\x00"+name]
		if !ok {
			return nil
		}
		return f.Element
	}
}
