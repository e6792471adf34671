package parse

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"github.com/gdevelop/gdser/sertree"
)

// DefaultXMLRoots are the document element names project files have used.
var DefaultXMLRoots = []string{"project", "Project", "Game"}

func parseXML(d []byte, o *parseOpts) (*sertree.Element, error) {
	if len(bytes.TrimSpace(d)) == 0 {
		return sertree.New(), nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(d); err != nil {
		return nil, fmt.Errorf("%w: xml: %w", ErrParse, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: xml: no document element", ErrParse)
	}
	if len(o.xmlRoots) != 0 && !slices.Contains(o.xmlRoots, root.FullTag()) {
		return nil, fmt.Errorf("%w: xml: unexpected document element <%s>, want one of %v",
			ErrParse, root.FullTag(), o.xmlRoots)
	}
	res := sertree.New()
	fillElement(res, root)
	return res, nil
}

// fillElement copies x into e. Attribute values and text stay opaque until
// read with a typed accessor. Whitespace between child elements is layout,
// not a value.
func fillElement(e *sertree.Element, x *etree.Element) {
	for _, a := range x.Attr {
		e.SetAttribute(a.FullKey(), sertree.FromOpaque(a.Value))
	}
	children := x.ChildElements()
	for _, c := range children {
		fillElement(e.AddChild(c.FullTag()), c)
	}
	text := x.Text()
	if text != "" && (len(children) == 0 || strings.TrimSpace(text) != "") {
		e.SetValue(sertree.FromOpaque(text))
	}
}
