package encode

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/gdevelop/gdser/sertree"
)

// fallbackXMLName names unnamed children of elements which are not tagged
// arrays. XML has no anonymous elements.
const fallbackXMLName = "element"

func encodeXML(e *sertree.Element, w io.Writer, es *EncState) error {
	if es.xmlRoot == "" {
		return fmt.Errorf("%w: empty XML root name", ErrEncoding)
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	fillXML(doc.CreateElement(es.xmlRoot), e)
	if es.indent > 0 {
		doc.Indent(es.indent)
	} else {
		doc.Indent(etree.NoIndent)
	}
	if _, err := doc.WriteTo(w); err != nil {
		return err
	}
	if es.indent == 0 {
		return writeString(w, "\n")
	}
	return nil
}

// fillXML writes e into x. An element with an own value becomes a single
// text node; otherwise attributes become XML attributes and children nested
// XML elements.
func fillXML(x *etree.Element, e *sertree.Element) {
	if !e.IsValueUndefined() {
		x.SetText(e.StringValue())
		return
	}
	for _, a := range e.Attributes() {
		x.CreateAttr(a.Name, a.Value.String())
	}
	for _, c := range e.Children() {
		name := c.Name
		if name == "" {
			name = e.ArrayOf()
		}
		if name == "" {
			name = fallbackXMLName
		}
		fillXML(x.CreateElement(name), c.Element)
	}
}
