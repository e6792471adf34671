package encode

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/gdevelop/gdser/sertree"
)

func encodeYAML(e *sertree.Element, w io.Writer, es *EncState) error {
	indent := es.indent
	if indent == 0 {
		indent = 2
	}
	d, err := yaml.MarshalWithOptions(ToYAML(e), yaml.Indent(indent), yaml.IndentSequence(true))
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// ToYAML converts e to values go-yaml marshals in document order: an
// ordered yaml.MapSlice for objects, []any for arrays and Go scalars for
// values. Repeated child names give repeated keys. Elements which read as
// lists, see sertree.Element.IsList, give sequences.
func ToYAML(e *sertree.Element) any {
	if !e.IsValueUndefined() {
		return yamlScalar(e.Value())
	}
	if e.IsList() {
		res := make([]any, 0, len(e.Children()))
		for _, c := range e.Children() {
			res = append(res, ToYAML(c.Element))
		}
		return res
	}
	res := make(yaml.MapSlice, 0, len(e.Attributes())+len(e.Children()))
	for _, a := range e.Attributes() {
		res = append(res, yaml.MapItem{Key: a.Name, Value: yamlScalar(a.Value)})
	}
	for _, c := range e.Children() {
		res = append(res, yaml.MapItem{Key: c.Name, Value: ToYAML(c.Element)})
	}
	return res
}

func yamlScalar(v sertree.Value) any {
	switch v.Type() {
	case sertree.BooleanType:
		return v.Bool()
	case sertree.IntType:
		return v.Int()
	case sertree.DoubleType:
		return v.Double()
	default:
		return v.String()
	}
}
