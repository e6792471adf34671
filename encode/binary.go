package encode

import (
	"github.com/gdevelop/gdser/sertree"
	"github.com/gdevelop/gdser/wire"
)

// AppendBinary appends the binary payload of e, header included, to dst.
func AppendBinary(dst []byte, e *sertree.Element) []byte {
	dst = wire.AppendHeader(dst)
	return appendNode(dst, e)
}

func appendNode(dst []byte, e *sertree.Element) []byte {
	dst = wire.AppendTag(dst, wire.NodeElement)
	if e.IsValueUndefined() {
		dst = wire.AppendTag(dst, wire.ValueUndefined)
	} else {
		dst = appendValue(dst, e.Value())
	}

	attrs := e.Attributes()
	dst = wire.AppendUint32(dst, uint32(len(attrs)))
	for _, a := range attrs {
		dst = wire.AppendString(dst, a.Name)
		dst = appendValue(dst, a.Value)
	}

	dst = wire.AppendBool(dst, e.IsArray())
	dst = wire.AppendString(dst, e.ArrayOf())

	children := e.Children()
	dst = wire.AppendUint32(dst, uint32(len(children)))
	for _, c := range children {
		dst = wire.AppendString(dst, c.Name)
		dst = appendNode(dst, c.Element)
	}
	return dst
}

// appendValue writes a typed scalar. Opaque text is written as a String.
func appendValue(dst []byte, v sertree.Value) []byte {
	switch v.Type() {
	case sertree.BooleanType:
		dst = wire.AppendTag(dst, wire.ValueBool)
		return wire.AppendBool(dst, v.Bool())
	case sertree.IntType:
		dst = wire.AppendTag(dst, wire.ValueInt)
		return wire.AppendInt64(dst, int64(v.Int()))
	case sertree.DoubleType:
		dst = wire.AppendTag(dst, wire.ValueDouble)
		return wire.AppendFloat64(dst, v.Double())
	default:
		dst = wire.AppendTag(dst, wire.ValueString)
		return wire.AppendString(dst, v.String())
	}
}
