package encode

import (
	"strings"

	"github.com/fatih/color"

	"github.com/gdevelop/gdser/sertree"
)

type Colorable struct {
	Type sertree.ValueType
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range sertree.ValueTypes() {
		colors.Map[Colorable{Type: t, Attr: SepColor}] = color.RGB(255, 0, 196).SprintfFunc()
		colors.Map[Colorable{Type: t, Attr: FieldColor}] = color.RGB(128, 168, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Type = sertree.IntType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Type = sertree.DoubleType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Type = sertree.BooleanType
	colors.Map[able] = color.CyanString

	able.Type = sertree.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	// opaque text from XML input has not been typed yet
	able.Type = sertree.UndefinedType
	colors.Map[able] = color.RGB(88, 158, 86).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t sertree.ValueType, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t sertree.ValueType, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
