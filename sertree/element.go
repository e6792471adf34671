package sertree

import (
	"maps"
	"slices"
)

// Attribute is a named scalar attached to an Element.
type Attribute struct {
	Name  string
	Value Value
}

// Child is a named entry in an Element's ordered child list. Names are not
// unique: repeated names are how lists are stored outside array mode.
type Child struct {
	Name    string
	Element *Element
}

// Element is a node of a serialization tree. It holds an optional own value,
// ordered attributes and ordered named children.
//
// Lookups never fail. A missing child or out of range index is logged and
// answered with a fresh empty Element, so chained calls like
//
//	e.Child("layout").Child("objects").StringAttribute("name", "")
//
// degrade to defaults on hand edited or outdated input.
type Element struct {
	value *Value

	attrs     []Attribute
	attrIndex map[string]int

	children []Child

	isArray           bool
	arrayOf           string
	deprecatedArrayOf string
}

func New() *Element {
	return &Element{}
}

// FromValue returns an element carrying v as its own value.
func FromValue(v Value) *Element {
	e := &Element{}
	e.SetValue(v)
	return e
}

func (e *Element) SetValue(v Value) {
	e.value = &v
}

// Value returns the own value, or an Undefined value if none was set.
func (e *Element) Value() Value {
	if e.value == nil {
		return Value{}
	}
	return *e.value
}

func (e *Element) IsValueUndefined() bool {
	return e.value == nil
}

// ClearValue makes the own value undefined again.
func (e *Element) ClearValue() {
	e.value = nil
}

func (e *Element) SetBoolValue(b bool)      { e.SetValue(FromBool(b)) }
func (e *Element) SetStringValue(s string)  { e.SetValue(FromString(s)) }
func (e *Element) SetIntValue(i int)        { e.SetValue(FromInt(i)) }
func (e *Element) SetDoubleValue(d float64) { e.SetValue(FromDouble(d)) }

func (e *Element) BoolValue() bool      { return e.Value().Bool() }
func (e *Element) StringValue() string  { return e.Value().String() }
func (e *Element) IntValue() int        { return e.Value().Int() }
func (e *Element) DoubleValue() float64 { return e.Value().Double() }

// Attributes

// SetAttribute sets the attribute name, keeping its position if it already
// exists.
func (e *Element) SetAttribute(name string, v Value) *Element {
	if i, ok := e.attrIndex[name]; ok {
		e.attrs[i].Value = v
		return e
	}
	if e.attrIndex == nil {
		e.attrIndex = map[string]int{}
	}
	e.attrIndex[name] = len(e.attrs)
	e.attrs = append(e.attrs, Attribute{Name: name, Value: v})
	return e
}

func (e *Element) SetBoolAttribute(name string, b bool) *Element {
	return e.SetAttribute(name, FromBool(b))
}

func (e *Element) SetStringAttribute(name, s string) *Element {
	return e.SetAttribute(name, FromString(s))
}

func (e *Element) SetIntAttribute(name string, i int) *Element {
	return e.SetAttribute(name, FromInt(i))
}

func (e *Element) SetDoubleAttribute(name string, d float64) *Element {
	return e.SetAttribute(name, FromDouble(d))
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attrIndex[name]
	return ok
}

// Attribute returns the attribute stored exactly under name.
func (e *Element) Attribute(name string) (Value, bool) {
	i, ok := e.attrIndex[name]
	if !ok {
		return Value{}, false
	}
	return e.attrs[i].Value, true
}

func (e *Element) RemoveAttribute(name string) {
	i, ok := e.attrIndex[name]
	if !ok {
		return
	}
	e.attrs = slices.Delete(e.attrs, i, i+1)
	delete(e.attrIndex, name)
	for j := i; j < len(e.attrs); j++ {
		e.attrIndex[e.attrs[j].Name] = j
	}
}

// Attributes returns the attributes in insertion order. The slice must not
// be modified.
func (e *Element) Attributes() []Attribute {
	return e.attrs
}

// AttributeValue resolves name the way format versions are kept compatible:
// the attribute name, then each deprecated attribute name, then a child
// called name or a deprecated name that carries its own value.
func (e *Element) AttributeValue(name string, deprecatedNames ...string) (Value, bool) {
	if v, ok := e.Attribute(name); ok {
		return v, true
	}
	for _, dn := range deprecatedNames {
		if dn == "" {
			continue
		}
		if v, ok := e.Attribute(dn); ok {
			return v, true
		}
	}
	child := e.nth(func(n string) bool { return n == name }, 0)
	for _, dn := range deprecatedNames {
		if child != nil {
			break
		}
		if dn != "" {
			child = e.nth(func(n string) bool { return n == dn }, 0)
		}
	}
	if child == nil || child.IsValueUndefined() {
		return Value{}, false
	}
	return child.Value(), true
}

func (e *Element) BoolAttribute(name string, def bool, deprecatedNames ...string) bool {
	if v, ok := e.AttributeValue(name, deprecatedNames...); ok {
		return v.Bool()
	}
	return def
}

func (e *Element) StringAttribute(name, def string, deprecatedNames ...string) string {
	if v, ok := e.AttributeValue(name, deprecatedNames...); ok {
		return v.String()
	}
	return def
}

func (e *Element) IntAttribute(name string, def int, deprecatedNames ...string) int {
	if v, ok := e.AttributeValue(name, deprecatedNames...); ok {
		return v.Int()
	}
	return def
}

func (e *Element) DoubleAttribute(name string, def float64, deprecatedNames ...string) float64 {
	if v, ok := e.AttributeValue(name, deprecatedNames...); ok {
		return v.Double()
	}
	return def
}

// Array mode

// ConsiderAsArray marks e as a homogeneous list whose members may carry any
// name.
func (e *Element) ConsiderAsArray() *Element {
	e.isArray = true
	e.arrayOf = ""
	e.deprecatedArrayOf = ""
	return e
}

// ConsiderAsArrayOf marks e as a list of tag. Children stored with an empty
// name, with tag or with the deprecated tag are its members; children added
// afterwards are named tag.
func (e *Element) ConsiderAsArrayOf(tag string, deprecatedTag ...string) *Element {
	e.isArray = true
	e.arrayOf = tag
	e.deprecatedArrayOf = ""
	if len(deprecatedTag) > 0 {
		e.deprecatedArrayOf = deprecatedTag[0]
	}
	return e
}

func (e *Element) IsArray() bool { return e.isArray }

func (e *Element) ArrayOf() string { return e.arrayOf }

func (e *Element) DeprecatedArrayOf() string { return e.deprecatedArrayOf }

// IsList reports whether e reads as a list of its children. Arrays do, and
// so does an element without own value or attributes whose children are
// all unnamed, which is how parsers return JSON and YAML sequences.
func (e *Element) IsList() bool {
	if !e.IsValueUndefined() {
		return false
	}
	if e.isArray {
		return true
	}
	if len(e.children) == 0 || len(e.attrs) != 0 {
		return false
	}
	for _, c := range e.children {
		if c.Name != "" {
			return false
		}
	}
	return true
}

func (e *Element) isMember(childName string) bool {
	if e.arrayOf == "" {
		return true
	}
	return childName == "" || childName == e.arrayOf ||
		(e.deprecatedArrayOf != "" && childName == e.deprecatedArrayOf)
}

// arrayName maps a requested name onto the array tag for tagged arrays.
func (e *Element) arrayName(name string) (string, bool) {
	if !e.isArray || e.arrayOf == "" || name == e.arrayOf {
		return name, false
	}
	return e.arrayOf, true
}

// selects matches the children requested by name. The array tag, or the
// empty name in an untagged array, selects every member; other names match
// exactly.
func (e *Element) selects(name string) func(string) bool {
	if e.isArray && name == e.arrayOf {
		return e.isMember
	}
	return func(n string) bool { return n == name }
}

// Children

// AddChild appends a child and returns it. In a tagged array the child is
// always named after the tag; a different name is coerced with a warning.
func (e *Element) AddChild(name string) *Element {
	if coerced, renamed := e.arrayName(name); renamed {
		if name != "" {
			Logger().Warn("renamed child added to array element",
				"name", name, "arrayOf", coerced)
		}
		name = coerced
	}
	child := &Element{}
	e.children = append(e.children, Child{Name: name, Element: child})
	return child
}

// Child returns the first child called name, falling back to the
// deprecated names.
func (e *Element) Child(name string, deprecatedNames ...string) *Element {
	return e.NthChild(name, 0, deprecatedNames...)
}

// NthChild returns the index-th child called name. In array mode the array
// members match the array tag. If nothing matches, each deprecated name is
// tried as an alias for the whole name.
func (e *Element) NthChild(name string, index int, deprecatedNames ...string) *Element {
	if coerced, renamed := e.arrayName(name); renamed {
		Logger().Warn("getting child of array element with another name",
			"name", name, "arrayOf", coerced)
		name = coerced
	}
	if c := e.nth(e.selects(name), index); c != nil {
		return c
	}
	for _, dn := range deprecatedNames {
		if dn == "" {
			continue
		}
		if c := e.nth(func(n string) bool { return n == dn }, index); c != nil {
			return c
		}
	}
	Logger().Debug("child not found", "name", name, "index", index)
	return New()
}

// Item returns the index-th member of an array element.
func (e *Element) Item(index int) *Element {
	if !e.isArray {
		Logger().Warn("getting child by index from an element which is not an array",
			"index", index)
		return New()
	}
	if c := e.nth(e.isMember, index); c != nil {
		return c
	}
	Logger().Warn("array index out of range", "index", index, "arrayOf", e.arrayOf)
	return New()
}

func (e *Element) nth(match func(string) bool, index int) *Element {
	if index < 0 {
		return nil
	}
	cur := 0
	for _, c := range e.children {
		if !match(c.Name) {
			continue
		}
		if cur == index {
			return c.Element
		}
		cur++
	}
	return nil
}

// ChildrenCount counts the children called name or a deprecated name. An
// empty name is only allowed in array mode, where it counts the members.
func (e *Element) ChildrenCount(name string, deprecatedNames ...string) int {
	if name == "" {
		if !e.isArray {
			Logger().Warn("counting children without a name on an element which is not an array")
			return 0
		}
		name = e.arrayOf
		deprecatedNames = []string{e.deprecatedArrayOf}
	}
	name, _ = e.arrayName(name)
	match := e.matcher(name, deprecatedNames)
	count := 0
	for _, c := range e.children {
		if match(c.Name) {
			count++
		}
	}
	return count
}

func (e *Element) HasChild(name string, deprecatedNames ...string) bool {
	name, _ = e.arrayName(name)
	match := e.matcher(name, deprecatedNames)
	return slices.ContainsFunc(e.children, func(c Child) bool {
		return match(c.Name)
	})
}

func (e *Element) matcher(name string, deprecatedNames []string) func(string) bool {
	sel := e.selects(name)
	return func(n string) bool {
		if sel(n) {
			return true
		}
		for _, dn := range deprecatedNames {
			if dn != "" && n == dn {
				return true
			}
		}
		return false
	}
}

// Children returns all children in order. The slice must not be modified,
// but the elements it points to may be.
func (e *Element) Children() []Child {
	return e.children
}

// RemoveChild removes every child stored exactly under name.
func (e *Element) RemoveChild(name string) {
	e.children = slices.DeleteFunc(e.children, func(c Child) bool {
		return c.Name == name
	})
}

// Whole element operations

// IsEmpty reports whether e has no value, no attributes and no children.
func (e *Element) IsEmpty() bool {
	return e.value == nil && len(e.attrs) == 0 && len(e.children) == 0
}

// ReplaceWith moves the content of o into e. o is left empty.
func (e *Element) ReplaceWith(o *Element) {
	if e == o {
		return
	}
	*e = *o
	*o = Element{}
}

func (e *Element) Clone() *Element {
	res := &Element{}
	return e.CloneTo(res)
}

func (e *Element) CloneTo(dst *Element) *Element {
	dst.value = nil
	if e.value != nil {
		v := *e.value
		dst.value = &v
	}
	dst.attrs = slices.Clone(e.attrs)
	dst.attrIndex = maps.Clone(e.attrIndex)
	dst.children = make([]Child, len(e.children))
	for i, c := range e.children {
		dst.children[i] = Child{Name: c.Name, Element: c.Element.Clone()}
	}
	dst.isArray = e.isArray
	dst.arrayOf = e.arrayOf
	dst.deprecatedArrayOf = e.deprecatedArrayOf
	return dst
}

// Visit walks the tree depth first, calling f before (isPost false) and
// after (isPost true) the children of each element. Children are only
// visited if the pre-order call returns true. The root is visited with an
// empty name.
func (e *Element) Visit(f func(name string, e *Element, isPost bool) (bool, error)) error {
	return e.visit("", f)
}

func (e *Element) visit(name string, f func(string, *Element, bool) (bool, error)) error {
	dive, err := f(name, e, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range e.children {
			if err := c.Element.visit(c.Name, f); err != nil {
				return err
			}
		}
	}
	if _, err := f(name, e, true); err != nil {
		return err
	}
	return nil
}
