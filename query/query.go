// Package query evaluates expr-lang expressions against serialization
// trees.
//
// The tree is seen as plain Go data, as returned by ToAny. Its top level
// fields are variables of the expression and the whole tree is also
// available as doc:
//
//	properties.windowWidth * 2
//	len(doc.layouts)
//	getpath("$.layouts[0][0].name")
package query

import (
	"errors"
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/samber/lo"

	"github.com/gdevelop/gdser/sertree"
)

var ErrQuery = errors.New("query error")

// ToAny converts e to maps, slices and scalars.
//
// An element with an own value gives that value. An array, or an element
// whose children are all unnamed, gives a []any. Any other element gives
// a map[string]any of its attributes and children, where children sharing
// a name are gathered in a []any.
func ToAny(e *sertree.Element) any {
	if !e.IsValueUndefined() {
		return scalar(e.Value())
	}
	children := e.Children()
	if e.IsList() {
		res := make([]any, len(children))
		for i, c := range children {
			res[i] = ToAny(c.Element)
		}
		return res
	}
	res := make(map[string]any, len(e.Attributes())+len(children))
	for _, a := range e.Attributes() {
		res[a.Name] = scalar(a.Value)
	}
	count := lo.CountValuesBy(children, func(c sertree.Child) string { return c.Name })
	for _, c := range children {
		v := ToAny(c.Element)
		if count[c.Name] == 1 {
			res[c.Name] = v
			continue
		}
		l, _ := res[c.Name].([]any)
		res[c.Name] = append(l, v)
	}
	return res
}

func scalar(v sertree.Value) any {
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

// Env returns the expression environment of doc.
func Env(doc *sertree.Element) map[string]any {
	env := map[string]any{}
	v := ToAny(doc)
	if m, ok := v.(map[string]any); ok {
		for k, x := range m {
			env[k] = x
		}
	}
	env["doc"] = v
	return env
}

func exprOpts(doc *sertree.Element) []expr.Option {
	return []expr.Option{
		expr.Function("getpath", func(params ...any) (any, error) {
			res, err := doc.Lookup(params[0].(string))
			if err != nil {
				return nil, err
			}
			return ToAny(res), nil
		},
			new(func(string) any)),
		expr.Function("listpath", func(params ...any) (any, error) {
			elts, err := doc.List(params[0].(string))
			if err != nil {
				return nil, err
			}
			res := make([]any, len(elts))
			for i, e := range elts {
				res[i] = ToAny(e)
			}
			return res, nil
		},
			new(func(string) []any)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

// Eval evaluates input against doc.
func Eval(doc *sertree.Element, input string) (any, error) {
	program, err := expr.Compile(input, exprOpts(doc)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	res, err := expr.Run(program, Env(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return res, nil
}

// Select returns the elements matched by path for which the boolean
// expression where holds. where is evaluated with the environment of each
// matched element, an empty where selects everything.
func Select(doc *sertree.Element, path, where string) ([]*sertree.Element, error) {
	elts, err := doc.List(path)
	if err != nil {
		return nil, err
	}
	if where == "" {
		return elts, nil
	}
	program, err := expr.Compile(where, append(exprOpts(doc), expr.AsBool())...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	var res []*sertree.Element
	for _, e := range elts {
		v, err := expr.Run(program, Env(e))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQuery, err)
		}
		ok, isBool := v.(bool)
		if !isBool {
			return nil, fmt.Errorf("%w: %q gave %T, want bool", ErrQuery, where, v)
		}
		if ok {
			res = append(res, e)
		}
	}
	return res, nil
}
