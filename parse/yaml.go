package parse

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/gdevelop/gdser/sertree"
)

// parseYAML reads YAML the way JSON is read: mapping keys become named
// children, sequence items unnamed children and scalars own values.
func parseYAML(d []byte) (*sertree.Element, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey()); err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrParse, err)
	}
	res := sertree.New()
	if err := fromYAML(res, v, 0); err != nil {
		return nil, err
	}
	return res, nil
}

func fromYAML(e *sertree.Element, v any, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: yaml: nesting deeper than %d", ErrParse, MaxDepth)
	}
	switch x := v.(type) {
	case nil:
	case yaml.MapSlice:
		for _, item := range x {
			if err := fromYAML(e.AddChild(fmt.Sprint(item.Key)), item.Value, depth+1); err != nil {
				return err
			}
		}
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(x)) {
			if err := fromYAML(e.AddChild(k), x[k], depth+1); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range x {
			if err := fromYAML(e.AddChild(""), item, depth+1); err != nil {
				return err
			}
		}
	case bool:
		e.SetBoolValue(x)
	case string:
		e.SetStringValue(x)
	case int:
		e.SetIntValue(x)
	case int64:
		e.SetIntValue(int(x))
	case uint64:
		e.SetIntValue(int(min(x, uint64(1<<63-1))))
	case float64:
		e.SetDoubleValue(x)
	default:
		e.SetStringValue(fmt.Sprint(x))
	}
	return nil
}
