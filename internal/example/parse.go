package example

import (
	"fmt"
	"sort"
)

// ParseSelect converts a decoded YAML or JSON value into a Select.
//
//	nil                      -> select everything
//	"id"                     -> [id]
//	[id, {friends: [id]}]    -> plain names and nested selections
//	{User: [id], Post: [..]} -> selection narrowed per concrete type
func ParseSelect(v any) (*Select, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return Pick(val), nil
	case []any:
		s := &Select{}
		for i, item := range val {
			entries, err := parseEntry(item)
			if err != nil {
				return nil, fmt.Errorf("select[%d]: %w", i, err)
			}
			s.Entries = append(s.Entries, entries...)
		}
		return s, nil
	case []string:
		return Pick(val...), nil
	}

	m, ok := stringMap(v)
	if !ok {
		return nil, fmt.Errorf("unsupported select value of type %T", v)
	}
	s := &Select{ByType: make(map[string]*Select, len(m))}
	for _, k := range sortedKeys(m) {
		sub, err := ParseSelect(m[k])
		if err != nil {
			return nil, fmt.Errorf("select.%s: %w", k, err)
		}
		s.ByType[k] = sub
	}
	return s, nil
}

func parseEntry(item any) ([]SelectEntry, error) {
	if name, ok := item.(string); ok {
		return []SelectEntry{{Name: name}}, nil
	}
	m, ok := stringMap(item)
	if !ok {
		return nil, fmt.Errorf("unsupported select entry of type %T", item)
	}
	entries := make([]SelectEntry, 0, len(m))
	for _, k := range sortedKeys(m) {
		sub, err := ParseSelect(m[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		entries = append(entries, SelectEntry{Name: k, Nested: true, Select: sub})
	}
	return entries, nil
}

// ParseExpand converts a decoded expand directive into unbounded nodes.
// A mapping yields one node per key in key order; a list accepts field
// names and single-key mappings.
func ParseExpand(v any) ([]Node, error) {
	if v == nil {
		return nil, nil
	}
	if list, ok := v.([]any); ok {
		var nodes []Node
		for i, item := range list {
			if name, ok := item.(string); ok {
				nodes = append(nodes, Expand(name, nil))
				continue
			}
			sub, err := ParseExpand(item)
			if err != nil {
				return nil, fmt.Errorf("expand[%d]: %w", i, err)
			}
			nodes = append(nodes, sub...)
		}
		return nodes, nil
	}

	m, ok := stringMap(v)
	if !ok {
		return nil, fmt.Errorf("unsupported expand value of type %T", v)
	}
	nodes := make([]Node, 0, len(m))
	for _, k := range sortedKeys(m) {
		sel, err := ParseSelect(m[k])
		if err != nil {
			return nil, fmt.Errorf("expand.%s: %w", k, err)
		}
		nodes = append(nodes, Expand(k, sel))
	}
	return nodes, nil
}

// stringMap normalises the map shapes produced by encoding/json and yaml.v2.
func stringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
