package coerce

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Trees are the values encoding/json produces when decoding into any:
// map[string]any, []any, string, float64, json.Number, bool and nil.

// IsEmpty reports whether v carries no data: nil, "", an empty map, or a
// list whose elements are all empty.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		for _, e := range t {
			if !IsEmpty(e) {
				return false
			}
		}
		return true
	case []map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// Lookup walks a comma separated path ("summary_info,shareAndDebt,0") through
// tree. Numeric segments index lists; any other segment is a map key.
// Whenever the walk reaches an empty value, a missing key or an index out of
// range, def is returned.
func Lookup(tree any, path string, def any) any {
	if IsEmpty(tree) {
		return def
	}
	cur := tree
	for _, seg := range strings.Split(path, ",") {
		var next any
		switch node := cur.(type) {
		case map[string]any:
			next = node[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < -len(node) || i >= len(node) {
				return def
			}
			if i < 0 {
				i += len(node)
			}
			next = node[i]
		default:
			return def
		}
		if IsEmpty(next) {
			return def
		}
		cur = next
	}
	return cur
}

// Text renders a scalar tree value as a string. ok is false for nil, maps
// and lists.
func Text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	default:
		return "", false
	}
}

// LookupString is Lookup followed by Text, returning def when the value is
// missing or not a scalar.
func LookupString(tree any, path, def string) string {
	v := Lookup(tree, path, nil)
	if s, ok := Text(v); ok {
		return s
	}
	return def
}

// LookupAmount reads an amount at path, defaulting to the text def.
func LookupAmount(tree any, path, def string) (float64, error) {
	return ParseAmount(LookupString(tree, path, def))
}

// LookupList returns the list at path, or nil.
func LookupList(tree any, path string) []any {
	if l, ok := Lookup(tree, path, nil).([]any); ok {
		return l
	}
	return nil
}

// Normalize converts a value into the generic tree form by a JSON round
// trip. Typed structs with json tags become maps.
func Normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
