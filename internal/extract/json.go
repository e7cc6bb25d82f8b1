package extract

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// decodeJSON decodes exactly one JSON value from s. Numbers are kept as
// json.Number so integers are not rendered in float notation.
func decodeJSON(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return v, true
}

// braceSpan returns the text between the first '{' and the last '}'.
func braceSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// recipeObject locates the recipe object inside a decoded document. Bare
// arrays and {"recipe": ...} or {"recipes": [...]} wrappers are unwrapped.
func recipeObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		fields := normalizeKeys(t)
		if _, hasTitle := fields["title"]; hasTitle {
			return fields, true
		}
		if inner, ok := fields["recipe"].(map[string]any); ok {
			return normalizeKeys(inner), true
		}
		if list, ok := fields["recipes"].([]any); ok {
			if obj, ok := recipeObject(list); ok {
				return obj, true
			}
		}
		return fields, true
	case []any:
		for _, item := range t {
			if obj, ok := item.(map[string]any); ok {
				return normalizeKeys(obj), true
			}
		}
	}
	return nil, false
}

// normalizeKeys lowercases keys and drops separators so prep_time, prepTime
// and "Prep Time" all map to preptime.
func normalizeKeys(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		key := strings.ToLower(k)
		key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
		if _, exists := out[key]; !exists || k == key {
			out[key] = v
		}
	}
	return out
}
