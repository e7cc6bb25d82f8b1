package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var trailingCommas = regexp.MustCompile(`(?:\s*,)+\s*$`)

// NormalizeScalar coerces an arbitrary decoded value into a clean string.
//
// Structured text that decodes to an object with a title or name yields
// that property. Otherwise trailing commas and one matching pair of
// surrounding quotes are removed and the result is trimmed.
func NormalizeScalar(v any) string {
	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return ""
	}
	if s[0] == '{' || s[0] == '[' {
		if title, ok := titleFromJSON(s); ok {
			return title
		}
	}
	s = trailingCommas.ReplaceAllString(s, "")
	s = stripQuoteLayer(s)
	return strings.TrimSpace(s)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

func titleFromJSON(s string) (string, bool) {
	v, ok := decodeJSON(s)
	if !ok {
		return "", false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	for _, key := range []string{"title", "name"} {
		if val, found := obj[key]; found && val != nil {
			return strings.TrimSpace(stringify(val)), true
		}
	}
	return "", false
}

// stripQuoteLayer removes one matching pair of wrapping quotes. Quotes
// that are unpaired or also appear inside the value belong to the text.
func stripQuoteLayer(s string) string {
	if strings.Trim(s, `"'`) == "" {
		return ""
	}
	if len(s) < 2 || !isQuote(s[0]) || s[len(s)-1] != s[0] {
		return s
	}
	inner := s[1 : len(s)-1]
	if strings.IndexByte(inner, s[0]) >= 0 {
		return s
	}
	return inner
}

func isQuote(b byte) bool {
	return b == '"' || b == '\''
}
