package extract

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FormatMinutes renders a duration. Bare numbers become "<n> mins", free
// text is passed through trimmed, and missing values become "".
func FormatMinutes(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case json.Number:
		return t.String() + " mins"
	case int:
		return strconv.Itoa(t) + " mins"
	case int64:
		return strconv.FormatInt(t, 10) + " mins"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64) + " mins"
	case string:
		s := strings.TrimSpace(t)
		if s != "" && isDigits(s) {
			return s + " mins"
		}
		return s
	}
	return NormalizeScalar(v)
}

var difficultyKeywords = []struct {
	level    string
	keywords []string
}{
	{DifficultyEasy, []string{"easy", "beginner"}},
	{DifficultyMedium, []string{"medium", "moderate", "intermediate"}},
	{DifficultyHard, []string{"hard", "difficult", "advanced"}},
}

// NormalizeDifficulty maps free text onto Easy, Medium or Hard by keyword.
// Anything unrecognized, including empty input, is Easy.
func NormalizeDifficulty(v any) string {
	s := strings.ToLower(NormalizeScalar(v))
	for _, d := range difficultyKeywords {
		for _, kw := range d.keywords {
			if strings.Contains(s, kw) {
				return d.level
			}
		}
	}
	return DifficultyEasy
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
