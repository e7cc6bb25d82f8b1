package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	asteriskRun = regexp.MustCompile(`\*+`)
	fencedBlock = regexp.MustCompile("(?s)```.*?```")
	// "2) ", "3. ", "4- ", "Step 5:" and bullets. A number followed only by
	// a space is a quantity and is left alone.
	listMarker    = regexp.MustCompile(`(?i)^\s*(?:(?:step\s*\d+\s*[:.)\-]?|\d+[.)\-]|[-•+])(?:\s+|$))+`)
	whitespaceRun = regexp.MustCompile(`\s{2,}`)
)

// Sanitize cleans a single display string. It is applied until the output
// stops changing, so Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	for {
		next := sanitizeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

// SanitizeNullable is Sanitize for optional fields. Nil stays nil and a
// value that sanitizes to "" becomes nil.
func SanitizeNullable(s *string) *string {
	if s == nil {
		return nil
	}
	return optional(Sanitize(*s))
}

func sanitizeOnce(s string) string {
	s = NormalizeScalar(s)
	s = asteriskRun.ReplaceAllString(s, "")
	s = fencedBlock.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "`", "")
	s = listMarker.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = StripCJK(s)
	if t := strings.TrimSpace(s); strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		return ""
	}
	return strings.TrimSpace(s)
}

// StripCJK removes Chinese, Japanese and Korean characters along with CJK
// punctuation and full-width forms.
func StripCJK(s string) string {
	return strings.Map(func(r rune) rune {
		if isCJK(r) {
			return -1
		}
		return r
	}, s)
}

func isCJK(r rune) bool {
	switch {
	case r >= 0x3000 && r <= 0x30FF, r >= 0xFF00 && r <= 0xFFEF:
		return true
	}
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// SanitizeList sanitizes every element and drops the ones that end up
// empty. The result is never nil.
func SanitizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := Sanitize(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SanitizeRecipe applies Sanitize to every field of r.
func SanitizeRecipe(r Recipe) Recipe {
	out := Recipe{
		ID:           r.ID,
		Title:        Sanitize(r.Title),
		Description:  Sanitize(r.Description),
		Image:        Sanitize(r.Image),
		Ingredients:  SanitizeList(r.Ingredients),
		Instructions: SanitizeList(r.Instructions),
		PrepTime:     SanitizeNullable(r.PrepTime),
		CookTime:     SanitizeNullable(r.CookTime),
		Servings:     SanitizeNullable(r.Servings),
		Cuisine:      SanitizeNullable(r.Cuisine),
		Difficulty:   SanitizeNullable(r.Difficulty),
		Tags:         SanitizeList(r.Tags),
	}
	if out.Title == "" {
		out.Title = DefaultTitle
	}
	return out
}
