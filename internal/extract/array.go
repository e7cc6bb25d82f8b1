package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	lineBreak = regexp.MustCompile(`\r\n|\r|\n`)
	// "1. Boil water 2. Add chicken" written on one line.
	inlineStepMarker = regexp.MustCompile(`(?i)(?:^|\s)(?:step\s*)?\d+[.)]\s+`)
	bareStepMarker   = regexp.MustCompile(`(?i)^(?:step\s*)?\d+[.):]?$`)
)

// ParseArrayField coerces a list-valued field into a list of strings.
// Strings are tried as a JSON array, then as newline separated, then as
// comma separated, then as a single item. The result is never nil.
func ParseArrayField(v any) []string {
	return parseList(v, splitCommas)
}

// ParseStepField is ParseArrayField for cooking steps. A single line is
// split into sentences instead of on commas, since steps routinely list
// several ingredients.
func ParseStepField(v any) []string {
	return parseList(v, splitSteps)
}

func parseList(v any, splitLine func(string) []string) []string {
	switch t := v.(type) {
	case []any:
		return normalizeAll(t)
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return normalizeAll(items)
	case string:
		return parseListString(t, splitLine)
	}
	return []string{}
}

func parseListString(s string, splitLine func(string) []string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	if strings.HasPrefix(s, "[") {
		if v, ok := decodeJSON(s); ok {
			if list, ok := v.([]any); ok {
				return normalizeAll(list)
			}
		}
	}
	if pieces := nonEmpty(lineBreak.Split(s, -1)); len(pieces) > 1 {
		return pieces
	}
	if pieces := nonEmpty(splitLine(s)); len(pieces) > 1 {
		return pieces
	}
	if item := NormalizeScalar(s); item != "" {
		return []string{item}
	}
	return []string{}
}

func normalizeAll(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := NormalizeScalar(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonEmpty(pieces []string) []string {
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if s := NormalizeScalar(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func splitCommas(s string) []string {
	return strings.Split(s, ",")
}

func splitSteps(s string) []string {
	if steps := splitInlineSteps(s); len(steps) > 1 {
		return steps
	}
	return splitSentences(s)
}

func splitInlineSteps(s string) []string {
	marks := inlineStepMarker.FindAllStringIndex(s, -1)
	if len(marks) < 2 || strings.TrimSpace(s[:marks[0][0]]) != "" {
		return nil
	}
	steps := make([]string, 0, len(marks))
	for i, m := range marks {
		end := len(s)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		steps = append(steps, s[m[1]:end])
	}
	return steps
}

// splitSentences cuts after '.', '!' or '?' when followed by whitespace.
// A cut is skipped when the text so far is only a step number.
func splitSentences(s string) []string {
	var (
		out   []string
		start int
	)
	runes := []rune(s)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		sentence := strings.TrimSpace(string(runes[start : i+1]))
		if bareStepMarker.MatchString(sentence) {
			continue
		}
		out = append(out, sentence)
		start = i + 1
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		out = append(out, rest)
	}
	return out
}
