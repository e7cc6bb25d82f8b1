package extract

import "strings"

// strategy tries one way of reading model output.
type strategy struct {
	source Source
	read   func(text string) (map[string]any, bool)
}

var strategies = []strategy{
	{SourceJSON, readWholeJSON},
	{SourceJSONSubstring, readBraceSpan},
}

// Interpret converts raw model output into a Draft. The whole text is
// tried as JSON first, then the span between the outermost braces, and
// finally the text is read as prose by ExtractSections.
func Interpret(text string) Draft {
	for _, s := range strategies {
		if obj, ok := s.read(text); ok {
			d := draftFromObject(obj)
			d.Source = s.source
			return d
		}
	}
	d := draftFromSections(ExtractSections(text))
	d.Source = SourceHeuristic
	return d
}

func readWholeJSON(text string) (map[string]any, bool) {
	v, ok := decodeJSON(strings.TrimSpace(text))
	if !ok {
		return nil, false
	}
	return recipeObject(v)
}

func readBraceSpan(text string) (map[string]any, bool) {
	span, ok := braceSpan(text)
	if !ok {
		return nil, false
	}
	v, ok := decodeJSON(span)
	if !ok {
		return nil, false
	}
	return recipeObject(v)
}

// draftFromObject maps a decoded object onto a Draft. Keys have already
// been normalized by recipeObject.
func draftFromObject(obj map[string]any) Draft {
	d := Draft{
		Title:        NormalizeScalar(firstPresent(obj, "title", "name")),
		Description:  NormalizeScalar(obj["description"]),
		Image:        NormalizeScalar(firstPresent(obj, "imageurl", "image")),
		Ingredients:  ParseArrayField(obj["ingredients"]),
		Instructions: ParseStepField(firstPresent(obj, "instructions", "steps", "directions")),
		Tags:         ParseArrayField(obj["tags"]),
		PrepTime:     optional(FormatMinutes(obj["preptime"])),
		CookTime:     optional(FormatMinutes(obj["cooktime"])),
		Servings:     optional(NormalizeScalar(servingsValue(obj["servings"]))),
		Cuisine:      optional(NormalizeScalar(obj["cuisine"])),
		Difficulty:   difficulty(obj["difficulty"]),
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	return d
}

func draftFromSections(sec Sections) Draft {
	d := Draft{
		Title:        sec.Title,
		Description:  sec.Description,
		Ingredients:  ParseArrayField(sec.IngredientsText),
		Instructions: ParseStepField(sec.InstructionsText),
		Tags:         []string{},
		PrepTime:     optional(FormatMinutes(sec.PrepTime)),
		CookTime:     optional(FormatMinutes(sec.CookTime)),
		Servings:     optional(NormalizeScalar(sec.Servings)),
		Cuisine:      optional(NormalizeScalar(sec.Cuisine)),
		Difficulty:   difficulty(sec.Difficulty),
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	return d
}

// difficulty classifies a value the model supplied and leaves a missing
// one unset.
func difficulty(v any) *string {
	if NormalizeScalar(v) == "" {
		return nil
	}
	level := NormalizeDifficulty(v)
	return &level
}

// servingsValue accepts {"value": 4} as well as plain numbers and strings.
func servingsValue(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if val, found := normalizeKeys(obj)["value"]; found {
		return val
	}
	return v
}

func firstPresent(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok && NormalizeScalar(v) != "" {
			return v
		}
	}
	return nil
}
