// Package extract turns free-form LLM output into a typed Recipe.
//
// Nothing in this package returns an error. Input that cannot be understood
// degrades to empty fields and the DefaultTitle sentinel.
package extract

// DefaultTitle is used whenever no usable title survives extraction.
const DefaultTitle = "Generated Recipe"

// Difficulty levels produced by NormalizeDifficulty.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Source names the interpretation strategy that produced a Draft.
type Source string

const (
	SourceJSON          Source = "json"
	SourceJSONSubstring Source = "json_substring"
	SourceHeuristic     Source = "heuristic"
)

// Recipe is the sanitized result of extraction.
type Recipe struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     *string  `json:"prep_time"`
	CookTime     *string  `json:"cook_time"`
	Servings     *string  `json:"servings"`
	Cuisine      *string  `json:"cuisine"`
	Difficulty   *string  `json:"difficulty"`
	Tags         []string `json:"tags"`
}

// Draft is an interpreted but not yet sanitized recipe. Each call to
// Interpret builds a new one.
type Draft struct {
	Title        string
	Description  string
	Image        string
	Ingredients  []string
	Instructions []string
	PrepTime     *string
	CookTime     *string
	Servings     *string
	Cuisine      *string
	Difficulty   *string
	Tags         []string
	Source       Source
}

// Finalize runs the sanitization pass and returns the resulting Recipe.
func (d Draft) Finalize() Recipe {
	return SanitizeRecipe(Recipe{
		Title:        d.Title,
		Description:  d.Description,
		Image:        d.Image,
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
		PrepTime:     d.PrepTime,
		CookTime:     d.CookTime,
		Servings:     d.Servings,
		Cuisine:      d.Cuisine,
		Difficulty:   d.Difficulty,
		Tags:         d.Tags,
	})
}

// Parse interprets raw model output and sanitizes the result.
func Parse(text string) Recipe {
	return Interpret(text).Finalize()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
