package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var sanitizeCases = []struct {
	name string
	in   string
	want string
}{
	{"bold", "  **Bold** text  ", "Bold text"},
	{"fenced block", "```go\ncode\n``` after", "after"},
	{"inline code", "`tick`", "tick"},
	{"paren number", "2) Chop", "Chop"},
	{"dot number", "3. Stir", "Stir"},
	{"dash number", "4- Bake", "Bake"},
	{"step label", "Step 5: Serve", "Serve"},
	{"stacked markers", "1. - Mix", "Mix"},
	{"dash bullet", "- item", "item"},
	{"dot bullet", "• item", "item"},
	{"plus bullet", "+ item", "item"},
	{"star bullet", "* item", "item"},
	{"quantity kept", "2 cups water", "2 cups water"},
	{"decimal kept", "1.5 cups flour", "1.5 cups flour"},
	{"range kept", "3-4 eggs", "3-4 eggs"},
	{"whitespace runs", "a   b\t\tc", "a b c"},
	{"cjk", "Tofu 豆腐 soup", "Tofu soup"},
	{"object", `{"a":1}`, ""},
	{"array", "[1,2]", ""},
	{"object with title", `{"title":"Pie"}`, "Pie"},
	{"quotes and commas", `"quoted",`, "quoted"},
	{"markdown polluted title", "**Garlic** Butter ```code``` Pasta, ", "Garlic Butter Pasta"},
	{"inner quotes", `Serve with "sauce"`, `Serve with "sauce"`},
	{"unpaired quote", `12" pizza`, `12" pizza`},
	{"empty", "", ""},
}

func TestSanitize(t *testing.T) {
	for _, tt := range sanitizeCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	extra := []string{
		"**1. ** `x`",
		"\"'nested'\"",
		"Step 1: Step 2: go",
		"カレー  **Curry**  카레,,",
		"  ,,, ",
	}
	inputs := extra
	for _, tt := range sanitizeCases {
		inputs = append(inputs, tt.in)
	}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitizeNullable(t *testing.T) {
	t.Run("should keep nil", func(t *testing.T) {
		assert.Nil(t, SanitizeNullable(nil))
	})

	t.Run("should turn blank into nil", func(t *testing.T) {
		assert.Nil(t, SanitizeNullable(strPtr("  ")))
		assert.Nil(t, SanitizeNullable(strPtr("**")))
	})

	t.Run("should clean a value", func(t *testing.T) {
		assert.Equal(t, strPtr("Hard"), SanitizeNullable(strPtr("**Hard**")))
	})
}

func TestStripCJK(t *testing.T) {
	assert.Equal(t, " Curry ", StripCJK("カレー Curry 카레"))
	assert.Equal(t, "Rice", StripCJK("Rice、。"))
	assert.Equal(t, "plain", StripCJK("plain"))
}

func TestSanitizeRecipe(t *testing.T) {
	t.Run("should fill defaults", func(t *testing.T) {
		r := SanitizeRecipe(Recipe{})

		assert.Equal(t, DefaultTitle, r.Title)
		assert.Equal(t, []string{}, r.Ingredients)
		assert.Equal(t, []string{}, r.Instructions)
		assert.Equal(t, []string{}, r.Tags)
	})

	t.Run("should drop elements that clean to nothing", func(t *testing.T) {
		r := SanitizeRecipe(Recipe{
			ID:          "abc",
			Title:       "# **Stew**",
			Ingredients: []string{"- 1 kg beef", "**", "{\"x\":1}"},
			Cuisine:     strPtr("  French "),
		})

		assert.Equal(t, "abc", r.ID)
		assert.Equal(t, "# Stew", r.Title)
		assert.Equal(t, []string{"1 kg beef"}, r.Ingredients)
		assert.Equal(t, strPtr("French"), r.Cuisine)
	})
}
