package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestInterpret_Strategies(t *testing.T) {
	t.Run("should parse clean JSON", func(t *testing.T) {
		text := `{"title":"Pasta","ingredients":["noodles","sauce"],"instructions":["Boil","Serve"],"prep_time":15,"difficulty":"easy"}`

		d := Interpret(text)
		r := d.Finalize()

		assert.Equal(t, SourceJSON, d.Source)
		assert.Equal(t, "Pasta", r.Title)
		assert.Equal(t, []string{"noodles", "sauce"}, r.Ingredients)
		assert.Equal(t, []string{"Boil", "Serve"}, r.Instructions)
		assert.Equal(t, strPtr("15 mins"), r.PrepTime)
		assert.Equal(t, strPtr(DifficultyEasy), r.Difficulty)
		assert.Nil(t, r.CookTime)
		assert.NotNil(t, r.Tags)
		assert.Empty(t, r.Tags)
	})

	t.Run("should find JSON inside prose", func(t *testing.T) {
		text := "Here you go:\n```json\n{\"title\":\"Salad\",\"ingredients\":\"lettuce, tomato\"}\n```\nEnjoy!"

		d := Interpret(text)
		r := d.Finalize()

		assert.Equal(t, SourceJSONSubstring, d.Source)
		assert.Equal(t, "Salad", r.Title)
		assert.Equal(t, []string{"lettuce", "tomato"}, r.Ingredients)
		assert.Equal(t, []string{}, r.Instructions)
	})

	t.Run("should fall back to prose extraction", func(t *testing.T) {
		text := "Chicken Soup\nA warm broth.\n\nIngredients\n1 cup chicken\n2 cups water\n\nInstructions\n1. Boil water\n2. Add chicken"

		d := Interpret(text)
		r := d.Finalize()

		assert.Equal(t, SourceHeuristic, d.Source)
		assert.Equal(t, "Chicken Soup", r.Title)
		assert.Equal(t, "A warm broth.", r.Description)
		assert.Equal(t, []string{"1 cup chicken", "2 cups water"}, r.Ingredients)
		assert.Equal(t, []string{"Boil water", "Add chicken"}, r.Instructions)
	})

	t.Run("should clean markdown in fields", func(t *testing.T) {
		r := Parse(`{"title":"**Soup**","instructions":["**1. Preheat oven**"]}`)

		assert.Equal(t, "Soup", r.Title)
		assert.Equal(t, []string{"Preheat oven"}, r.Instructions)
	})

	t.Run("should return the default recipe for empty input", func(t *testing.T) {
		d := Interpret("")
		r := d.Finalize()

		assert.Equal(t, SourceHeuristic, d.Source)
		assert.Equal(t, DefaultTitle, r.Title)
		assert.Equal(t, []string{}, r.Ingredients)
		assert.Equal(t, []string{}, r.Instructions)
		assert.Equal(t, []string{}, r.Tags)
		assert.Nil(t, r.PrepTime)
		assert.Nil(t, r.Difficulty)
	})
}

func TestInterpret_ModelOutputs(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		source       Source
		title        string
		ingredients  []string
		instructions []string
	}{
		{
			name:         "should read a complete JSON recipe",
			text:         `{"title":"Halo-Halo","description":"Dessert","ingredients":["ice","beans"],"instructions":["Layer","Serve"],"prep_time":"15","cook_time":null,"servings":"2","cuisine":"Filipino","difficulty":"easy"}`,
			source:       SourceJSON,
			title:        "Halo-Halo",
			ingredients:  []string{"ice", "beans"},
			instructions: []string{"Layer", "Serve"},
		},
		{
			name:         "should read JSON between chatty lines",
			text:         "Sure! Here's your recipe:\n{\"title\":\"Adobo\",\"ingredients\":[\"chicken\",\"soy sauce\"],\"instructions\":[\"Simmer\"]}\nEnjoy!",
			source:       SourceJSONSubstring,
			title:        "Adobo",
			ingredients:  []string{"chicken", "soy sauce"},
			instructions: []string{"Simmer"},
		},
		{
			name:         "should read a prose recipe",
			text:         "Chicken Soup\nA warm broth.\n\nIngredients\n1 cup chicken\n2 cups water\n\nInstructions\n1. Boil water\n2. Add chicken",
			source:       SourceHeuristic,
			title:        "Chicken Soup",
			ingredients:  []string{"1 cup chicken", "2 cups water"},
			instructions: []string{"Boil water", "Add chicken"},
		},
		{
			name:         "should read headers with trailing words",
			text:         "Pancit\nIngredients for 4 people:\n1 pack noodles\n2 tbsp soy sauce\nInstructions:\n1. Soak noodles\n2. Stir-fry",
			source:       SourceHeuristic,
			title:        "Pancit",
			ingredients:  []string{"1 pack noodles", "2 tbsp soy sauce"},
			instructions: []string{"Soak noodles", "Stir-fry"},
		},
		{
			name:         "should move numbered steps out of the ingredient list",
			text:         "Rice Bowl\nIngredients\n1 cup rice\n2 cups water\n\n1. Boil water\n2. Add rice",
			source:       SourceHeuristic,
			title:        "Rice Bowl",
			ingredients:  []string{"1 cup rice", "2 cups water"},
			instructions: []string{"Boil water", "Add rice"},
		},
		{
			name:         "should return the default recipe for empty output",
			text:         "",
			source:       SourceHeuristic,
			title:        DefaultTitle,
			ingredients:  []string{},
			instructions: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Interpret(tt.text)
			r := d.Finalize()

			assert.Equal(t, tt.source, d.Source)
			assert.Equal(t, tt.title, r.Title)
			assert.Equal(t, tt.ingredients, r.Ingredients)
			assert.Equal(t, tt.instructions, r.Instructions)
		})
	}

	t.Run("should normalize the optional JSON fields", func(t *testing.T) {
		r := Parse(tests[0].text)

		assert.Equal(t, "Dessert", r.Description)
		assert.Equal(t, strPtr("15 mins"), r.PrepTime)
		assert.Nil(t, r.CookTime)
		assert.Equal(t, strPtr("2"), r.Servings)
		assert.Equal(t, strPtr("Filipino"), r.Cuisine)
		assert.Equal(t, strPtr(DifficultyEasy), r.Difficulty)
	})
}

func TestParse_QuotedText(t *testing.T) {
	r := Parse(`{"title":"Grandma's \"Best\" Stew","ingredients":["6\" tortillas","'fresh' basil"],"instructions":["Serve with \"sauce\""]}`)

	assert.Equal(t, `Grandma's "Best" Stew`, r.Title)
	assert.Equal(t, []string{`6" tortillas`, "'fresh' basil"}, r.Ingredients)
	assert.Equal(t, []string{`Serve with "sauce"`}, r.Instructions)
	assert.Equal(t, r, Parse(mustJSON(t, r)))
}

func mustJSON(t *testing.T, r Recipe) string {
	t.Helper()
	b, err := json.Marshal(r)
	require.NoError(t, err)
	return string(b)
}

func TestInterpret_FieldMapping(t *testing.T) {
	t.Run("should unwrap a recipe object", func(t *testing.T) {
		r := Parse(`{"recipe":{"name":"Tacos","cookTime":"20","imageUrl":"https://example.com/t.png"}}`)

		assert.Equal(t, "Tacos", r.Title)
		assert.Equal(t, strPtr("20 mins"), r.CookTime)
		assert.Equal(t, "https://example.com/t.png", r.Image)
	})

	t.Run("should take the first recipe of a list", func(t *testing.T) {
		assert.Equal(t, "A", Parse(`[{"title":"A"},{"title":"B"}]`).Title)
		assert.Equal(t, "C", Parse(`{"recipes":[{"title":"C"}]}`).Title)
	})

	t.Run("should normalize present values and keep absent ones null", func(t *testing.T) {
		r := Parse(`{"title":"Rice","prep_time":"15","cook_time":"","servings":{"value":4},"cuisine":"Thai","difficulty":"Intermediate","tags":"quick, vegan"}`)

		assert.Equal(t, strPtr("15 mins"), r.PrepTime)
		assert.Nil(t, r.CookTime)
		assert.Equal(t, strPtr("4"), r.Servings)
		assert.Equal(t, strPtr("Thai"), r.Cuisine)
		assert.Equal(t, strPtr(DifficultyMedium), r.Difficulty)
		assert.Equal(t, []string{"quick", "vegan"}, r.Tags)
	})

	t.Run("should leave difficulty unset when missing", func(t *testing.T) {
		assert.Nil(t, Parse(`{"title":"Rice"}`).Difficulty)
	})

	t.Run("should classify difficulty from prose", func(t *testing.T) {
		r := Parse("Stew\nDifficulty: quite advanced\nPrep time: 20\nIngredients\n1 kg beef\nInstructions\nSimmer.")

		assert.Equal(t, strPtr(DifficultyHard), r.Difficulty)
		assert.Equal(t, strPtr("20 mins"), r.PrepTime)
	})

	t.Run("should use the default title when the title is blank", func(t *testing.T) {
		assert.Equal(t, DefaultTitle, Parse(`{"title":"  ","ingredients":["egg"]}`).Title)
	})

	t.Run("should keep integers out of float notation", func(t *testing.T) {
		r := Parse(`{"title":"Big","servings":1000000}`)
		require.NotNil(t, r.Servings)
		assert.Equal(t, "1000000", *r.Servings)
	})
}

func TestParse_Totality(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"\x00\xff\xfe",
		"{{{{",
		"}{",
		strings.Repeat("[", 10000),
		strings.Repeat("[", 500) + strings.Repeat("]", 500),
		`{"title": {"title": {"title": "x"}}}`,
		`{"title": null, "ingredients": null, "instructions": 5}`,
		"```json\n{broken\n```",
		"Ingredients:\nInstructions:",
		"日本語のレシピ",
	}

	for _, in := range inputs {
		var r Recipe
		require.NotPanics(t, func() { r = Parse(in) }, "input %q", in)
		assert.NotEmpty(t, r.Title)
		assert.NotNil(t, r.Ingredients)
		assert.NotNil(t, r.Instructions)
		assert.NotNil(t, r.Tags)
		for _, s := range append(append([]string{r.Title, r.Description}, r.Ingredients...), r.Instructions...) {
			assert.NotContains(t, s, "*")
			assert.NotContains(t, s, "`")
			assert.False(t, strings.HasPrefix(s, "{") || strings.HasPrefix(s, "["), "structured text leaked: %q", s)
		}
	}
}

func TestParse_JSONRoundTrip(t *testing.T) {
	inputs := []string{
		`{"title":"Pasta","ingredients":["noodles"],"instructions":["Boil"],"prep_time":15,"difficulty":"hard","tags":["quick"]}`,
		"Chicken Soup\nA warm broth.\n\nIngredients\n1 cup chicken\n\nInstructions\n1. Boil water",
		"",
	}

	for _, in := range inputs {
		r := Parse(in)

		b, err := json.Marshal(r)
		require.NoError(t, err)

		var back Recipe
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, r, back)
	}
}
