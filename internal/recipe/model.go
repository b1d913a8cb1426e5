package recipe

import (
	"strings"

	"recipefinder/internal/platform/mealdb"
)

// Recipe is the application-facing shape of an upstream record. It is never
// persisted; it only exists as a projection for the duration of a request.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
	Area         string   `json:"area"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Summary is the listing shape, without ingredients or instructions.
type Summary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Area     string `json:"area"`
}

// FromMeal converts a raw upstream record into a full Recipe.
func FromMeal(m *mealdb.Meal) *Recipe {
	ingredients := []string{}
	for i := range m.Ingredients {
		ingredient := m.Ingredients[i]
		measure := m.Measures[i]
		// Keep the slot only when both halves are non-blank, measure first.
		if strings.TrimSpace(ingredient) != "" && strings.TrimSpace(measure) != "" {
			ingredients = append(ingredients, measure+" "+ingredient)
		}
	}

	return &Recipe{
		ID:           m.ID,
		Title:        m.Name,
		Image:        m.Thumb,
		Category:     m.Category,
		Area:         m.Area,
		Ingredients:  ingredients,
		Instructions: splitInstructions(m.Instructions),
	}
}

// SummaryFromMeal converts a raw upstream record into a listing Summary.
func SummaryFromMeal(m *mealdb.Meal) Summary {
	return Summary{
		ID:       m.ID,
		Title:    m.Name,
		Image:    m.Thumb,
		Category: m.Category,
		Area:     m.Area,
	}
}

// splitInstructions breaks the upstream's single instructions paragraph into
// steps on the literal ". " separator, dropping blank fragments. This is a
// heuristic splitter, not grammar-aware; downstream consumers depend on this
// exact rule.
func splitInstructions(instructions string) []string {
	steps := []string{}
	if instructions == "" {
		return steps
	}
	for _, fragment := range strings.Split(instructions, ". ") {
		if strings.TrimSpace(fragment) != "" {
			steps = append(steps, fragment)
		}
	}
	return steps
}
