package recipe

import (
	"context"
	"errors"
	"strings"

	"recipefinder/internal/platform/mealdb"
)

// ErrNotFound indicates the upstream source has no record for the request.
var ErrNotFound = errors.New("recipe not found")

// MealClient defines the upstream calls the service depends on.
type MealClient interface {
	Search(ctx context.Context, query string) ([]mealdb.Meal, error)
	Lookup(ctx context.Context, id string) (*mealdb.Meal, error)
	FilterByCategory(ctx context.Context, category string) ([]mealdb.Meal, error)
	FilterByArea(ctx context.Context, area string) ([]mealdb.Meal, error)
	FilterByIngredient(ctx context.Context, ingredient string) ([]mealdb.Meal, error)
	Random(ctx context.Context) (*mealdb.Meal, error)
}

// Service orchestrates upstream queries and local post-filtering. It holds
// no state of its own.
type Service struct {
	client MealClient
}

// NewService creates a new Service backed by the given upstream client.
func NewService(client MealClient) *Service {
	return &Service{client: client}
}

// Search resolves the caller's combination of free-text query, category and
// area into at most one upstream call:
//
//  1. category present: filter by category, then locally keep only records
//     whose area equals the requested area (the area is never sent upstream
//     in this branch).
//  2. area present without category: filter by area.
//  3. query present: free-text search.
//  4. nothing present: empty result, no upstream call.
func (s *Service) Search(ctx context.Context, query, category, area string) ([]Summary, error) {
	var meals []mealdb.Meal
	var err error

	switch {
	case category != "":
		meals, err = s.client.FilterByCategory(ctx, category)
		if err == nil && area != "" {
			filtered := meals[:0]
			for _, m := range meals {
				if m.Area == area {
					filtered = append(filtered, m)
				}
			}
			meals = filtered
		}
	case area != "":
		meals, err = s.client.FilterByArea(ctx, area)
	case query != "":
		meals, err = s.client.Search(ctx, query)
	default:
		return []Summary{}, nil
	}

	if err != nil {
		return nil, err
	}

	return summaries(meals), nil
}

// SearchByIngredients finds recipes by main ingredient. Upstream supports a
// single ingredient per call, so only the first entry is used; the rest are
// ignored by design of the upstream API. Results whose title contains any
// exclude term (case-insensitive substring) are dropped locally.
func (s *Service) SearchByIngredients(ctx context.Context, ingredients, exclude []string) ([]Summary, error) {
	if len(ingredients) == 0 {
		return []Summary{}, nil
	}

	meals, err := s.client.FilterByIngredient(ctx, ingredients[0])
	if err != nil {
		return nil, err
	}

	result := []Summary{}
	for i := range meals {
		if excluded(meals[i].Name, exclude) {
			continue
		}
		result = append(result, SummaryFromMeal(&meals[i]))
	}

	return result, nil
}

// Get retrieves one full recipe by its upstream id. Returns ErrNotFound when
// the id is unknown.
func (s *Service) Get(ctx context.Context, id string) (*Recipe, error) {
	meal, err := s.client.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, ErrNotFound
	}
	return FromMeal(meal), nil
}

// Random retrieves one random full recipe. An empty upstream answer is a
// not-found condition, not a server fault.
func (s *Service) Random(ctx context.Context) (*Recipe, error) {
	meal, err := s.client.Random(ctx)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, ErrNotFound
	}
	return FromMeal(meal), nil
}

func summaries(meals []mealdb.Meal) []Summary {
	result := make([]Summary, 0, len(meals))
	for i := range meals {
		result = append(result, SummaryFromMeal(&meals[i]))
	}
	return result
}

func excluded(title string, exclude []string) bool {
	lower := strings.ToLower(title)
	for _, term := range exclude {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
