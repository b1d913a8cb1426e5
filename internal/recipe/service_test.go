package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"recipefinder/internal/platform/mealdb"
)

// mockMealClient records which upstream calls the service issues.
type mockMealClient struct {
	searchCalls     []string
	categoryCalls   []string
	areaCalls       []string
	ingredientCalls []string
	randomCalls     int
	lookupCalls     []string

	meals     []mealdb.Meal
	single    *mealdb.Meal
	returnErr error
}

func (m *mockMealClient) Search(ctx context.Context, query string) ([]mealdb.Meal, error) {
	m.searchCalls = append(m.searchCalls, query)
	return m.meals, m.returnErr
}

func (m *mockMealClient) Lookup(ctx context.Context, id string) (*mealdb.Meal, error) {
	m.lookupCalls = append(m.lookupCalls, id)
	return m.single, m.returnErr
}

func (m *mockMealClient) FilterByCategory(ctx context.Context, category string) ([]mealdb.Meal, error) {
	m.categoryCalls = append(m.categoryCalls, category)
	return m.meals, m.returnErr
}

func (m *mockMealClient) FilterByArea(ctx context.Context, area string) ([]mealdb.Meal, error) {
	m.areaCalls = append(m.areaCalls, area)
	return m.meals, m.returnErr
}

func (m *mockMealClient) FilterByIngredient(ctx context.Context, ingredient string) ([]mealdb.Meal, error) {
	m.ingredientCalls = append(m.ingredientCalls, ingredient)
	return m.meals, m.returnErr
}

func (m *mockMealClient) Random(ctx context.Context) (*mealdb.Meal, error) {
	m.randomCalls++
	return m.single, m.returnErr
}

func TestSearchCategoryWithAreaRefinesLocally(t *testing.T) {
	client := &mockMealClient{meals: []mealdb.Meal{
		{ID: "1", Name: "Spaghetti alle Vongole", Area: "Italian"},
		{ID: "2", Name: "Fish Pie", Area: "British"},
		{ID: "3", Name: "Fritto Misto", Area: "Italian"},
	}}
	svc := NewService(client)

	results, err := svc.Search(context.Background(), "", "Seafood", "Italian")

	assert.NoError(t, err)
	// Exactly one upstream call, to the category filter; area stays local.
	assert.Equal(t, []string{"Seafood"}, client.categoryCalls)
	assert.Empty(t, client.areaCalls)
	assert.Empty(t, client.searchCalls)
	assert.Len(t, results, 2)
	assert.Equal(t, "1", results[0].ID)
	assert.Equal(t, "3", results[1].ID)
}

func TestSearchCategoryWinsOverQuery(t *testing.T) {
	client := &mockMealClient{}
	svc := NewService(client)

	_, err := svc.Search(context.Background(), "pasta", "Seafood", "")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Seafood"}, client.categoryCalls)
	assert.Empty(t, client.searchCalls)
}

func TestSearchAreaOnly(t *testing.T) {
	client := &mockMealClient{meals: []mealdb.Meal{{ID: "1", Name: "Risotto"}}}
	svc := NewService(client)

	results, err := svc.Search(context.Background(), "", "", "Italian")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Italian"}, client.areaCalls)
	assert.Empty(t, client.categoryCalls)
	assert.Len(t, results, 1)
}

func TestSearchFreeTextOnly(t *testing.T) {
	client := &mockMealClient{meals: []mealdb.Meal{{ID: "1", Name: "Chicken Curry"}}}
	svc := NewService(client)

	results, err := svc.Search(context.Background(), "chicken", "", "")

	assert.NoError(t, err)
	assert.Equal(t, []string{"chicken"}, client.searchCalls)
	assert.Len(t, results, 1)
}

func TestSearchWithoutInputSkipsUpstream(t *testing.T) {
	client := &mockMealClient{}
	svc := NewService(client)

	results, err := svc.Search(context.Background(), "", "", "")

	assert.NoError(t, err)
	assert.Equal(t, []Summary{}, results)
	assert.Empty(t, client.searchCalls)
	assert.Empty(t, client.categoryCalls)
	assert.Empty(t, client.areaCalls)
}

func TestSearchPropagatesUpstreamError(t *testing.T) {
	client := &mockMealClient{returnErr: errors.New("upstream down")}
	svc := NewService(client)

	_, err := svc.Search(context.Background(), "chicken", "", "")

	assert.Error(t, err)
}

func TestSearchByIngredientsUsesFirstIngredientOnly(t *testing.T) {
	client := &mockMealClient{meals: []mealdb.Meal{
		{ID: "1", Name: "Tomato Soup"},
		{ID: "2", Name: "Garlic SHRIMP Pasta"},
		{ID: "3", Name: "Bruschetta"},
	}}
	svc := NewService(client)

	results, err := svc.SearchByIngredients(context.Background(), []string{"tomato", "onion"}, []string{"shrimp"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"tomato"}, client.ingredientCalls)
	assert.Len(t, results, 2)
	assert.Equal(t, "Tomato Soup", results[0].Title)
	assert.Equal(t, "Bruschetta", results[1].Title)
}

func TestSearchByIngredientsEmptyListSkipsUpstream(t *testing.T) {
	client := &mockMealClient{}
	svc := NewService(client)

	results, err := svc.SearchByIngredients(context.Background(), nil, []string{"shrimp"})

	assert.NoError(t, err)
	assert.Equal(t, []Summary{}, results)
	assert.Empty(t, client.ingredientCalls)
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	client := &mockMealClient{}
	svc := NewService(client)

	_, err := svc.Get(context.Background(), "99999")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReturnsFullRecipe(t *testing.T) {
	meal := &mealdb.Meal{ID: "52772", Name: "Teriyaki Chicken Casserole", Instructions: "Preheat oven. Cook chicken."}
	meal.Ingredients[0] = "soy sauce"
	meal.Measures[0] = "3/4 cup"
	client := &mockMealClient{single: meal}
	svc := NewService(client)

	r, err := svc.Get(context.Background(), "52772")

	assert.NoError(t, err)
	assert.Equal(t, []string{"52772"}, client.lookupCalls)
	assert.Equal(t, []string{"3/4 cup soy sauce"}, r.Ingredients)
	assert.Equal(t, []string{"Preheat oven", "Cook chicken."}, r.Instructions)
}

func TestRandomEmptyUpstreamIsNotFound(t *testing.T) {
	client := &mockMealClient{}
	svc := NewService(client)

	_, err := svc.Random(context.Background())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, client.randomCalls)
}
