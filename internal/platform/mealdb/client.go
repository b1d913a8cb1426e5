package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the public TheMealDB demo endpoint.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// slotCount is the number of numbered ingredient/measure columns TheMealDB
// exposes per record.
const slotCount = 20

// Meal is a raw upstream record. TheMealDB returns every column as a string
// or null; absent and blank values are treated identically.
type Meal struct {
	ID           string
	Name         string
	Thumb        string
	Category     string
	Area         string
	Instructions string
	Ingredients  [slotCount]string
	Measures     [slotCount]string
}

// UnmarshalJSON decodes the upstream's flat column format, including the
// numbered strIngredient1..20 / strMeasure1..20 slots.
func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	get := func(key string) string {
		if v, ok := raw[key]; ok && v != nil {
			return *v
		}
		return ""
	}

	m.ID = get("idMeal")
	m.Name = get("strMeal")
	m.Thumb = get("strMealThumb")
	m.Category = get("strCategory")
	m.Area = get("strArea")
	m.Instructions = get("strInstructions")

	for i := 1; i <= slotCount; i++ {
		m.Ingredients[i-1] = get(fmt.Sprintf("strIngredient%d", i))
		m.Measures[i-1] = get(fmt.Sprintf("strMeasure%d", i))
	}

	return nil
}

// envelope is the response wrapper TheMealDB uses for every endpoint. A null
// meals field means "no matches", which is not an error.
type envelope struct {
	Meals []Meal `json:"meals"`
}

// Client issues requests against TheMealDB.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new TheMealDB client. An empty baseURL selects the
// public demo endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

// get performs a single upstream call and decodes the meals envelope.
func (c *Client) get(ctx context.Context, endpoint, param, value string) ([]Meal, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if param != "" {
		u += fmt.Sprintf("?%s=%s", param, url.QueryEscape(value))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK status code: %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return env.Meals, nil
}

// first reduces an envelope to its first record, or nil when there is none.
func first(meals []Meal) *Meal {
	if len(meals) == 0 {
		return nil
	}
	return &meals[0]
}

// Search performs a free-text search by recipe name.
func (c *Client) Search(ctx context.Context, query string) ([]Meal, error) {
	return c.get(ctx, "search.php", "s", query)
}

// Lookup retrieves a single full record by id. Returns (nil, nil) when the
// id is unknown upstream.
func (c *Client) Lookup(ctx context.Context, id string) (*Meal, error) {
	meals, err := c.get(ctx, "lookup.php", "i", id)
	if err != nil {
		return nil, err
	}
	return first(meals), nil
}

// FilterByCategory lists recipes in a category. Filter results carry only
// id, name and thumbnail.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]Meal, error) {
	return c.get(ctx, "filter.php", "c", category)
}

// FilterByArea lists recipes from a cuisine area.
func (c *Client) FilterByArea(ctx context.Context, area string) ([]Meal, error) {
	return c.get(ctx, "filter.php", "a", area)
}

// FilterByIngredient lists recipes using a main ingredient.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]Meal, error) {
	return c.get(ctx, "filter.php", "i", ingredient)
}

// Random retrieves one random full record. Returns (nil, nil) when upstream
// answers with an empty envelope.
func (c *Client) Random(ctx context.Context) (*Meal, error) {
	meals, err := c.get(ctx, "random.php", "", "")
	if err != nil {
		return nil, err
	}
	return first(meals), nil
}
