package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shahar-caura/glutenguard/internal/provider"
)

// DefaultBaseURL is TheMealDB's free v1 endpoint.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

const maxIngredients = 20

// Client searches recipes via TheMealDB.
type Client struct {
	baseURL string
	client  *http.Client
}

// New returns a TheMealDB client.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// searchResponse has "meals": null when nothing matches.
type searchResponse struct {
	Meals []map[string]*string `json:"meals"`
}

// SearchRecipes returns meals whose name matches name.
func (c *Client) SearchRecipes(ctx context.Context, name string) ([]provider.Recipe, error) {
	u := c.baseURL + "/search.php?s=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("mealdb: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mealdb: sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mealdb: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mealdb: unexpected status %d: %s", resp.StatusCode, body)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("mealdb: parsing response: %w", err)
	}

	recipes := make([]provider.Recipe, 0, len(result.Meals))
	for _, m := range result.Meals {
		recipes = append(recipes, provider.Recipe{
			ID:              field(m, "idMeal"),
			Name:            field(m, "strMeal"),
			Source:          field(m, "strSource"),
			IngredientsText: ingredients(m),
		})
	}
	return recipes, nil
}

// ingredients joins "measure ingredient" pairs into one comma-separated line.
func ingredients(m map[string]*string) string {
	var parts []string
	for i := 1; i <= maxIngredients; i++ {
		ing := field(m, fmt.Sprintf("strIngredient%d", i))
		if ing == "" {
			continue
		}
		if measure := field(m, fmt.Sprintf("strMeasure%d", i)); measure != "" {
			ing = measure + " " + ing
		}
		parts = append(parts, ing)
	}
	return strings.Join(parts, ", ")
}

func field(m map[string]*string, key string) string {
	if v := m[key]; v != nil {
		return strings.TrimSpace(*v)
	}
	return ""
}
