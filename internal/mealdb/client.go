// Package mealdb is a client for the public TheMealDB recipe API.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"fridgely-be/internal/entities"
	"fridgely-be/internal/errs"
	"fridgely-be/internal/metrics"
)

// maxIngredientSlots is the number of strIngredientN/strMeasureN column
// pairs TheMealDB exposes per meal.
const maxIngredientSlots = 20

// Client searches TheMealDB by free-text query.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string // Overridable for tests
}

// NewClient creates a TheMealDB client
func NewClient(httpClient *http.Client, logger *slog.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    baseURL,
	}
}

// Meals come back with every field as a string or null, so the whole
// record decodes into a string map and named fields are picked out.
type searchResponse struct {
	Meals []map[string]*string `json:"meals"`
}

// Search looks up meals matching the query. A query with no matches
// returns an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]entities.Recipe, error) {
	endpoint := fmt.Sprintf("%s/search.php?s=%s", c.baseURL, url.QueryEscape(query))

	var body []byte
	backoff := retry.WithMaxRetries(2, retry.NewExponential(300*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("mealdb returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("mealdb returned status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("failed to read response: %w", err))
		}
		return nil
	})
	if err != nil {
		metrics.RecordUpstream("mealdb", "error")
		c.logger.Error("mealdb search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, errs.NewUpstreamError("mealdb", err)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.RecordUpstream("mealdb", "error")
		return nil, errs.NewUpstreamError("mealdb", fmt.Errorf("failed to parse response: %w", err))
	}

	metrics.RecordUpstream("mealdb", "ok")

	recipes := make([]entities.Recipe, 0, len(result.Meals))
	for _, meal := range result.Meals {
		recipes = append(recipes, mapMeal(meal))
	}
	return recipes, nil
}

// mapMeal converts one TheMealDB record to a Recipe, folding the 20
// ingredient/measure column pairs into a single ingredient list.
func mapMeal(meal map[string]*string) entities.Recipe {
	recipe := entities.Recipe{
		Name:         field(meal, "strMeal"),
		Category:     field(meal, "strCategory"),
		Instructions: field(meal, "strInstructions"),
		Thumbnail:    field(meal, "strMealThumb"),
		SourceURL:    field(meal, "strSource"),
	}

	for i := 1; i <= maxIngredientSlots; i++ {
		ingredient := field(meal, fmt.Sprintf("strIngredient%d", i))
		if ingredient == "" {
			continue
		}
		if measure := field(meal, fmt.Sprintf("strMeasure%d", i)); measure != "" {
			ingredient = measure + " " + ingredient
		}
		recipe.Ingredients = append(recipe.Ingredients, ingredient)
	}
	return recipe
}

// field reads one meal column, treating null and blank values the same
func field(meal map[string]*string, key string) string {
	if v, ok := meal[key]; ok && v != nil {
		return strings.TrimSpace(*v)
	}
	return ""
}
