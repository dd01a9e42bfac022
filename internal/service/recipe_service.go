package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fridgely-be/internal/ai"
	"fridgely-be/internal/cache"
	"fridgely-be/internal/entities"
)

// recipePrompt instructs the model to answer with bare recipe JSON. The
// normalizer still has to defend against prose and fences around it.
const recipePrompt = `You are an AI that generates recipes based on available ingredients. The fridge contains the following items: %s.
Please generate a valid JSON response that includes a list of recipes. Each recipe should have the following structure:
{
  "name": "Recipe Name",
  "ingredients": ["Ingredient 1", "Ingredient 2", ...],
  "category": "Recipe Category",
  "instructions": "Step-by-step in detail instructions to prepare the recipe."
}
Make sure the JSON response is valid and properly formatted. Do not include any extra characters or information outside of the JSON structure.`

// AIGenerator is the text-completion side of the AI client
type AIGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// RecipeSearcher is the public recipe database lookup
type RecipeSearcher interface {
	Search(ctx context.Context, query string) ([]entities.Recipe, error)
}

// RecipeService suggests recipes from the user's inventory and searches
// the public recipe database.
type RecipeService interface {
	SuggestRecipes(email string) ([]entities.Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]entities.Recipe, error)
}

type recipeService struct {
	users     UserService
	generator AIGenerator
	searcher  RecipeSearcher
	cache     cache.Cache
	logger    *slog.Logger
	searchTTL time.Duration
	ctx       context.Context
}

// NewRecipeService creates a new recipe service. cacheClient may be nil.
func NewRecipeService(users UserService, generator AIGenerator, searcher RecipeSearcher, cacheClient cache.Cache, logger *slog.Logger, searchTTL time.Duration) RecipeService {
	return &recipeService{
		users:     users,
		generator: generator,
		searcher:  searcher,
		cache:     cacheClient,
		logger:    logger,
		searchTTL: searchTTL,
		ctx:       context.Background(),
	}
}

// SuggestRecipes builds a prompt from the user's item names and asks the
// model for recipes. AI failures and unusable output degrade to an empty
// list (logged), never an error: the model is authoritative but noisy.
// User-side failures (missing email, unknown user) still surface.
func (s *recipeService) SuggestRecipes(email string) ([]entities.Recipe, error) {
	user, err := s.users.FetchUser(email)
	if err != nil {
		return nil, err
	}

	names := itemNames(user.Items)
	if len(names) == 0 {
		return []entities.Recipe{}, nil
	}

	prompt := fmt.Sprintf(recipePrompt, strings.Join(names, ", "))
	raw, err := s.generator.GenerateText(s.ctx, prompt)
	if err != nil {
		s.logger.Warn("recipe generation failed",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return []entities.Recipe{}, nil
	}

	recipes, err := ai.ExtractRecipes(raw)
	if err != nil {
		s.logger.Warn("recipe extraction yielded no data", slog.String("email", email))
		return []entities.Recipe{}, nil
	}
	return recipes, nil
}

// SearchRecipes queries the public recipe database, caching results per
// query. An empty or whitespace query returns an empty list without a
// lookup.
func (s *recipeService) SearchRecipes(ctx context.Context, query string) ([]entities.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entities.Recipe{}, nil
	}

	if s.cache != nil {
		var cached []entities.Recipe
		if err := s.cache.GetJSON(ctx, cache.SearchKey(query), &cached); err == nil {
			return cached, nil
		}
	}

	recipes, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err // UpstreamError, retryable by the caller
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.SearchKey(query), recipes, s.searchTTL); err != nil {
			s.logger.Warn("failed to cache search results", slog.String("error", err.Error()))
		}
	}
	return recipes, nil
}

// itemNames collects the non-empty item names from the inventory
func itemNames(items []entities.Item) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.ItemName != nil && *item.ItemName != "" {
			names = append(names, *item.ItemName)
		}
	}
	return names
}
