package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fridgely-be/internal/errs"
	"fridgely-be/internal/service"
)

type RecipeController struct {
	recipeService service.RecipeService
}

func NewRecipeController(recipeService service.RecipeService) *RecipeController {
	return &RecipeController{
		recipeService: recipeService,
	}
}

// SuggestRecipes handles GET /api/v1/recipes/suggest?email= - AI recipe
// suggestions built from the user's current inventory. Unusable AI
// output comes back as an empty list, not an error.
func (rc *RecipeController) SuggestRecipes(c *gin.Context) {
	email := c.Query("email")

	recipes, err := rc.recipeService.SuggestRecipes(email)
	if err != nil {
		switch {
		case errs.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errs.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			respondStoreError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// SearchRecipes handles GET /api/v1/recipes/search?q= - public recipe
// database lookup. Upstream failures are retryable: the client re-issues
// the same query.
func (rc *RecipeController) SearchRecipes(c *gin.Context) {
	query := c.Query("q")

	recipes, err := rc.recipeService.SearchRecipes(c.Request.Context(), query)
	if err != nil {
		if errs.IsUpstream(err) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     "Recipe search is temporarily unavailable.",
				"retryable": true,
			})
			return
		}
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
