package ai

import (
	"encoding/json"
	"errors"
	"strings"

	"fridgely-be/internal/entities"
)

// ErrNoRecipeData is the sentinel for model output that yielded no
// usable recipe JSON. Callers log it and degrade to an empty result.
var ErrNoRecipeData = errors.New("no recipe data in model output")

// ErrUnparsableAnalysis is the sentinel for image-analysis output that
// is not valid JSON. Unlike recipe extraction it is surfaced to the user.
var ErrUnparsableAnalysis = errors.New("analysis response is not valid JSON")

// InventoryAnalysis is the structured result of an image analysis call
type InventoryAnalysis struct {
	Items []entities.AnalyzedItem `json:"items"`
}

type recipePayload struct {
	Recipes []entities.Recipe `json:"recipes"`
}

// ExtractRecipes pulls a recipe list out of free-form model text. The
// model is asked for bare JSON but routinely wraps it in prose or code
// fences and appends trailing commas; all of that is tolerated. Decoding
// starts at the first opening brace with a real JSON decoder, so nested
// braces inside string values are handled correctly.
func ExtractRecipes(raw string) ([]entities.Recipe, error) {
	s := stripCodeFences(raw)
	s = trimTrailingCommas(s)

	idx := strings.Index(s, "{")
	if idx < 0 {
		return nil, ErrNoRecipeData
	}

	var payload recipePayload
	dec := json.NewDecoder(strings.NewReader(s[idx:]))
	if err := dec.Decode(&payload); err != nil {
		return nil, ErrNoRecipeData
	}
	if payload.Recipes == nil {
		return nil, ErrNoRecipeData
	}
	return payload.Recipes, nil
}

// ExtractInventory parses image-analysis output: strip a surrounding
// markdown code fence if present, trim whitespace, then parse the
// remainder outright. Item presence is validated by the consuming layer.
func ExtractInventory(raw string) (*InventoryAnalysis, error) {
	s := strings.TrimSpace(stripCodeFences(raw))

	var analysis InventoryAnalysis
	if err := json.Unmarshal([]byte(s), &analysis); err != nil {
		return nil, ErrUnparsableAnalysis
	}
	return &analysis, nil
}

// stripCodeFences removes a leading ``` or ```json marker and a trailing
// ``` marker. Text without fences passes through unchanged.
func stripCodeFences(s string) string {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```")
		t = strings.TrimPrefix(t, "json")
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

// trimTrailingCommas strips a trailing comma run (with interleaved
// whitespace) that the model sometimes appends after the JSON body
func trimTrailingCommas(s string) string {
	t := strings.TrimRight(s, " \t\r\n")
	for strings.HasSuffix(t, ",") {
		t = strings.TrimRight(strings.TrimSuffix(t, ","), " \t\r\n")
	}
	return t
}
