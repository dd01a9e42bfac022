package entities

// Recipe represents a recipe, either AI-generated from the user's
// inventory or mapped from the public recipe database.
type Recipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Category     string   `json:"category"`
	Instructions string   `json:"instructions"`
	Thumbnail    string   `json:"thumbnail,omitempty"`  // Only set for recipe database results
	SourceURL    string   `json:"source_url,omitempty"` // Only set for recipe database results
}

// AnalyzedItem is one item extracted from an image by the vision model.
// The field names match the JSON keys the model is instructed to emit.
type AnalyzedItem struct {
	ItemName string  `json:"Item_name"`
	Quantity float64 `json:"quantity"`
}
