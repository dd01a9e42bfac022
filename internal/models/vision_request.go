package models

import "fridgely-be/internal/entities"

// AnalyzeImageRequest represents the request body for POST /api/v1/items/analyze.
// Exactly one of ImageBase64 or ImageURL must be set.
type AnalyzeImageRequest struct {
	Email       string `json:"email,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	MimeType    string `json:"mime_type,omitempty"` // defaults to image/jpeg
	Append      bool   `json:"append"`              // append extracted items to the user's record
}

// AnalyzeImageResult holds the extracted items and, when Append was
// requested, the refreshed user record.
type AnalyzeImageResult struct {
	Items []entities.AnalyzedItem `json:"items"`
	User  *entities.User          `json:"user,omitempty"`
}
