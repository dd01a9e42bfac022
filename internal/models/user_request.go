package models

import "fridgely-be/internal/entities"

// EnsureUserRequest represents the request body for POST /user
type EnsureUserRequest struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	ProfileImg *string            `json:"profile_img,omitempty"`
	Items      []entities.NewItem `json:"items,omitempty"`
}

// AppendItemsRequest represents the request body for POST /updateuser
type AppendItemsRequest struct {
	Email string             `json:"email"`
	Items []entities.NewItem `json:"items"`
}

// UpdateItemRequest represents the request body for POST /updateItem
type UpdateItemRequest struct {
	Email    string  `json:"email"`
	ItemID   int64   `json:"itemID"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// DeleteItemRequest represents the request body for POST /deleteItem
type DeleteItemRequest struct {
	Email  string `json:"email"`
	ItemID int64  `json:"itemID"`
}
