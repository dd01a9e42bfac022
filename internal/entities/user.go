package entities

import "time"

// User represents a user record with its embedded inventory
type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ProfileImg *string   `json:"profile_img"` // Pointer allows null (no profile image)
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Item represents one inventory entry owned by a user.
// IDs are assigned by the database and never reused after deletion.
type Item struct {
	ID       int64    `json:"id"`
	ItemName *string  `json:"item_name"`
	Quantity *float64 `json:"quantity"`
}

// NewItem is an item payload before it has been persisted (no ID yet)
type NewItem struct {
	ItemName *string  `json:"item_name"`
	Quantity *float64 `json:"quantity"`
}
