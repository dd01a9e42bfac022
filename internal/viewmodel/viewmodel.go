// Package viewmodel holds the client-side in-memory mirror of a user's
// inventory. Mutations are never applied locally: every add, edit and
// delete goes to the API and is followed by a full refetch, trading an
// extra round trip for freedom from local/remote divergence.
package viewmodel

import (
	"sync"

	"fridgely-be/internal/entities"
)

// InventoryAPI is the slice of the backend the view-model talks to
type InventoryAPI interface {
	FetchUser(email string) (*entities.User, error)
	AppendItems(email string, items []entities.NewItem) (*entities.User, error)
	UpdateItem(email string, itemID int64, name string, quantity float64) error
	DeleteItem(email string, itemID int64) error
}

// InventoryView mirrors the most recently fetched user record.
type InventoryView struct {
	api   InventoryAPI
	email string

	mu     sync.Mutex
	user   *entities.User
	loaded bool
}

// NewInventoryView creates a view for one user's inventory
func NewInventoryView(api InventoryAPI, email string) *InventoryView {
	return &InventoryView{api: api, email: email}
}

// Load fetches the record and replaces the in-memory copy wholesale
func (v *InventoryView) Load() error {
	user, err := v.api.FetchUser(v.email)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.user = user
	v.loaded = true
	v.mu.Unlock()
	return nil
}

// Loaded reports whether a record has been fetched yet; before that the
// view renders an empty loading state.
func (v *InventoryView) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Items returns a fresh copy of the item list. Renders always see a
// snapshot; the backing slice is never mutated in place or shared. A
// missing or absent item list reads as empty, never nil-panics.
func (v *InventoryView) Items() []entities.Item {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.user == nil || v.user.Items == nil {
		return []entities.Item{}
	}
	items := make([]entities.Item, len(v.user.Items))
	copy(items, v.user.Items)
	return items
}

// AddItems appends items via the API, then refreshes
func (v *InventoryView) AddItems(items []entities.NewItem) error {
	if _, err := v.api.AppendItems(v.email, items); err != nil {
		return err
	}
	return v.Load()
}

// EditItem renames/requantifies one item via the API, then refreshes
func (v *InventoryView) EditItem(itemID int64, name string, quantity float64) error {
	if err := v.api.UpdateItem(v.email, itemID, name, quantity); err != nil {
		return err
	}
	return v.Load()
}

// RemoveItem deletes one item via the API, then refreshes
func (v *InventoryView) RemoveItem(itemID int64) error {
	if err := v.api.DeleteItem(v.email, itemID); err != nil {
		return err
	}
	return v.Load()
}
