package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"fridgely-be/internal/entities"
	"fridgely-be/internal/errs"
)

// UserRepository defines the interface for user record database operations.
// The user record is an aggregate: every read returns the user together
// with its full item list in insertion order.
type UserRepository interface {
	FindByEmail(email string) (*entities.User, error)
	Create(name, email string, profileImg *string, items []entities.NewItem) (*entities.User, error)
	AppendItems(email string, items []entities.NewItem) (*entities.User, error)
	UpdateItem(email string, itemID int64, name string, quantity float64) error
	DeleteItem(email string, itemID int64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// FindByEmail loads a user and its items by email
func (r *userRepository) FindByEmail(email string) (*entities.User, error) {
	return loadUser(r.db, email)
}

// Create inserts a new user with its initial items in one transaction.
// A concurrent insert racing on the unique email constraint surfaces as
// ErrDuplicateEmail; the service layer re-reads on that signal.
func (r *userRepository) Create(name, email string, profileImg *string, items []entities.NewItem) (*entities.User, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, errs.NewStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRow(`
		INSERT INTO users (email, name, profile_img)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, name, profileImg).Scan(&userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, errs.NewStoreError(fmt.Errorf("failed to create user: %w", err))
	}

	if err := insertItems(tx, userID, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errs.NewStoreError(fmt.Errorf("failed to commit: %w", err))
	}

	return loadUser(r.db, email)
}

// ErrDuplicateEmail signals a unique-constraint conflict on users.email.
var ErrDuplicateEmail = fmt.Errorf("email already exists")

// AppendItems concatenates items to the end of the user's list and
// returns the full updated record. No dedup, no merge by name.
func (r *userRepository) AppendItems(email string, items []entities.NewItem) (*entities.User, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, errs.NewStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&userID)
	if err == sql.ErrNoRows {
		return nil, errs.NewNotFoundError("user")
	}
	if err != nil {
		return nil, errs.NewStoreError(fmt.Errorf("failed to find user: %w", err))
	}

	if err := insertItems(tx, userID, items); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`UPDATE users SET updated_at = now() WHERE id = $1`, userID); err != nil {
		return nil, errs.NewStoreError(fmt.Errorf("failed to touch user: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return nil, errs.NewStoreError(fmt.Errorf("failed to commit: %w", err))
	}

	return loadUser(r.db, email)
}

// UpdateItem overwrites item_name and quantity of the item matching both
// the owner's email and the item id. A single UPDATE keeps the
// find-and-update atomic; zero rows affected means user or item missing.
func (r *userRepository) UpdateItem(email string, itemID int64, name string, quantity float64) error {
	result, err := r.db.Exec(`
		UPDATE items
		SET item_name = $3, quantity = $4
		FROM users
		WHERE items.user_id = users.id
		  AND users.email = $1
		  AND items.id = $2
	`, email, itemID, name, quantity)
	if err != nil {
		return errs.NewStoreError(fmt.Errorf("failed to update item: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errs.NewStoreError(fmt.Errorf("failed to read update result: %w", err))
	}
	if rows == 0 {
		return errs.NewNotFoundError("user or item")
	}
	return nil
}

// DeleteItem removes exactly one item by id from the user's list.
// User-missing and item-missing are reported as distinct not-found errors.
func (r *userRepository) DeleteItem(email string, itemID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return errs.NewStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&userID)
	if err == sql.ErrNoRows {
		return errs.NewNotFoundError("user")
	}
	if err != nil {
		return errs.NewStoreError(fmt.Errorf("failed to find user: %w", err))
	}

	result, err := tx.Exec(`DELETE FROM items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return errs.NewStoreError(fmt.Errorf("failed to delete item: %w", err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errs.NewStoreError(fmt.Errorf("failed to read delete result: %w", err))
	}
	if rows == 0 {
		return errs.NewNotFoundError("item")
	}

	if _, err := tx.Exec(`UPDATE users SET updated_at = now() WHERE id = $1`, userID); err != nil {
		return errs.NewStoreError(fmt.Errorf("failed to touch user: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return errs.NewStoreError(fmt.Errorf("failed to commit: %w", err))
	}
	return nil
}

// insertItems appends items for a user inside an open transaction
func insertItems(tx *sql.Tx, userID int64, items []entities.NewItem) error {
	for _, item := range items {
		_, err := tx.Exec(`
			INSERT INTO items (user_id, item_name, quantity)
			VALUES ($1, $2, $3)
		`, userID, item.ItemName, item.Quantity)
		if err != nil {
			return errs.NewStoreError(fmt.Errorf("failed to insert item: %w", err))
		}
	}
	return nil
}

// loadUser reads the user row and its items in insertion order
func loadUser(q querier, email string) (*entities.User, error) {
	var user entities.User
	err := q.QueryRow(`
		SELECT id, email, name, profile_img, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.ProfileImg,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.NewNotFoundError("user")
	}
	if err != nil {
		return nil, errs.NewStoreError(fmt.Errorf("failed to find user: %w", err))
	}

	rows, err := q.Query(`
		SELECT id, item_name, quantity
		FROM items
		WHERE user_id = $1
		ORDER BY id
	`, user.ID)
	if err != nil {
		return nil, errs.NewStoreError(fmt.Errorf("failed to load items: %w", err))
	}
	defer rows.Close()

	user.Items = []entities.Item{}
	for rows.Next() {
		var item entities.Item
		if err := rows.Scan(&item.ID, &item.ItemName, &item.Quantity); err != nil {
			return nil, errs.NewStoreError(fmt.Errorf("failed to scan item: %w", err))
		}
		user.Items = append(user.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewStoreError(fmt.Errorf("failed to iterate items: %w", err))
	}

	return &user, nil
}
