package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgely-be/internal/entities"
	"fridgely-be/internal/errs"
	"fridgely-be/internal/models"
)

// fakeUserRepo is an in-memory repository.UserRepository
type fakeUserRepo struct {
	users      map[string]*entities.User
	nextUserID int64
	nextItemID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, errs.NewNotFoundError("user")
	}
	copied := *user
	copied.Items = append([]entities.Item(nil), user.Items...)
	return &copied, nil
}

func (r *fakeUserRepo) Create(name, email string, profileImg *string, items []entities.NewItem) (*entities.User, error) {
	r.nextUserID++
	user := &entities.User{
		ID:         r.nextUserID,
		Email:      email,
		Name:       name,
		ProfileImg: profileImg,
		Items:      []entities.Item{},
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	r.users[email] = user
	r.appendTo(user, items)
	return r.FindByEmail(email)
}

func (r *fakeUserRepo) AppendItems(email string, items []entities.NewItem) (*entities.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, errs.NewNotFoundError("user")
	}
	r.appendTo(user, items)
	return r.FindByEmail(email)
}

func (r *fakeUserRepo) UpdateItem(email string, itemID int64, name string, quantity float64) error {
	user, ok := r.users[email]
	if !ok {
		return errs.NewNotFoundError("user or item")
	}
	for i := range user.Items {
		if user.Items[i].ID == itemID {
			user.Items[i].ItemName = &name
			user.Items[i].Quantity = &quantity
			return nil
		}
	}
	return errs.NewNotFoundError("user or item")
}

func (r *fakeUserRepo) DeleteItem(email string, itemID int64) error {
	user, ok := r.users[email]
	if !ok {
		return errs.NewNotFoundError("user")
	}
	for i := range user.Items {
		if user.Items[i].ID == itemID {
			user.Items = append(user.Items[:i], user.Items[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFoundError("item")
}

func (r *fakeUserRepo) appendTo(user *entities.User, items []entities.NewItem) {
	for _, item := range items {
		r.nextItemID++
		user.Items = append(user.Items, entities.Item{
			ID:       r.nextItemID,
			ItemName: item.ItemName,
			Quantity: item.Quantity,
		})
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newItem(name string, quantity float64) entities.NewItem {
	return entities.NewItem{ItemName: &name, Quantity: &quantity}
}

func TestEnsureUserRequiresEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil, testLogger(), time.Minute)

	_, err := svc.EnsureUser(&models.EnsureUserRequest{Name: "Sam"})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil, testLogger(), time.Minute)

	first, err := svc.EnsureUser(&models.EnsureUserRequest{Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "sam@example.com", first.User.Email)
	assert.Empty(t, first.User.Items)
	assert.Nil(t, first.User.ProfileImg)

	// Duplicate sign-in call: same record back, nothing overwritten.
	second, err := svc.EnsureUser(&models.EnsureUserRequest{Name: "Different Name", Email: "sam@example.com"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Sam", second.User.Name)
}

func TestAppendItemsValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil, testLogger(), time.Minute)

	_, err := svc.AppendItems("", []entities.NewItem{newItem("Milk", 1)})
	assert.True(t, errs.IsValidation(err))

	_, err = svc.AppendItems("sam@example.com", nil)
	assert.True(t, errs.IsValidation(err))

	_, err = svc.AppendItems("sam@example.com", []entities.NewItem{})
	assert.True(t, errs.IsValidation(err))
}

func TestAppendItemsUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil, testLogger(), time.Minute)

	_, err := svc.AppendItems("ghost@example.com", []entities.NewItem{newItem("Milk", 1)})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestAppendItemsConcatenatesPreservingExisting(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, testLogger(), time.Minute)

	_, err := svc.EnsureUser(&models.EnsureUserRequest{
		Name:  "Sam",
		Email: "sam@example.com",
		Items: []entities.NewItem{newItem("Milk", 1)},
	})
	require.NoError(t, err)

	user, err := svc.AppendItems("sam@example.com", []entities.NewItem{
		newItem("Eggs", 12),
		newItem("Milk", 2), // duplicate names are not merged
	})
	require.NoError(t, err)

	require.Len(t, user.Items, 3)
	assert.Equal(t, "Milk", *user.Items[0].ItemName)
	assert.Equal(t, 1.0, *user.Items[0].Quantity)
	assert.Equal(t, "Eggs", *user.Items[1].ItemName)
	assert.Equal(t, "Milk", *user.Items[2].ItemName)

	// Prior item keeps its id.
	assert.Equal(t, int64(1), user.Items[0].ID)
}

func TestUpdateItemValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil, testLogger(), time.Minute)

	tests := []struct {
		name     string
		email    string
		itemID   int64
		itemName string
		quantity float64
	}{
		{"missing email", "", 1, "Milk", 1},
		{"missing item id", "sam@example.com", 0, "Milk", 1},
		{"missing name", "sam@example.com", 1, "", 1},
		{"zero quantity", "sam@example.com", 1, "Milk", 0},
		{"negative quantity", "sam@example.com", 1, "Milk", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateItem(tt.email, tt.itemID, tt.itemName, tt.quantity)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestUpdateItemNotFoundLeavesListUnchanged(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, testLogger(), time.Minute)

	_, err := svc.EnsureUser(&models.EnsureUserRequest{
		Name:  "Sam",
		Email: "sam@example.com",
		Items: []entities.NewItem{newItem("Milk", 1)},
	})
	require.NoError(t, err)

	err = svc.UpdateItem("sam@example.com", 999, "Cream", 2)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	user, err := svc.FetchUser("sam@example.com")
	require.NoError(t, err)
	require.Len(t, user.Items, 1)
	assert.Equal(t, "Milk", *user.Items[0].ItemName)
}

func TestUpdateItemOverwritesOnlyTarget(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, testLogger(), time.Minute)

	_, err := svc.EnsureUser(&models.EnsureUserRequest{
		Name:  "Sam",
		Email: "sam@example.com",
		Items: []entities.NewItem{newItem("Milk", 1), newItem("Eggs", 12)},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateItem("sam@example.com", 1, "Oat Milk", 2))

	user, err := svc.FetchUser("sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Oat Milk", *user.Items[0].ItemName)
	assert.Equal(t, 2.0, *user.Items[0].Quantity)
	assert.Equal(t, "Eggs", *user.Items[1].ItemName)
	assert.Equal(t, 12.0, *user.Items[1].Quantity)
}

func TestDeleteItemValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil, testLogger(), time.Minute)

	assert.True(t, errs.IsValidation(svc.DeleteItem("", 1)))
	assert.True(t, errs.IsValidation(svc.DeleteItem("sam@example.com", 0)))
	assert.True(t, errs.IsValidation(svc.DeleteItem("sam@example.com", -5)))
}

func TestDeleteItemRemovesExactlyOne(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, testLogger(), time.Minute)

	_, err := svc.EnsureUser(&models.EnsureUserRequest{
		Name:  "Sam",
		Email: "sam@example.com",
		Items: []entities.NewItem{newItem("Milk", 1), newItem("Eggs", 12)},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem("sam@example.com", 1))

	user, err := svc.FetchUser("sam@example.com")
	require.NoError(t, err)
	require.Len(t, user.Items, 1)
	assert.Equal(t, "Eggs", *user.Items[0].ItemName)
	assert.Equal(t, int64(2), user.Items[0].ID)
}

func TestDeleteItemAbsentIDIsNotFoundNotCrash(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, testLogger(), time.Minute)

	_, err := svc.EnsureUser(&models.EnsureUserRequest{Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)

	err = svc.DeleteItem("sam@example.com", 42)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
