package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fridgely-be/internal/cache"
	"fridgely-be/internal/entities"
	"fridgely-be/internal/errs"
	"fridgely-be/internal/models"
	"fridgely-be/internal/repository"
)

// UserService defines the business logic for the user record and its
// embedded inventory. Validation always runs before any store access.
type UserService interface {
	EnsureUser(req *models.EnsureUserRequest) (*models.EnsureUserResult, error)
	FetchUser(email string) (*entities.User, error)
	AppendItems(email string, items []entities.NewItem) (*entities.User, error)
	UpdateItem(email string, itemID int64, name string, quantity float64) error
	DeleteItem(email string, itemID int64) error
}

type userService struct {
	repo    repository.UserRepository
	cache   cache.Cache
	logger  *slog.Logger
	userTTL time.Duration
	ctx     context.Context
}

// NewUserService creates a new user service. cacheClient may be nil
// (graceful degradation when Redis is unavailable).
func NewUserService(repo repository.UserRepository, cacheClient cache.Cache, logger *slog.Logger, userTTL time.Duration) UserService {
	return &userService{
		repo:    repo,
		cache:   cacheClient,
		logger:  logger,
		userTTL: userTTL,
		ctx:     context.Background(),
	}
}

// EnsureUser returns the existing record for the email, or creates a
// fresh one with an empty item list. Idempotent with respect to
// duplicate sign-in calls: existing data is never overwritten.
func (s *userService) EnsureUser(req *models.EnsureUserRequest) (*models.EnsureUserResult, error) {
	if req.Email == "" {
		return nil, errs.NewValidationError("Email is required")
	}

	existing, err := s.repo.FindByEmail(req.Email)
	if err == nil {
		s.cacheUser(existing)
		return &models.EnsureUserResult{User: existing, Created: false}, nil
	}
	if !errs.IsNotFound(err) {
		return nil, err
	}

	items := req.Items
	if items == nil {
		items = []entities.NewItem{}
	}

	created, err := s.repo.Create(req.Name, req.Email, req.ProfileImg, items)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost a creation race; the record now exists, return it.
		existing, err := s.repo.FindByEmail(req.Email)
		if err != nil {
			return nil, err
		}
		s.cacheUser(existing)
		return &models.EnsureUserResult{User: existing, Created: false}, nil
	}
	if err != nil {
		return nil, err
	}

	s.cacheUser(created)
	return &models.EnsureUserResult{User: created, Created: true}, nil
}

// FetchUser loads the user record, serving from cache when possible
func (s *userService) FetchUser(email string) (*entities.User, error) {
	if email == "" {
		return nil, errs.NewValidationError("Email is required")
	}

	if s.cache != nil {
		var cached entities.User
		if err := s.cache.GetJSON(s.ctx, cache.UserKey(email), &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	s.cacheUser(user)
	return user, nil
}

// AppendItems concatenates items to the user's list and returns the full
// updated record
func (s *userService) AppendItems(email string, items []entities.NewItem) (*entities.User, error) {
	if email == "" {
		return nil, errs.NewValidationError("Email is required")
	}
	if len(items) == 0 {
		return nil, errs.NewValidationError("Items must be a non-empty array")
	}

	user, err := s.repo.AppendItems(email, items)
	if err != nil {
		s.invalidateUser(email)
		return nil, err
	}
	s.cacheUser(user)
	return user, nil
}

// UpdateItem overwrites name and quantity of one item by id. A
// non-matching email or item id reports not-found, never a crash.
func (s *userService) UpdateItem(email string, itemID int64, name string, quantity float64) error {
	if email == "" || itemID == 0 || name == "" {
		return errs.NewValidationError("Invalid input.")
	}
	if quantity <= 0 {
		return errs.NewValidationError("Invalid input.")
	}

	if err := s.repo.UpdateItem(email, itemID, name, quantity); err != nil {
		return err
	}
	s.invalidateUser(email)
	return nil
}

// DeleteItem removes exactly one item by id
func (s *userService) DeleteItem(email string, itemID int64) error {
	if email == "" || itemID <= 0 {
		return errs.NewValidationError("Invalid input.")
	}

	if err := s.repo.DeleteItem(email, itemID); err != nil {
		return err
	}
	s.invalidateUser(email)
	return nil
}

// cacheUser stores the record snapshot; cache failures are logged, never
// surfaced
func (s *userService) cacheUser(user *entities.User) {
	if s.cache == nil || user == nil {
		return
	}
	if err := s.cache.SetJSON(s.ctx, cache.UserKey(user.Email), user, s.userTTL); err != nil {
		s.logger.Warn("failed to cache user record", slog.String("error", err.Error()))
	}
}

func (s *userService) invalidateUser(email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(s.ctx, cache.UserKey(email)); err != nil {
		s.logger.Warn("failed to invalidate user cache", slog.String("error", err.Error()))
	}
}
