package models

import "fridgely-be/internal/entities"

// EnsureUserResult is the service-level outcome of EnsureUser.
// Created distinguishes a fresh record from a duplicate sign-in call.
type EnsureUserResult struct {
	User    *entities.User
	Created bool
}
