package auth

import (
	"context"
	"errors"

	"spreadedge/internal/token"
	"spreadedge/internal/users"
)

// Demo account the mobile client ships with
const (
	TestUserEmail    = "test@example.com"
	TestUserPassword = "password123"
)

// EnsureUser creates the account unless the email is already taken. It
// reports whether a new user was written.
func EnsureUser(ctx context.Context, repo Repository, email, password string, role users.Role) (bool, error) {
	exists, err := repo.EmailExists(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hashed, err := token.HashPassword(password)
	if err != nil {
		return false, err
	}

	err = repo.CreateUser(ctx, &users.User{Email: email, Password: hashed, Role: role})
	if errors.Is(err, ErrUserAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
