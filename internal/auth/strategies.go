// Package auth implements the credential verification strategies: local
// (username + password) and bearer (signed token). The strategy set is built
// once at startup and injected into the server instead of living in a global
// registry.
package auth

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Strategies bundles the verification strategies the router dispatches on.
type Strategies struct {
	Local  *LocalStrategy
	Bearer *BearerStrategy
}

// NewStrategies builds the strategy set against the credential store.
func NewStrategies(admins repository.AdminRepository, tokenSecret string) *Strategies {
	return &Strategies{
		Local:  &LocalStrategy{admins: admins},
		Bearer: &BearerStrategy{admins: admins, secret: []byte(tokenSecret)},
	}
}

// LocalStrategy verifies a username/password pair against the credential store.
type LocalStrategy struct {
	admins repository.AdminRepository
}

// Authenticate returns the matching admin, or (nil, nil) when either the
// username is unknown or the password does not match. The two cases are
// deliberately indistinguishable to callers.
func (s *LocalStrategy) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, nil
	}

	// bcrypt comparison is constant-time
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, nil
	}
	return admin, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
