package contracts

import (
	"errors"

	"github.com/wattwise/wattwise/pkg/models"
)

// ErrNotFound is returned by Vault lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// Vault is the narrow adapter over the data store for credential and
// second-factor fields. Queries are never retried here; failures surface
// to the caller as internal errors.
type Vault interface {
	FindByEmail(email string) (models.UserCredential, error)
	FindByID(id int64) (models.UserCredential, error)
	// UpdateTOTPSecret overwrites the stored secret. An empty secret
	// disables the second factor.
	UpdateTOTPSecret(id int64, secret string) error
	CreateUser(user models.UserCredential) error
}

// RateLimiter tracks request counts per (client, bucket) pair.
type RateLimiter interface {
	Allow(clientKey, bucket string) bool
}

// SessionStore issues and resolves opaque session tokens.
type SessionStore interface {
	Create(userID int64) (string, error)
	Resolve(token string) (int64, bool)
	Invalidate(token string)
}
