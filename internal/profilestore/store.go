// Package profilestore wraps reads and writes of the per-account business
// profile (role, status, company data).
package profilestore

import (
	"context"
	"errors"

	"solarmarket/internal/models"
)

var ErrNotFound = errors.New("profile not found")

// Store is the profile-store contract consumed by the workflows. Get returns
// ErrNotFound when no profile exists for the account id.
type Store interface {
	Get(ctx context.Context, accountID string) (*models.Profile, error)
	Put(ctx context.Context, accountID string, profile models.Profile) error
	// MarkEmailVerified mirrors the credential store's verification flag
	// onto the profile document. Idempotent.
	MarkEmailVerified(ctx context.Context, accountID string) error
}
