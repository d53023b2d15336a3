// Package credstore wraps account creation, password authentication and the
// email-verification flag. The rest of the application talks to it only
// through the Store interface; profile data is out of its reach.
package credstore

import (
	"context"
	"errors"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrTokenNotFound      = errors.New("verification token invalid or expired")
)

// Session is the result of a successful authentication.
type Session struct {
	AccountID     string
	Email         string
	Token         string
	EmailVerified bool
}

// Store is the credential-store contract consumed by the workflows.
type Store interface {
	// CreateAccount registers a new credential pair and returns the account id.
	CreateAccount(ctx context.Context, email, password string) (string, error)
	// Authenticate checks the credential pair and issues a session token.
	Authenticate(ctx context.Context, email, password string) (*Session, error)
	// IsVerified reloads the account's email-verification flag.
	IsVerified(ctx context.Context, accountID string) (bool, error)
	// SendVerificationEmail mails a fresh verification link to the account.
	SendVerificationEmail(ctx context.Context, accountID string) error
	// DeleteAccount removes the account. Used as the compensating action
	// when profile creation fails after the account already exists.
	DeleteAccount(ctx context.Context, accountID string) error
	// FindByEmail resolves an account id from its email address.
	FindByEmail(ctx context.Context, email string) (string, error)
}

// TokenClaims are the fields extracted from a verified federated id token.
type TokenClaims struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

// TokenVerifier validates a federated id token server-side.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*TokenClaims, error)
}
