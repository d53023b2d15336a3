package workflow

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"solarmarket/internal/credstore"
	"solarmarket/internal/models"
	"solarmarket/internal/profilestore"
	"solarmarket/internal/routing"
)

// SigninResult is the non-error outcome of a signin attempt. A pending
// provider yields RequiresRedirect instead of Success: the request worked,
// the user just has to wait for approval.
type SigninResult struct {
	Success          bool   `json:"success,omitempty"`
	RequiresRedirect bool   `json:"requiresRedirect,omitempty"`
	RedirectURL      string `json:"redirectUrl"`
	Token            string `json:"token,omitempty"`
}

// Signin holds the two signin variants plus the verification check. The
// configured admin credential pair short-circuits the password variant.
type Signin struct {
	accounts      credstore.Store
	profiles      profilestore.Store
	verifier      credstore.TokenVerifier
	adminEmail    string
	adminPassword string
}

func NewSignin(accounts credstore.Store, profiles profilestore.Store, verifier credstore.TokenVerifier, adminEmail, adminPassword string) *Signin {
	return &Signin{
		accounts:      accounts,
		profiles:      profiles,
		verifier:      verifier,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// Password signs in with an email/password pair.
func (w *Signin) Password(ctx context.Context, email, password string) (*SigninResult, *Error) {
	if w.adminEmail != "" && strings.EqualFold(email, w.adminEmail) && password == w.adminPassword {
		// The admin account need not exist in the credential store; a
		// best-effort sign-in keeps the store's own session warm when it
		// does, and its failure is swallowed.
		if _, err := w.accounts.Authenticate(ctx, email, password); err != nil {
			log.Println("[SIGNIN] [INFO] admin not present in credential store")
		}
		return &SigninResult{
			Success:     true,
			RedirectURL: string(routing.AdminDashboard),
		}, nil
	}

	session, err := w.accounts.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, credstore.ErrInvalidCredentials) {
			return nil, authenticationError(err.Error())
		}
		log.Println("[SIGNIN] [ERROR] authenticate failed:", err)
		return nil, externalServiceError("Failed to sign in.")
	}

	if !session.EmailVerified {
		// Push a fresh verification mail; the caller only learns that one
		// is on the way.
		go func(id string) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := w.accounts.SendVerificationEmail(sendCtx, id); err != nil {
				log.Println("[SIGNIN] [ERROR] verification mail send failed:", err)
			}
		}(session.AccountID)

		return nil, &Error{
			Status:               http.StatusForbidden,
			Message:              "Please verify your email first. A new verification email has been sent.",
			RequiresVerification: true,
			RedirectURL:          string(routing.PendingVerification),
		}
	}

	profile, err := w.profiles.Get(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			return nil, notFoundError("User not found in database")
		}
		log.Println("[SIGNIN] [ERROR] profile lookup failed:", err)
		return nil, externalServiceError("Failed to sign in.")
	}

	if profile.Role == models.RoleProvider && profile.Status != models.StatusApproved {
		return &SigninResult{
			RequiresRedirect: true,
			RedirectURL:      string(routing.PendingApproval),
			Token:            session.Token,
		}, nil
	}

	log.Println("[SIGNIN] [INFO] signin succeeded:", session.Email, "role:", profile.Role)
	return &SigninResult{
		Success:     true,
		RedirectURL: string(routing.Route(profile.Role, profile.Status)),
		Token:       session.Token,
	}, nil
}

// Federated signs in with a verified third-party id token. It never creates
// accounts and never admits admins.
func (w *Signin) Federated(ctx context.Context, idToken string) (*SigninResult, *Error) {
	claims, err := w.verifier.Verify(ctx, idToken)
	if err != nil {
		log.Println("[SIGNIN] [ERROR] id token verification failed:", err)
		return nil, invalidTokenError("Invalid ID token")
	}

	accountID, err := w.accounts.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, credstore.ErrAccountNotFound) {
			return nil, notFoundError("Please sign up first. Google sign-in is only for existing users.")
		}
		log.Println("[SIGNIN] [ERROR] account lookup failed:", err)
		return nil, externalServiceError("Failed to sign in.")
	}

	profile, err := w.profiles.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			return nil, notFoundError("Please sign up first. Google sign-in is only for existing users.")
		}
		log.Println("[SIGNIN] [ERROR] profile lookup failed:", err)
		return nil, externalServiceError("Failed to sign in.")
	}

	if profile.Role == models.RoleAdmin {
		return nil, authorizationError("Admin must sign in with email and password")
	}

	if profile.Role == models.RoleProvider && profile.Status != models.StatusApproved {
		log.Println("[SIGNIN] [INFO] provider pending approval:", claims.Email)
		return &SigninResult{
			RequiresRedirect: true,
			RedirectURL:      string(routing.PendingApproval),
		}, nil
	}

	log.Println("[SIGNIN] [INFO] federated signin succeeded:", claims.Email, "role:", profile.Role)
	return &SigninResult{
		Success:     true,
		RedirectURL: string(routing.Route(profile.Role, profile.Status)),
	}, nil
}
