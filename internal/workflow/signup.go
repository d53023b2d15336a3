// Package workflow orchestrates the signup and signin flows over the
// credential and profile stores. Each call is a single request-response
// cycle; the only cross-call state lives in the external stores.
package workflow

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"solarmarket/internal/credstore"
	"solarmarket/internal/models"
	"solarmarket/internal/profilestore"
	"solarmarket/internal/routing"
	"solarmarket/internal/validation"
)

// SignupResult is the success payload of a completed signup.
type SignupResult struct {
	Message     string `json:"message"`
	RedirectURL string `json:"redirectUrl"`
}

const (
	providerSignupMessage = "Your account has been created. Please verify your email and wait for admin approval."
	customerSignupMessage = "Account created successfully! Please check your email for verification."
)

// Signup creates the account/profile pair. The pair is logically atomic:
// if the profile write fails after the account exists, the account is
// deleted again (best effort).
type Signup struct {
	accounts credstore.Store
	profiles profilestore.Store
}

func NewSignup(accounts credstore.Store, profiles profilestore.Store) *Signup {
	return &Signup{accounts: accounts, profiles: profiles}
}

func (w *Signup) Run(ctx context.Context, form validation.Form) (*SignupResult, *Error) {
	if fieldErr := validation.Validate(form); fieldErr != nil {
		return nil, validationError(fieldErr.Message)
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))

	accountID, err := w.accounts.CreateAccount(ctx, email, form.Password)
	if err != nil {
		if errors.Is(err, credstore.ErrEmailTaken) {
			return nil, validationError("Email is already registered.")
		}
		log.Println("[SIGNUP] [ERROR] account creation failed:", err)
		return nil, externalServiceError("Failed to create account.")
	}

	// Fire-and-forget: a failed send is not fatal to signup, the user can
	// request a fresh link from the signin flow.
	go func(id string) {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := w.accounts.SendVerificationEmail(sendCtx, id); err != nil {
			log.Println("[SIGNUP] [ERROR] verification mail send failed:", err)
		}
	}(accountID)

	role := models.RoleCustomer
	status := models.StatusApproved
	if form.UserType == "provider" {
		role = models.RoleProvider
		status = models.StatusPending
	}

	// Second, redundant hash stored on the profile. The credential store
	// already holds its own; this copy survives for legacy audit reads.
	profileHash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[SIGNUP] [ERROR] profile password hash failed:", err)
		w.compensateAccount(accountID)
		return nil, externalServiceError("Failed to create account.")
	}

	profile := models.Profile{
		FirstName: strings.TrimSpace(form.FirstName),
		LastName:  strings.TrimSpace(form.LastName),
		Email:     email,
		Password:  string(profileHash),
		Role:      role,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if role == models.RoleProvider {
		profile.CompanyName = strings.TrimSpace(form.CompanyName)
		profile.RegistrationNumber = strings.TrimSpace(form.RegistrationNumber)
		profile.ContactNumber = strings.TrimSpace(form.ContactNumber)
		profile.CompanyAddress = strings.TrimSpace(form.CompanyAddress)
		profile.CertificateURL = strings.TrimSpace(form.CertificateURL)
		profile.Approved = false
	}

	if err := w.profiles.Put(ctx, accountID, profile); err != nil {
		log.Println("[SIGNUP] [ERROR] profile write failed:", err)
		w.compensateAccount(accountID)
		return nil, externalServiceError("Failed to create account.")
	}

	message := customerSignupMessage
	if role == models.RoleProvider {
		message = providerSignupMessage
	}

	log.Println("[SIGNUP] [INFO] account registered:", email, "role:", role)
	return &SignupResult{
		Message:     message,
		RedirectURL: string(routing.PendingVerification),
	}, nil
}

// compensateAccount deletes the just-created account after a later signup
// step failed. A failed delete leaves an orphaned account; that is logged
// and otherwise swallowed so it cannot mask the primary error.
func (w *Signup) compensateAccount(accountID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := w.accounts.DeleteAccount(ctx, accountID); err != nil {
		log.Println("[SIGNUP] [ERROR] compensating account delete failed:", err)
	}
}
