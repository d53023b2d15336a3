package workflow

import (
	"context"
	"errors"
	"log"
	"net/http"

	"solarmarket/internal/credstore"
)

// VerificationResult is the payload of a passed verification check.
type VerificationResult struct {
	Message  string `json:"message"`
	Verified bool   `json:"verified"`
}

// VerificationCheck reloads the caller's verification flag from the
// credential store. Once the flag is true, the profile's mirror field is
// set as well; repeating the call is a no-op.
func (w *Signin) VerificationCheck(ctx context.Context, accountID string) (*VerificationResult, *Error) {
	verified, err := w.accounts.IsVerified(ctx, accountID)
	if err != nil {
		if errors.Is(err, credstore.ErrAccountNotFound) {
			return nil, invalidTokenError("User not authenticated")
		}
		log.Println("[VERIFY] [ERROR] verification lookup failed:", err)
		return nil, externalServiceError("Failed to check verification status")
	}

	if !verified {
		return nil, &Error{
			Status:               http.StatusForbidden,
			Message:              "Email not verified",
			RequiresVerification: true,
		}
	}

	if err := w.profiles.MarkEmailVerified(ctx, accountID); err != nil {
		log.Println("[VERIFY] [ERROR] profile verification mirror failed:", err)
		return nil, externalServiceError("Failed to check verification status")
	}

	return &VerificationResult{Message: "Email verified", Verified: true}, nil
}
