package credstore

import (
	"context"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier validates Google-issued id tokens against the configured
// OAuth client id.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*TokenClaims, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, err
	}

	email, _ := payload.Claims["email"].(string)
	firstName, _ := payload.Claims["given_name"].(string)
	lastName, _ := payload.Claims["family_name"].(string)

	return &TokenClaims{
		Subject:   payload.Subject,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}, nil
}
