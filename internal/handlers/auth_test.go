package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"solarmarket/internal/credstore"
	"solarmarket/internal/models"
	"solarmarket/internal/profilestore"
	"solarmarket/internal/ratelimit"
	"solarmarket/internal/workflow"
)

type stubCredStore struct {
	session  *credstore.Session
	accounts map[string]string
	verified map[string]bool
}

func (s *stubCredStore) CreateAccount(ctx context.Context, email, password string) (string, error) {
	return "acct-1", nil
}

func (s *stubCredStore) Authenticate(ctx context.Context, email, password string) (*credstore.Session, error) {
	if s.session == nil {
		return nil, credstore.ErrInvalidCredentials
	}
	return s.session, nil
}

func (s *stubCredStore) IsVerified(ctx context.Context, accountID string) (bool, error) {
	if _, ok := s.accounts[accountID]; !ok {
		return false, credstore.ErrAccountNotFound
	}
	return s.verified[accountID], nil
}

func (s *stubCredStore) SendVerificationEmail(ctx context.Context, accountID string) error {
	return nil
}

func (s *stubCredStore) DeleteAccount(ctx context.Context, accountID string) error {
	return nil
}

func (s *stubCredStore) FindByEmail(ctx context.Context, email string) (string, error) {
	for id, existing := range s.accounts {
		if existing == email {
			return id, nil
		}
	}
	return "", credstore.ErrAccountNotFound
}

type stubProfileStore struct {
	profiles map[string]models.Profile
}

func (s *stubProfileStore) Get(ctx context.Context, accountID string) (*models.Profile, error) {
	profile, ok := s.profiles[accountID]
	if !ok {
		return nil, profilestore.ErrNotFound
	}
	return &profile, nil
}

func (s *stubProfileStore) Put(ctx context.Context, accountID string, profile models.Profile) error {
	if s.profiles == nil {
		s.profiles = map[string]models.Profile{}
	}
	s.profiles[accountID] = profile
	return nil
}

func (s *stubProfileStore) MarkEmailVerified(ctx context.Context, accountID string) error {
	return nil
}

type stubVerifier struct {
	claims *credstore.TokenClaims
	fail   bool
}

func (s *stubVerifier) Verify(ctx context.Context, idToken string) (*credstore.TokenClaims, error) {
	if s.fail {
		return nil, credstore.ErrTokenNotFound
	}
	return s.claims, nil
}

func signinRouter(accounts credstore.Store, profiles profilestore.Store, verifier credstore.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	signin := workflow.NewSignin(accounts, profiles, verifier, "admin@solarmarket.pk", "Admin123!@")
	limiter := ratelimit.NewSigninLimiter(nil, 10, time.Minute)

	r := gin.New()
	r.POST("/api/auth/signin/password", SigninPassword(signin, limiter))
	r.POST("/api/auth/signin/federated", SigninFederated(signin))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSigninPasswordAdminResponseShape(t *testing.T) {
	r := signinRouter(&stubCredStore{}, &stubProfileStore{}, &stubVerifier{})

	w := postJSON(t, r, "/api/auth/signin/password",
		`{"email":"admin@solarmarket.pk","password":"Admin123!@"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Success     bool   `json:"success"`
		RedirectURL string `json:"redirectUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if !body.Success || body.RedirectURL != "/admin" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestSigninPasswordUnverifiedResponseShape(t *testing.T) {
	accounts := &stubCredStore{
		session: &credstore.Session{AccountID: "acct-1", Email: "x@gmail.com", EmailVerified: false},
	}
	r := signinRouter(accounts, &stubProfileStore{}, &stubVerifier{})

	w := postJSON(t, r, "/api/auth/signin/password",
		`{"email":"x@gmail.com","password":"Abc123!@"}`)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	var body struct {
		Error                string `json:"error"`
		RequiresVerification bool   `json:"requiresVerification"`
		RedirectURL          string `json:"redirectUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if !body.RequiresVerification || body.RedirectURL != "/pendingVerification" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestSigninFederatedPendingProviderResponseShape(t *testing.T) {
	accounts := &stubCredStore{accounts: map[string]string{"acct-1": "p@gmail.com"}}
	profiles := &stubProfileStore{profiles: map[string]models.Profile{
		"acct-1": {Role: models.RoleProvider, Status: models.StatusPending},
	}}
	verifier := &stubVerifier{claims: &credstore.TokenClaims{Subject: "g-1", Email: "p@gmail.com"}}
	r := signinRouter(accounts, profiles, verifier)

	w := postJSON(t, r, "/api/auth/signin/federated", `{"idToken":"token"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("pending provider must be 200, got %d", w.Code)
	}

	var body struct {
		Success          bool   `json:"success"`
		RequiresRedirect bool   `json:"requiresRedirect"`
		RedirectURL      string `json:"redirectUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Success || !body.RequiresRedirect || body.RedirectURL != "/pending-approval" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestSigninFederatedInvalidToken(t *testing.T) {
	r := signinRouter(&stubCredStore{}, &stubProfileStore{}, &stubVerifier{fail: true})

	w := postJSON(t, r, "/api/auth/signin/federated", `{"idToken":"junk"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSigninPasswordMissingBody(t *testing.T) {
	r := signinRouter(&stubCredStore{}, &stubProfileStore{}, &stubVerifier{})

	w := postJSON(t, r, "/api/auth/signin/password", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
