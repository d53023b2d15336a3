package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"solarmarket/internal/credstore"
	"solarmarket/internal/ratelimit"
	"solarmarket/internal/validation"
	"solarmarket/internal/workflow"
)

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type FederatedSigninRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// Signup runs the registration workflow.
func Signup(signup *workflow.Signup) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form validation.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			respondValidationError(c, err)
			return
		}

		result, werr := signup.Run(c.Request.Context(), form)
		if werr != nil {
			respondWithError(c, werr.Status, "SIGNUP", werr.Message)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// SigninPassword runs the email/password signin workflow behind the
// attempt limiter.
func SigninPassword(signin *workflow.Signin, limiter *ratelimit.SigninLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SigninRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		if err := limiter.Enforce(c.Request.Context(), email, c.ClientIP()); err != nil {
			if errors.Is(err, ratelimit.ErrRateLimited) {
				c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many sign-in attempts. Try again later."})
				return
			}
			log.Println("[SIGNIN] [ERROR] limiter failed:", err)
		}

		result, werr := signin.Password(c.Request.Context(), email, req.Password)
		if werr != nil {
			respondSigninError(c, werr)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// SigninFederated runs the id-token signin workflow.
func SigninFederated(signin *workflow.Signin) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FederatedSigninRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "idToken is required"})
			return
		}

		result, werr := signin.Federated(c.Request.Context(), req.IDToken)
		if werr != nil {
			respondSigninError(c, werr)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// VerificationCheck reports the caller's email-verification state. Requires
// a valid session token.
func VerificationCheck(signin *workflow.Signin) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetString("accountId")
		if accountID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		result, werr := signin.VerificationCheck(c.Request.Context(), accountID)
		if werr != nil {
			payload := gin.H{"error": werr.Message}
			if werr.RequiresVerification {
				payload["requiresVerification"] = true
			}
			c.JSON(werr.Status, payload)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// VerifyEmail consumes the token from a verification link.
func VerifyEmail(store *credstore.MongoStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
			return
		}

		if err := store.MarkVerified(c.Request.Context(), token); err != nil {
			if errors.Is(err, credstore.ErrTokenNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Verification link is invalid or has expired."})
				return
			}
			log.Println("[VERIFY] [ERROR] mark verified failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Email verified", "verified": true})
	}
}

// respondSigninError writes a signin workflow error. Signin endpoints use
// "message" for the body text and attach the verification hint when set.
func respondSigninError(c *gin.Context, werr *workflow.Error) {
	payload := gin.H{"message": werr.Message}
	if werr.RequiresVerification {
		payload = gin.H{
			"error":                werr.Message,
			"requiresVerification": true,
			"redirectUrl":          werr.RedirectURL,
		}
	}
	log.Printf("[SIGNIN] returning error %d: %s", werr.Status, werr.Message)
	c.JSON(werr.Status, payload)
}
