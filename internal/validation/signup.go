// Package validation holds the signup form rules. Everything here is pure:
// no I/O, deterministic for a given form.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Form is the transient registration input. It is never persisted as-is;
// the raw password is discarded once the account is created.
type Form struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	UserType        string `json:"userType"`

	CompanyName        string `json:"companyName"`
	RegistrationNumber string `json:"registrationNumber"`
	ContactNumber      string `json:"contactNumber"`
	CompanyAddress     string `json:"companyAddress"`
	CertificateURL     string `json:"certificateUrl"`
}

// Error codes, one per rule. Rules run in order and stop at the first failure.
const (
	CodeMissingField          = "MissingField"
	CodeInvalidEmailFormat    = "InvalidEmailFormat"
	CodeDisallowedTLD         = "DisallowedTLD"
	CodeUnrecognizedDomain    = "UnrecognizedDomain"
	CodePersonalEmailRequired = "PersonalEmailRequired"
	CodeMissingCompanyDetails = "MissingCompanyDetails"
	CodeWeakPassword          = "WeakPassword"
	CodePasswordMismatch      = "PasswordMismatch"
)

// FieldError is a single validation failure. Rules are not aggregated.
type FieldError struct {
	Code    string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	personalDomains     = []string{"gmail.com", "yahoo.com", "outlook.com"}
	knownDomainPrefixes = []string{"gmail", "yahoo", "outlook"}
	allowedTLDs         = []string{"com", "net", "org", "pk", "edu", "gov"}
)

const passwordSpecials = "@$!%*?&"

// Validate checks the form against the signup rules in order and returns the
// first failure, or nil when the form is acceptable.
func Validate(form Form) *FieldError {
	if strings.TrimSpace(form.FirstName) == "" ||
		strings.TrimSpace(form.LastName) == "" ||
		strings.TrimSpace(form.Email) == "" {
		return &FieldError{Code: CodeMissingField, Message: "All fields are required."}
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))
	if !emailPattern.MatchString(email) {
		return &FieldError{Code: CodeInvalidEmailFormat, Message: "Please enter a valid email format."}
	}

	domain := email[strings.Index(email, "@")+1:]
	domainParts := strings.Split(domain, ".")
	tld := domainParts[len(domainParts)-1]
	domainPrefix := domainParts[0]

	if !contains(allowedTLDs, tld) {
		return &FieldError{
			Code:    CodeDisallowedTLD,
			Message: fmt.Sprintf("Invalid domain extension %q. Did you mean \".com\" or \".pk\"?", "."+tld),
		}
	}

	// Reject domains whose first label is not a known free-mail provider.
	// This mirrors the original product behavior, which turns away custom
	// company domains too; kept deliberately, see DESIGN.md.
	if !contains(knownDomainPrefixes, domainPrefix) {
		return &FieldError{
			Code:    CodeUnrecognizedDomain,
			Message: fmt.Sprintf("The email domain %q is incorrect. Did you mean \"gmail.com\", \"yahoo.com\" or \"outlook.com\"?", domain),
		}
	}

	if form.UserType == "customer" && !contains(personalDomains, domain) {
		return &FieldError{
			Code:    CodePersonalEmailRequired,
			Message: "Customers must use a personal email like Gmail, Yahoo, or Outlook.",
		}
	}

	if form.UserType == "provider" {
		if strings.TrimSpace(form.CompanyName) == "" ||
			strings.TrimSpace(form.RegistrationNumber) == "" ||
			strings.TrimSpace(form.ContactNumber) == "" ||
			strings.TrimSpace(form.CompanyAddress) == "" ||
			strings.TrimSpace(form.CertificateURL) == "" {
			return &FieldError{
				Code:    CodeMissingCompanyDetails,
				Message: "All company details are required for providers.",
			}
		}
	}

	if !passwordAcceptable(form.Password) {
		return &FieldError{
			Code:    CodeWeakPassword,
			Message: "Password must be at least 8 characters with uppercase, lowercase, number, and special character.",
		}
	}

	if form.Password != form.ConfirmPassword {
		return &FieldError{Code: CodePasswordMismatch, Message: "Passwords do not match."}
	}

	return nil
}

// passwordAcceptable enforces the policy: at least 8 characters drawn from
// letters, digits and the special set, with at least one of each category.
func passwordAcceptable(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		default:
			return false
		}
	}

	return hasLower && hasUpper && hasDigit && hasSpecial
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
