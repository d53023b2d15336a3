package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the fixed account role. It is set at signup and never changes.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Status is the provider approval state. Customers and admins are always
// approved; providers start pending and are approved by an admin outside
// this service.
type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
)

// ParseRole maps a stored role string onto the closed Role set. Unknown
// values come back as ("", false) so callers route them to signin.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Profile is the business-data record keyed by Account id. Field names match
// the original document layout, including the legacy redundant password hash.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	// Password is a second bcrypt hash kept alongside the credential store's
	// own copy. The credential store stays authoritative; this field is only
	// an audit artifact carried over from the original data model.
	Password  string    `bson:"password" json:"-"`
	Role      Role      `bson:"role" json:"role"`
	Status    Status    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`

	// Provider-only fields.
	CompanyName        string `bson:"company_name,omitempty" json:"companyName,omitempty"`
	RegistrationNumber string `bson:"registration_number,omitempty" json:"registrationNumber,omitempty"`
	ContactNumber      string `bson:"contact_number,omitempty" json:"contactNumber,omitempty"`
	CompanyAddress     string `bson:"company_address,omitempty" json:"companyAddress,omitempty"`
	CertificateURL     string `bson:"certificate_url,omitempty" json:"certificateUrl,omitempty"`
	Approved           bool   `bson:"approved,omitempty" json:"approved,omitempty"`

	// Mirror of the credential store's verification flag, written by the
	// verification-check endpoint once the flag is observed true.
	EmailVerified bool `bson:"emailVerified,omitempty" json:"emailVerified,omitempty"`
}
