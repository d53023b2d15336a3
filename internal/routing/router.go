// Package routing maps an account's role and approval status onto the page
// the client should land on after sign-in.
package routing

import "solarmarket/internal/models"

// Destination is a client-side route.
type Destination string

const (
	AdminDashboard      Destination = "/admin"
	ProviderDashboard   Destination = "/provider"
	CustomerDashboard   Destination = "/customer"
	PendingApproval     Destination = "/pending-approval"
	PendingVerification Destination = "/pendingVerification"
	Unauthorized        Destination = "/unauthorized"
)

// Route applies the role/status decision table. Admins always land on the
// admin dashboard, providers wait on pending-approval until approved, and
// anything unrecognized is sent back through signin.
func Route(role models.Role, status models.Status) Destination {
	parsed, ok := models.ParseRole(string(role))
	if !ok {
		return Unauthorized
	}

	switch parsed {
	case models.RoleAdmin:
		return AdminDashboard
	case models.RoleProvider:
		if status == models.StatusApproved {
			return ProviderDashboard
		}
		return PendingApproval
	}
	return CustomerDashboard
}
