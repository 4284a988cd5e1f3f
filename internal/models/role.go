package models

import "strings"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
	RoleGuest    Role = "guest"
)

// ParseRole accepts the canonical role names plus "user", which older clients
// send for customers.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "user", "attendee":
		return RoleCustomer, nil
	case "manager", "organizer":
		return RoleManager, nil
	case "admin":
		return RoleAdmin, nil
	}
	return "", &ValidationError{Field: "role", Message: "unknown role " + s}
}

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleManager || r == RoleAdmin
}

// Guest is the profile used for unauthenticated catalog browsing and checkout.
func Guest() UserProfile {
	return UserProfile{Role: RoleGuest}
}
