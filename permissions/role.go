package permissions

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleGuest           Role = "guest"
	RoleAdmin           Role = "admin"
	RoleCustomerService Role = "customer_service"
)

var (
	ErrUnknownRole     = errors.New("unknown role")
	ErrSelfDemotion    = errors.New("cannot change your own admin role")
	ErrSelfDeletion    = errors.New("cannot delete your own account")
	ErrNotBookingOwner = errors.New("not authorized to cancel this booking")
)

// Roles lists every valid role.
func Roles() []Role {
	return []Role{RoleGuest, RoleAdmin, RoleCustomerService}
}

// ParseRole normalises case, surrounding spaces and the legacy "customer service" spelling.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.Join(strings.Fields(normalized), "_")

	role := Role(normalized)
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, value)
	}

	return role, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleAdmin, RoleCustomerService:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// IsStaff reports whether the role manages bookings on behalf of others.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleCustomerService
}

// CanCancelBooking allows the booking owner and staff.
func CanCancelBooking(requesterID string, role Role, ownerID string) error {
	if role.IsStaff() || (requesterID != "" && requesterID == ownerID) {
		return nil
	}

	return ErrNotBookingOwner
}

// CanChangeRole forbids an admin from demoting their own account.
func CanChangeRole(requesterID, targetID string, newRole Role) error {
	if requesterID == targetID && newRole != RoleAdmin {
		return ErrSelfDemotion
	}

	return nil
}

// CanDeleteUser forbids deleting one's own account.
func CanDeleteUser(requesterID, targetID string) error {
	if requesterID == targetID {
		return ErrSelfDeletion
	}

	return nil
}
