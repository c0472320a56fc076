package account

import (
	"fmt"

	"deliverybroker/internal/pkg/errs"
)

// Role determines which lifecycle operations an account may perform and which
// of its two balances money operations touch.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleClient posts deliveries, cancels them, and deposits funds.
	RoleClient

	// RoleDriver accepts and completes deliveries.
	RoleDriver

	// RoleAdmin reviews pending accounts and lists all deliveries.
	RoleAdmin
)

func getValidRoleStrings() map[Role]string {
	return map[Role]string{
		RoleClient: "CLIENT",
		RoleDriver: "DRIVER",
		RoleAdmin:  "ADMIN",
	}
}

// RoleFromString parses the wire representation of a role (e.g. "CLIENT").
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks if the Role value is one of the defined roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the wire representation of the role, e.g. "CLIENT".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getValidRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}
