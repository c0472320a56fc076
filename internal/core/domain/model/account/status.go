package account

import (
	"fmt"

	"deliverybroker/internal/pkg/errs"
)

// Status represents the approval state of an account. New accounts start as
// PendingApproval and an admin moves them to Approved or Rejected.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// PendingApproval is the initial status: the account is registered and
	// waiting for an admin review.
	PendingApproval

	// Approved means an admin accepted the account.
	Approved

	// Rejected means an admin declined the account.
	Rejected
)

func getValidStatusStrings() map[Status]string {
	return map[Status]string{
		PendingApproval: "PENDING_APPROVAL",
		Approved:        "APPROVED",
		Rejected:        "REJECTED",
	}
}

// StatusFromString parses the wire representation of an account status
// (e.g. "APPROVED").
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"account status is invalid",
		fmt.Errorf("%q is not a valid account status", s),
	)
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"account status is invalid",
			fmt.Errorf("%d is not a valid account status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status, e.g. "APPROVED".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getValidStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
