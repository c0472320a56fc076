package delivery

import (
	"fmt"

	"deliverybroker/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery request.
// It implements a state machine with defined transitions:
//
//	Available ──> InRoute ──> Completed
//	    │            │
//	    └──> Canceled <──┘
//
// ReturnedToPool is reserved for a return-to-pool flow; it is part of the
// state space but no transition currently produces or consumes it.
// Completed, Canceled, and ReturnedToPool are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available is the initial status: the delivery is posted and waiting
	// for a driver to accept it.
	Available

	// InRoute indicates a driver accepted the delivery and is carrying it.
	InRoute

	// Completed indicates the delivery was delivered and settled.
	Completed

	// Canceled indicates the client canceled the delivery, either while it
	// was still available (no penalty) or while in route (30% penalty).
	Canceled

	// ReturnedToPool is reserved for deliveries handed back to the open pool.
	// No operation targets this status yet.
	ReturnedToPool
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Available:      "AVAILABLE",
		InRoute:        "IN_ROUTE",
		Completed:      "COMPLETED",
		Canceled:       "CANCELED",
		ReturnedToPool: "RETURNED_TO_POOL",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available:      "AVAILABLE",
		InRoute:        "IN_ROUTE",
		Completed:      "COMPLETED",
		Canceled:       "CANCELED",
		ReturnedToPool: "RETURNED_TO_POOL",
	}
}

// StatusFromString parses the wire representation of a status
// (e.g. "IN_ROUTE"). Used when reconstructing deliveries from persistence
// and when filtering queries by status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status, e.g. "IN_ROUTE".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled || s == ReturnedToPool
}

// Assign transitions the status to InRoute. Only Available deliveries can be
// assigned; accepting an already-assigned or finished delivery is a business
// rule violation.
func (s Status) Assign() (Status, error) {
	if s != Available {
		return 0, errs.NewBusinessRuleErrorWithCause(
			"only available deliveries can be accepted",
			fmt.Errorf("status is %s", s),
		)
	}
	return InRoute, nil
}

// Complete transitions the status to Completed. Only InRoute deliveries can
// be completed.
func (s Status) Complete() (Status, error) {
	if s != InRoute {
		return 0, errs.NewBusinessRuleErrorWithCause(
			"only in-route deliveries can be completed",
			fmt.Errorf("status is %s", s),
		)
	}
	return Completed, nil
}

// Cancel transitions the status to Canceled. Allowed from Available and
// InRoute; terminal states cannot be canceled.
func (s Status) Cancel() (Status, error) {
	if s != Available && s != InRoute {
		return 0, errs.NewBusinessRuleErrorWithCause(
			"delivery cannot be canceled in its current state",
			fmt.Errorf("status is %s", s),
		)
	}
	return Canceled, nil
}

// ValidateCanHaveDriver validates the consistency between status and driver
// assignment: a delivery has a driver iff it is in route or completed, or it
// was canceled after having been in route.
func (s Status) ValidateCanHaveDriver(driver bool) error {
	if driver && s != InRoute && s != Completed && s != Canceled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s),
		)
	}

	if !driver && (s == InRoute || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s),
		)
	}

	return nil
}
