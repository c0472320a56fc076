package services

import (
	"fmt"

	"deliverybroker/internal/core/domain/model/account"
	"deliverybroker/internal/pkg/errs"
)

// Operation names a lifecycle action subject to access control.
type Operation string

const (
	OpCreateDelivery    Operation = "create_delivery"
	OpAcceptDelivery    Operation = "accept_delivery"
	OpCompleteDelivery  Operation = "complete_delivery"
	OpCancelDelivery    Operation = "cancel_delivery"
	OpDepositFunds      Operation = "deposit_funds"
	OpReviewAccount     Operation = "review_account"
	OpListAllDeliveries Operation = "list_all_deliveries"
)

// accessRule states who may perform an operation. RequireApproved controls
// whether the account must have passed admin review.
type accessRule struct {
	Role            account.Role
	RequireApproved bool
}

// Completing a delivery deliberately skips the approval check: the driver
// already holds an in-route delivery, and blocking settlement would strand
// the client's goods.
func getAccessRules() map[Operation]accessRule {
	return map[Operation]accessRule{
		OpCreateDelivery:    {Role: account.RoleClient, RequireApproved: true},
		OpAcceptDelivery:    {Role: account.RoleDriver, RequireApproved: true},
		OpCompleteDelivery:  {Role: account.RoleDriver, RequireApproved: false},
		OpCancelDelivery:    {Role: account.RoleClient, RequireApproved: true},
		OpDepositFunds:      {Role: account.RoleClient, RequireApproved: true},
		OpReviewAccount:     {Role: account.RoleAdmin, RequireApproved: true},
		OpListAllDeliveries: {Role: account.RoleAdmin, RequireApproved: true},
	}
}

// AuthorizeOperation checks that the acting account's role matches the
// operation's rule and, where the rule demands it, that the account is
// approved. Returns a business rule error on any mismatch.
func AuthorizeOperation(actor *account.Account, op Operation) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	rule, ok := getAccessRules()[op]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"operation is invalid",
			fmt.Errorf("%q is not a known operation", op),
		)
	}

	if actor.Role() != rule.Role {
		return errs.NewBusinessRuleErrorWithCause(
			fmt.Sprintf("only %s accounts can perform %s", rule.Role, op),
			fmt.Errorf("role is %s", actor.Role()),
		)
	}

	if rule.RequireApproved && !actor.IsApproved() {
		return errs.NewBusinessRuleErrorWithCause(
			"account is not approved",
			fmt.Errorf("status is %s", actor.Status()),
		)
	}

	return nil
}
