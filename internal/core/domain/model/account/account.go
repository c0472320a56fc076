package account

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountIsNotConstructed is returned when an Account instance was not
	// created through NewAccount or RestoreAccount. This ensures all accounts
	// are properly validated.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount")
)

// Account is the aggregate root for a platform participant. Every account
// carries both a client balance and a driver balance; the role decides which
// one money operations touch, so a rejected debit can never bleed into the
// other wallet.
//
// Account maintains these invariants:
//   - Must have a valid identifier, name, and email
//   - Balances never go negative; a debit exceeding the balance fails with
//     an insufficient funds error and leaves the account untouched
//   - New accounts start in PendingApproval with zero balances
//
// The version field is an optimistic concurrency counter checked by the
// persistence layer on update.
type Account struct {
	id    kernel.UUID
	name  string
	email string
	role  Role

	status Status

	clientBalance decimal.Decimal
	driverBalance decimal.Decimal

	// driverScore is a running quality rating, only meaningful for drivers.
	driverScore decimal.Decimal

	version   int64
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewAccount creates a new account in PendingApproval status with zero
// balances.
func NewAccount(id kernel.UUID, name, email string, role Role) (*Account, error) {
	now := time.Now().UTC()
	a := &Account{
		status:        PendingApproval,
		clientBalance: decimal.Zero,
		driverBalance: decimal.Zero,
		driverScore:   decimal.Zero,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setEmail(email),
		a.setRole(role),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAccount reconstructs an account aggregate from persisted state.
func RestoreAccount(
	id kernel.UUID,
	name string,
	email string,
	role Role,
	status Status,
	clientBalance decimal.Decimal,
	driverBalance decimal.Decimal,
	driverScore decimal.Decimal,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Account, error) {
	a := &Account{
		clientBalance: clientBalance,
		driverBalance: driverBalance,
		driverScore:   driverScore,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setEmail(email),
		a.setRole(role),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	a.status = status

	if clientBalance.IsNegative() || driverBalance.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"balance is invalid",
			fmt.Errorf("client balance is %s, driver balance is %s", clientBalance, driverBalance),
		)
	}

	return a, nil
}

// Validate ensures the Account instance was properly constructed.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// IsEqual compares two accounts by their unique identifiers.
func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Name returns the account holder's display name.
func (a *Account) Name() string {
	return a.name
}

// Email returns the account's unique email address.
func (a *Account) Email() string {
	return a.email
}

// Role returns the account's role.
func (a *Account) Role() Role {
	return a.role
}

// Status returns the account's approval status.
func (a *Account) Status() Status {
	return a.status
}

// ClientBalance returns the balance used when acting as a client.
func (a *Account) ClientBalance() decimal.Decimal {
	return a.clientBalance
}

// DriverBalance returns the balance used when acting as a driver.
func (a *Account) DriverBalance() decimal.Decimal {
	return a.driverBalance
}

// DriverScore returns the driver quality rating.
func (a *Account) DriverScore() decimal.Decimal {
	return a.driverScore
}

// Version returns the optimistic concurrency counter.
func (a *Account) Version() int64 {
	return a.version
}

// CreatedAt returns when the account was registered.
func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns when the account last changed.
func (a *Account) UpdatedAt() time.Time {
	return a.updatedAt
}

// IsApproved reports whether an admin approved the account.
func (a *Account) IsApproved() bool {
	return a.status == Approved
}

// Balance returns the balance the account's role operates on: the client
// balance for clients, the driver balance for drivers.
func (a *Account) Balance() (decimal.Decimal, error) {
	switch a.role {
	case RoleClient:
		return a.clientBalance, nil
	case RoleDriver:
		return a.driverBalance, nil
	default:
		return decimal.Zero, errs.NewBusinessRuleErrorWithCause(
			"account role has no balance",
			fmt.Errorf("role is %s", a.role),
		)
	}
}

// CanCover reports whether the role-selected balance covers the given amount.
func (a *Account) CanCover(amount decimal.Decimal) (bool, error) {
	balance, err := a.Balance()
	if err != nil {
		return false, err
	}
	return balance.GreaterThanOrEqual(amount), nil
}

// Debit subtracts the amount from the role-selected balance.
//
// Business rules:
//   - The amount must be positive
//   - The balance must cover the amount; otherwise an insufficient funds
//     error is returned and nothing changes
func (a *Account) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%s is not greater than 0", amount))
	}

	balance, err := a.Balance()
	if err != nil {
		return err
	}

	if balance.LessThan(amount) {
		return errs.NewInsufficientFundsError(balance, amount)
	}

	a.setBalance(balance.Sub(amount))
	a.touch()
	return nil
}

// Credit adds the amount to the role-selected balance.
func (a *Account) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%s is not greater than 0", amount))
	}

	balance, err := a.Balance()
	if err != nil {
		return err
	}

	a.setBalance(balance.Add(amount))
	a.touch()
	return nil
}

// Approve marks a pending account as approved by an admin. Only pending
// accounts can be reviewed.
func (a *Account) Approve() error {
	return a.review(Approved)
}

// Reject marks a pending account as rejected by an admin. Only pending
// accounts can be reviewed.
func (a *Account) Reject() error {
	return a.review(Rejected)
}

func (a *Account) review(decision Status) error {
	if a.status != PendingApproval {
		return errs.NewBusinessRuleErrorWithCause(
			"only pending accounts can be reviewed",
			fmt.Errorf("status is %s", a.status),
		)
	}

	a.status = decision
	a.touch()
	return nil
}

func (a *Account) setBalance(balance decimal.Decimal) {
	if a.role == RoleClient {
		a.clientBalance = balance
		return
	}
	a.driverBalance = balance
}

func (a *Account) touch() {
	a.updatedAt = time.Now().UTC()
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Account) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email is invalid", err)
	}
	a.email = email
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
