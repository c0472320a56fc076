// Package accountrepo provides data transfer objects and mapping functions
// for account persistence. This package implements the repository pattern
// for the account aggregate, handling the conversion between domain
// entities and database representations.
package accountrepo

import (
	"time"

	"deliverybroker/internal/core/domain/model/account"
	"deliverybroker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountDTO represents the database structure for persisting account
// aggregates. Role and status are stored as their wire strings. Both
// balances are persisted even though only one is live per role, so a row
// never loses ledger data if an account's role handling ever changes.
type AccountDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	Email         string `gorm:"uniqueIndex"`
	Role          string
	Status        string          `gorm:"index"`
	ClientBalance decimal.Decimal `gorm:"type:numeric"`
	DriverBalance decimal.Decimal `gorm:"type:numeric"`
	DriverScore   decimal.Decimal `gorm:"type:numeric"`
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account domain aggregate to its database
// representation.
func fromDomain(aggregate *account.Account) AccountDTO {
	return AccountDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		Email:         aggregate.Email(),
		Role:          aggregate.Role().String(),
		Status:        aggregate.Status().String(),
		ClientBalance: aggregate.ClientBalance(),
		DriverBalance: aggregate.DriverBalance(),
		DriverScore:   aggregate.DriverScore(),
		Version:       aggregate.Version(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an account domain aggregate.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	status, err := account.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(
		id,
		dto.Name,
		dto.Email,
		role,
		status,
		dto.ClientBalance,
		dto.DriverBalance,
		dto.DriverScore,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
