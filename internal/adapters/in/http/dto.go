package http

import (
	"github.com/shopspring/decimal"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateDeliveryRequest is the body for POST /api/v1/deliveries.
type CreateDeliveryRequest struct {
	ClientID        string          `json:"clientId"`
	PickupAddress   string          `json:"pickupAddress"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Description     string          `json:"description"`
	WeightKg        decimal.Decimal `json:"weightKg"`
	OfferedPrice    decimal.Decimal `json:"offeredPrice"`
}

// CreateDeliveryResponse returns the identifier of the new posting.
type CreateDeliveryResponse struct {
	ID string `json:"id"`
}

// AcceptDeliveryRequest is the body for POST /api/v1/deliveries/:id/accept.
type AcceptDeliveryRequest struct {
	DriverID string `json:"driverId"`
}

// CompleteDeliveryRequest is the body for POST /api/v1/deliveries/:id/complete.
type CompleteDeliveryRequest struct {
	DriverID string `json:"driverId"`
}

// CancelDeliveryRequest is the body for POST /api/v1/deliveries/:id/cancel.
// A blank reason defaults to "canceled by client".
type CancelDeliveryRequest struct {
	ClientID string `json:"clientId"`
	Reason   string `json:"reason"`
}

// DepositFundsRequest is the body for POST /api/v1/accounts/:id/deposit.
type DepositFundsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ReviewAccountRequest is the body for POST /api/v1/accounts/:id/review.
type ReviewAccountRequest struct {
	AdminID string `json:"adminId"`
	Approve bool   `json:"approve"`
}
