package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Topic names for the broker. Keys are the delivery or transaction ID so
// events for the same entity land on the same partition in order.
const (
	TopicDeliveryRequested    = "delivery.requested"
	TopicDeliveryCompleted    = "delivery.completed"
	TopicDeliveryCanceled     = "delivery.canceled"
	TopicFinancialTransaction = "financial.transaction"
)

// Transaction types recorded on FinancialTransaction events.
const (
	TransactionClientDeposit       = "CLIENT_DEPOSIT"
	TransactionCancellationPenalty = "CANCELLATION_PENALTY"
	TransactionDeliveryPayment     = "DELIVERY_PAYMENT"
)

// DeliveryRequested is emitted when a client posts a new delivery.
type DeliveryRequested struct {
	DeliveryID    string          `json:"deliveryId"`
	ClientID      string          `json:"clientId"`
	PickupAddress string          `json:"pickupAddress"`
	OfferedPrice  decimal.Decimal `json:"offeredPrice"`
	RequestedAt   time.Time       `json:"requestedAt"`
}

// DeliveryCompleted is emitted when a driver delivers and the payment
// settles.
type DeliveryCompleted struct {
	DeliveryID  string          `json:"deliveryId"`
	ClientID    string          `json:"clientId"`
	DriverID    string          `json:"driverId"`
	Price       decimal.Decimal `json:"price"`
	CompletedAt time.Time       `json:"completedAt"`
}

// DeliveryCanceled is emitted when a client cancels a delivery. Penalty is
// zero when the delivery was still available.
type DeliveryCanceled struct {
	DeliveryID string          `json:"deliveryId"`
	ClientID   string          `json:"clientId"`
	DriverID   *string         `json:"driverId,omitempty"`
	Reason     string          `json:"reason"`
	Penalty    decimal.Decimal `json:"penalty"`
	CanceledAt time.Time       `json:"canceledAt"`
}

// FinancialTransaction is emitted for every ledger movement: deposits,
// cancellation penalties, and delivery payments. FromUserID is nil when the
// money enters the system from outside, as with deposits.
type FinancialTransaction struct {
	TransactionID string          `json:"transactionId"`
	Type          string          `json:"type"`
	FromUserID    *string         `json:"fromUserId"`
	ToUserID      string          `json:"toUserId"`
	DeliveryID    *string         `json:"deliveryId,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	OccurredAt    time.Time       `json:"occurredAt"`
}
