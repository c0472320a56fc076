package delivery

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the read projection of a delivery: the shape stored in the
// in-route cache, pushed through realtime notifications, and returned by the
// read APIs. It is a plain serializable copy; mutating a Snapshot never
// affects the aggregate.
type Snapshot struct {
	ID                 string          `json:"id"`
	ClientID           string          `json:"clientId"`
	DriverID           *string         `json:"driverId,omitempty"`
	PickupAddress      string          `json:"pickupAddress"`
	DeliveryAddress    string          `json:"deliveryAddress"`
	Description        string          `json:"description"`
	WeightKg           decimal.Decimal `json:"weightKg"`
	OfferedPrice       decimal.Decimal `json:"offeredPrice"`
	Status             string          `json:"status"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	ReturnReason       string          `json:"returnReason,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Snapshot returns the read projection of the delivery's current state.
func (d *Delivery) Snapshot() Snapshot {
	var driverID *string
	if d.driverID != nil {
		s := d.driverID.String()
		driverID = &s
	}

	return Snapshot{
		ID:                 d.id.String(),
		ClientID:           d.clientID.String(),
		DriverID:           driverID,
		PickupAddress:      d.pickupAddress,
		DeliveryAddress:    d.deliveryAddress,
		Description:        d.description,
		WeightKg:           d.weightKg,
		OfferedPrice:       d.offeredPrice,
		Status:             d.status.String(),
		CancellationReason: d.cancellationReason,
		ReturnReason:       d.returnReason,
		CreatedAt:          d.createdAt,
		UpdatedAt:          d.updatedAt,
	}
}
