package delivery

import (
	"errors"
	"fmt"
	"time"

	"deliverybroker/internal/core/domain/model/kernel"
	"deliverybroker/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery. This ensures all
	// deliveries are properly validated.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")
)

// CancellationPenaltyRate is the share of the offered price charged to the
// client when canceling an in-route delivery and paid to the assigned driver.
var CancellationPenaltyRate = decimal.NewFromFloat(0.30)

// Delivery is the aggregate root for a delivery request: a client's posted
// job, the unit the lifecycle state machine operates on.
//
// Delivery maintains these invariants:
//   - Must have valid identifier and client identifier
//   - Pickup and delivery addresses and description must not be empty
//   - Weight and offered price must be positive
//   - A driver is set iff the delivery is in route or completed, or was
//     canceled after having been in route
//   - Status only moves forward along the transition graph (see Status)
//
// The version field is an optimistic concurrency counter: the persistence
// layer refuses an update when the stored version differs from the one the
// aggregate was loaded with, so two racing accepts of the same delivery
// cannot both commit.
type Delivery struct {
	id       kernel.UUID
	clientID kernel.UUID

	// driverID is the assigned driver's ID (nil until accepted)
	driverID *kernel.UUID

	pickupAddress   string
	deliveryAddress string
	description     string
	weightKg        decimal.Decimal
	offeredPrice    decimal.Decimal

	status             Status
	cancellationReason string

	// returnReason is reserved for the return-to-pool flow; no transition
	// writes it yet.
	returnReason string

	version   int64
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewDelivery creates a new delivery request in Available status with
// validation. This is the only way to create a delivery for a new posting;
// RestoreDelivery reconstructs existing ones from persistence.
func NewDelivery(
	id kernel.UUID,
	clientID kernel.UUID,
	pickupAddress string,
	deliveryAddress string,
	description string,
	weightKg decimal.Decimal,
	offeredPrice decimal.Decimal,
) (*Delivery, error) {
	now := time.Now().UTC()
	d := &Delivery{
		status:        Available,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setClientID(clientID),
		d.setPickupAddress(pickupAddress),
		d.setDeliveryAddress(deliveryAddress),
		d.setDescription(description),
		d.setWeightKg(weightKg),
		d.setOfferedPrice(offeredPrice),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a delivery aggregate from persisted state.
// It validates all fields plus the status/driver consistency invariant, so
// corrupted rows surface as errors instead of invalid aggregates.
func RestoreDelivery(
	id kernel.UUID,
	clientID kernel.UUID,
	driverID *kernel.UUID,
	pickupAddress string,
	deliveryAddress string,
	description string,
	weightKg decimal.Decimal,
	offeredPrice decimal.Decimal,
	status Status,
	cancellationReason string,
	returnReason string,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		cancellationReason: cancellationReason,
		returnReason:       returnReason,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setClientID(clientID),
		d.setPickupAddress(pickupAddress),
		d.setDeliveryAddress(deliveryAddress),
		d.setDescription(description),
		d.setWeightKg(weightKg),
		d.setOfferedPrice(offeredPrice),
		status.Validate(),
		status.ValidateCanHaveDriver(driverID != nil),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		driver := *driverID
		d.driverID = &driver
	}
	d.status = status

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// ClientID returns the posting client's identifier.
func (d *Delivery) ClientID() kernel.UUID {
	return d.clientID
}

// Driver returns the assigned driver's ID, or nil if unassigned.
func (d *Delivery) Driver() *kernel.UUID {
	return d.driverID
}

// PickupAddress returns where the package is collected.
func (d *Delivery) PickupAddress() string {
	return d.pickupAddress
}

// DeliveryAddress returns where the package is dropped off.
func (d *Delivery) DeliveryAddress() string {
	return d.deliveryAddress
}

// Description returns the package content description.
func (d *Delivery) Description() string {
	return d.description
}

// WeightKg returns the package weight in kilograms.
func (d *Delivery) WeightKg() decimal.Decimal {
	return d.weightKg
}

// OfferedPrice returns the price the client offered for the delivery.
func (d *Delivery) OfferedPrice() decimal.Decimal {
	return d.offeredPrice
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// CancellationReason returns the recorded cancellation reason, empty unless
// the delivery was canceled.
func (d *Delivery) CancellationReason() string {
	return d.cancellationReason
}

// ReturnReason returns the reserved return-to-pool reason. Always empty
// until a return flow exists.
func (d *Delivery) ReturnReason() string {
	return d.returnReason
}

// Version returns the optimistic concurrency counter.
func (d *Delivery) Version() int64 {
	return d.version
}

// CreatedAt returns when the delivery was posted.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns when the delivery last changed.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// IsOwnedBy reports whether the delivery was posted by the given client.
func (d *Delivery) IsOwnedBy(clientID kernel.UUID) bool {
	return d.clientID.IsEqual(clientID)
}

// PenaltyAmount returns the cancellation penalty for this delivery:
// CancellationPenaltyRate times the offered price.
func (d *Delivery) PenaltyAmount() decimal.Decimal {
	return d.offeredPrice.Mul(CancellationPenaltyRate)
}

// Assign assigns the delivery to a driver and moves it to InRoute.
//
// Business rules:
//   - The driver ID must be valid
//   - The delivery must be Available
//   - The delivery must not already have a driver
//
// On success the driver is recorded and the status becomes InRoute.
func (d *Delivery) Assign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if d.driverID != nil {
		return errs.NewBusinessRuleError("delivery is already assigned to a driver")
	}

	newStatus, err := d.status.Assign()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.driverID = &driverID
	d.touch()
	return nil
}

// Complete marks the delivery as delivered.
//
// Business rules:
//   - The delivery must be InRoute
//   - The delivery must be assigned to the given driver
//
// Completed is a final state with no further transitions.
func (d *Delivery) Complete(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if d.driverID == nil || !d.driverID.IsEqual(driverID) {
		return errs.NewBusinessRuleErrorWithCause(
			"delivery is not assigned to this driver",
			fmt.Errorf("driver is %s", driverID),
		)
	}

	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.touch()
	return nil
}

// Cancel moves the delivery to Canceled and records the reason. Allowed from
// Available and InRoute; callers settle the penalty ledger movement before
// canceling an in-route delivery.
func (d *Delivery) Cancel(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.cancellationReason = reason
	d.touch()
	return nil
}

func (d *Delivery) touch() {
	d.updatedAt = time.Now().UTC()
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	d.clientID = clientID
	return nil
}

func (d *Delivery) setPickupAddress(pickupAddress string) error {
	if pickupAddress == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}
	d.pickupAddress = pickupAddress
	return nil
}

func (d *Delivery) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	d.deliveryAddress = deliveryAddress
	return nil
}

func (d *Delivery) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	d.description = description
	return nil
}

func (d *Delivery) setWeightKg(weightKg decimal.Decimal) error {
	if !weightKg.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%s is not greater than 0", weightKg))
	}
	d.weightKg = weightKg
	return nil
}

func (d *Delivery) setOfferedPrice(offeredPrice decimal.Decimal) error {
	if !offeredPrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("offered price is invalid",
			fmt.Errorf("%s is not greater than 0", offeredPrice))
	}
	d.offeredPrice = offeredPrice
	return nil
}
