package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCourierAlreadyAssigned is returned when assigning a courier to an order
	// that already has one bound.
	ErrCourierAlreadyAssigned = errors.New("order already has an assigned courier")

	// ErrNoCourierAssigned is returned when releasing a courier from an order
	// that has none bound.
	ErrNoCourierAssigned = errors.New("order has no assigned courier")
)

// Order represents a customer order tracked from creation to delivery or
// cancellation. It is the aggregate root for the fulfillment lifecycle.
//
// Invariants:
//   - identifier is a valid UUID, createdAt is set and immutable
//   - totalPrice is positive and immutable after creation
//   - status only moves forward through the pipeline, with a single permitted
//     side exit to Cancelled while still cancellable
//   - a courier may only be bound while the order awaits or undergoes delivery,
//     and assignedAt is set exactly when a courier is bound
//
// The struct uses private fields so all mutation goes through validated
// methods; persistence reconstructs it via RestoreOrder.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// createdAt is the moment the ordering subsystem persisted the order.
	// All status computation derives from it, so it never changes.
	createdAt time.Time

	// totalPrice is the order total, set by the ordering subsystem
	totalPrice float64

	// status is the current stage in the fulfillment pipeline
	status Status

	// courierID is the bound courier (nil while unassigned)
	courierID *kernel.UUID

	// assignedAt is when the courier was bound (nil while unassigned)
	assignedAt *time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status. This is the only way the
// ordering subsystem creates orders, ensuring the aggregate invariants hold
// from the start.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - totalPrice: order total (must be positive)
//   - createdAt: creation timestamp (must be non-zero)
func NewOrder(id kernel.UUID, totalPrice float64, createdAt time.Time) (*Order, error) {
	order := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setTotalPrice(totalPrice),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// including its status and courier binding. The restored order behaves
// identically to one built up through domain operations.
//
// Besides field-level validation it enforces cross-field consistency: the
// status must admit the courier binding, and courierID and assignedAt must be
// set together or not at all.
func RestoreOrder(
	id kernel.UUID,
	totalPrice float64,
	createdAt time.Time,
	status Status,
	courierID *kernel.UUID,
	assignedAt *time.Time,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setTotalPrice(totalPrice),
		order.setCreatedAt(createdAt),
		order.setStatus(status),
		order.setCourierBinding(courierID, assignedAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Call when reconstructing orders from external input.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CreatedAt returns the immutable creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// TotalPrice returns the order total.
func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the bound courier's ID, or nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// AssignedAt returns when the courier was bound, or nil while unassigned.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// IsTerminal reports whether the order reached Delivered or Cancelled.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// ElapsedSince returns the order's age at the given instant.
// The tracker uses it to evaluate the status schedule; because createdAt is
// immutable the computation is idempotent across ticks.
func (o *Order) ElapsedSince(now time.Time) time.Duration {
	return now.Sub(o.createdAt)
}

// Advance moves the order forward to the target status.
//
// Business rules are enforced by Status.Advance: only forward moves through
// the pipeline are allowed, never from a terminal status and never into
// Cancelled. A forward move may skip stages, since status is recomputed from
// elapsed time rather than stepped one stage per tick.
func (o *Order) Advance(target Status) error {
	newStatus, err := o.status.Advance(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel transitions the order to Cancelled.
//
// Only valid while the order is still Pending or Preparing; the caller is
// responsible for checking the cancellation window against elapsed time
// before invoking this.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AssignCourier binds a courier to the order at the given instant.
//
// Rules:
//   - the courier ID must be valid
//   - the order must be in the ready state (Prepared)
//   - no courier may already be bound
//
// After success, Courier() returns the bound ID and AssignedAt() the binding
// time, which the reclaim sweep later compares against its timeout.
func (o *Order) AssignCourier(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateAssign(); err != nil {
		return err
	}
	if o.courierID != nil {
		return ErrCourierAlreadyAssigned
	}

	o.courierID = &courierID
	o.assignedAt = &at
	return nil
}

// ReleaseCourier clears the courier binding without touching the status.
// Used by the reclaim sweep when an assignment went stale, and on delivery
// completion to free the courier.
func (o *Order) ReleaseCourier() error {
	if o.courierID == nil {
		return ErrNoCourierAssigned
	}

	o.courierID = nil
	o.assignedAt = nil
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setTotalPrice validates and sets the order total. Must be positive.
func (o *Order) setTotalPrice(totalPrice float64) error {
	if totalPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total price is invalid",
			fmt.Errorf("%v is not greater than 0", totalPrice),
		)
	}
	o.totalPrice = totalPrice
	return nil
}

// setCreatedAt validates and sets the creation timestamp.
func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setCourierBinding validates and sets the courier binding during restoration.
// courierID and assignedAt must be present together, and the status must admit
// a binding.
func (o *Order) setCourierBinding(courierID *kernel.UUID, assignedAt *time.Time) error {
	if (courierID == nil) != (assignedAt == nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"courier binding is invalid",
			errors.New("courierID and assignedAt must be set together"),
		)
	}
	if courierID == nil {
		return nil
	}

	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateCanHaveCourier(true); err != nil {
		return err
	}

	id := *courierID
	at := *assignedAt
	o.courierID = &id
	o.assignedAt = &at
	return nil
}
