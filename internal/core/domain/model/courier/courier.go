package courier

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
	// ErrCourierNotAvailable is returned when reserving a courier that is already
	// bound to an order.
	ErrCourierNotAvailable = errors.New("courier is not available")
)

// Courier represents a delivery courier in the system.
// It is an aggregate root managing courier identity and availability.
//
// Business rules:
//   - a courier must have a valid UUID and a non-empty name
//   - a courier is unavailable exactly while bound to one non-terminal order;
//     Reserve and Release are the only availability mutations
//   - a reserved courier cannot be reserved again, which backs the exclusivity
//     guarantee of the dispatcher (no courier serves two orders at once)
//
// Example usage:
//
//	courier, err := NewCourier(kernel.NewUUID(), "Alice")
//	if err != nil {
//	    // handle construction error
//	}
//	// Courier is available and ready for assignment
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// available reports whether the courier can take a new order
	available bool
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new, available Courier.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: human-readable name (must be non-empty)
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	courier := &Courier{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// preserving its availability at the time of persistence.
func RestoreCourier(id kernel.UUID, name string, available bool) (*Courier, error) {
	courier := &Courier{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed via a constructor.
// The zero value of Courier fails this validation.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// IsAvailable reports whether the courier can take a new order.
func (c *Courier) IsAvailable() bool {
	return c.available
}

// Reserve marks the courier as bound to an order.
//
// Returns ErrCourierNotAvailable if the courier is already reserved. The
// persistence layer pairs this with a conditional update on the stored
// availability so two concurrent assignments can never both win.
func (c *Courier) Reserve() error {
	if !c.available {
		return ErrCourierNotAvailable
	}

	c.available = false
	return nil
}

// Release marks the courier as available again. Idempotent: releasing an
// already available courier is a no-op, so the reclaim sweep and explicit
// administrative releases do not conflict.
func (c *Courier) Release() {
	c.available = true
}

// setID validates and sets the courier's unique identifier.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

// setName validates and sets the courier's name.
func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}
