package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so that orders only
// ever move forward through the fulfillment pipeline.
//
// State transitions:
//
//	Pending ──> Preparing ──> Prepared ──> OutForDelivery ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// The forward sequence is monotonic: a transition may skip intermediate
// statuses (the tracker recomputes status from elapsed time, so a late tick can
// jump several stages at once) but never regress. Cancelled is a side exit
// reachable only from Pending and Preparing, i.e. inside the cancellation
// window. Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status set when an order is first persisted,
	// before the tracker has observed it.
	Pending

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// Prepared indicates the order is ready for pickup. This is the "ready"
	// state at which courier assignment becomes eligible.
	Prepared

	// OutForDelivery indicates a courier is delivering the order.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the customer cancelled the order inside the
	// cancellation window. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Preparing:      "Preparing",
		Prepared:       "Prepared",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Preparing:      "Preparing",
		Prepared:       "Prepared",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanCancel reports whether a cancellation is still permitted from this status.
// Only Pending and Preparing orders are cancellable; these are the only
// statuses an order can hold inside the cancellation window.
func (s Status) CanCancel() bool {
	return s == Pending || s == Preparing
}

// ValidateAssign checks if the status allows courier assignment without
// performing the transition. Assignment is only eligible in the Prepared
// ("ready for pickup") state.
func (s Status) ValidateAssign() error {
	if s != Prepared {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign a courier", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier binding. A courier may only be bound while the order is awaiting or
// undergoing delivery; terminal orders must have their binding released.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != Prepared && s != OutForDelivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}
	return nil
}

// Advance transitions the status forward to target.
//
// Valid transitions move strictly forward through
// Pending -> Preparing -> Prepared -> OutForDelivery -> Delivered, possibly
// skipping stages. Invalid transitions:
//   - from a terminal status (Delivered, Cancelled)
//   - to Cancelled (use Cancel)
//   - backwards or to the same status
//
// Returns (target, nil) on a valid transition, (0, error) otherwise.
func (s Status) Advance(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is terminal and cannot advance", s.String()),
		)
	}
	if target == Cancelled || target <= s {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot advance from %s to %s", s.String(), target.String()),
		)
	}

	return target, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid only from Pending or Preparing; any later status means the
// cancellation window has closed.
func (s Status) Cancel() (Status, error) {
	if !s.CanCancel() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}
