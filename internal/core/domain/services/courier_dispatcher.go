package services

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/order"
)

// ErrCourierNotFound is returned when no courier is free to take the order.
// This occurs when either no couriers are provided or every provided courier
// is already reserved for another delivery.
var ErrCourierNotFound = errors.New("courier not found")

// CourierDispatcher is a domain service that pairs a ready order with a
// free courier.
//
// Business rules:
//   - The order must be valid and ready for assignment
//   - The first free courier wins, there is no routing optimization
//   - Reserving the courier and binding it to the order happen together;
//     if the binding fails the reservation is not kept
type CourierDispatcher struct{}

// NewCourierDispatcher creates a new CourierDispatcher instance.
func NewCourierDispatcher() CourierDispatcher {
	return CourierDispatcher{}
}

// Dispatch selects the first free courier, reserves it and binds it to the
// order with the given assignment time.
//
// Returns ErrCourierNotFound when no courier can take the order, or a
// validation error when the order cannot accept an assignment at all.
func (d CourierDispatcher) Dispatch(aggregate *order.Order, couriers []*courier.Courier, at time.Time) (*courier.Courier, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	if err := aggregate.Status().ValidateAssign(); err != nil {
		return nil, err
	}

	selected, err := d.findFreeCourier(couriers)
	if err != nil {
		return nil, err
	}

	if err := selected.Reserve(); err != nil {
		return nil, err
	}

	if err := aggregate.AssignCourier(selected.ID(), at); err != nil {
		selected.Release()
		return nil, err
	}

	return selected, nil
}

func (d CourierDispatcher) findFreeCourier(couriers []*courier.Courier) (*courier.Courier, error) {
	for _, candidate := range couriers {
		if candidate == nil {
			continue
		}
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
		if candidate.IsAvailable() {
			return candidate, nil
		}
	}

	return nil, ErrCourierNotFound
}
