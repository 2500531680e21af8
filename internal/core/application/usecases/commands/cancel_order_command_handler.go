package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

var (
	// ErrCancellationWindowClosed is returned when the order is too far
	// into preparation to be cancelled.
	ErrCancellationWindowClosed = errors.New("cancellation window closed")

	// ErrCancellationConflict is returned when concurrent writers kept
	// invalidating the conditional cancel write. Callers may retry.
	ErrCancellationConflict = errors.New("order changed concurrently, cancellation not applied")
)

// cancelRetries bounds the re-read loop when the conditional write loses a
// race. The only competing writer inside the window is the clock tick, which
// never moves an order out of a cancellable status within that window, so one
// retry normally suffices.
const cancelRetries = 3

// CancelOrderCommandHandler handles order cancellation requests.
//
// The decision is made on current state: the order must still be inside its
// cancellation window and in a status that permits cancellation. The write
// is conditional on the observed status so a concurrent clock tick can never
// be silently overwritten.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	schedule   order.Schedule
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
// The schedule supplies the cancellation window.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, schedule order.Schedule) (CancelOrderCommandHandler, error) {
	if err := schedule.Validate(); err != nil {
		return CancelOrderCommandHandler{}, err
	}

	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		schedule:   schedule,
	}, nil
}

// Handle processes the cancellation command.
//
// Returns nil when the order ends up cancelled, including the case where it
// already was. Returns ErrCancellationWindowClosed when too much time has
// passed, or a domain error when the current status forbids cancellation.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	for attempt := 0; attempt < cancelRetries; attempt++ {
		aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if aggregate.Status() == order.Cancelled {
			return uow.Commit(ctx)
		}

		if aggregate.ElapsedSince(time.Now().UTC()) >= h.schedule.CancellationWindow() {
			return ErrCancellationWindowClosed
		}

		next, err := aggregate.Status().Cancel()
		if err != nil {
			return err
		}

		updated, err := orderRepo.UpdateStatus(ctx, cmd.OrderID(), aggregate.Status(), next)
		if err != nil {
			return err
		}
		if updated {
			return uow.Commit(ctx)
		}
	}

	return ErrCancellationConflict
}
