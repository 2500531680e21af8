package commands

import (
	"context"
)

// ReleaseCourierCommandHandler marks a courier available for new assignments.
// Releasing is idempotent; releasing an already available courier succeeds
// without changes. Any order still referencing the courier keeps its binding
// until the clock tick or the reclaim sweep clears it.
type ReleaseCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewReleaseCourierCommandHandler creates a handler for courier release operations.
func NewReleaseCourierCommandHandler(uowFactory CourierUoWFactory) ReleaseCourierCommandHandler {
	return ReleaseCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the courier release command.
func (h ReleaseCourierCommandHandler) Handle(ctx context.Context, cmd ReleaseCourierCommand) error {
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

	courierRepo := uow.CourierRepository()

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	aggregate.Release()

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
