package commands

import (
	"context"
	"time"
)

// SweepAssignmentsCommandHandler releases couriers from assignments that
// outlived the reclaim timeout. The order keeps its status and returns to
// the unassigned pool; the courier becomes available again. Both writes
// happen in one transaction per sweep pass.
type SweepAssignmentsCommandHandler struct {
	uowFactory UoWFactory
}

// NewSweepAssignmentsCommandHandler creates a handler for the reclaim pass.
func NewSweepAssignmentsCommandHandler(uowFactory UoWFactory) SweepAssignmentsCommandHandler {
	return SweepAssignmentsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle runs one reclaim pass and returns how many couriers were released.
func (h SweepAssignmentsCommandHandler) Handle(ctx context.Context, command SweepAssignmentsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	ordersRepo := uow.OrderRepository()

	cutoff := time.Now().UTC().Add(-command.Timeout())

	orders, err := ordersRepo.GetAllWithStaleAssignment(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, aggregate := range orders {
		courierID := aggregate.Courier()
		if courierID == nil {
			continue
		}

		courierAggregate, err := courierRepo.Get(ctx, *courierID)
		if err != nil {
			return 0, err
		}

		if err = aggregate.ReleaseCourier(); err != nil {
			return 0, err
		}

		if err = ordersRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}

		courierAggregate.Release()
		if err = courierRepo.Update(ctx, courierAggregate); err != nil {
			return 0, err
		}

		released++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return released, nil
}
