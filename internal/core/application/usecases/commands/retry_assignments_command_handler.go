package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
)

// RetryAssignmentsCommandHandler pairs queued ready orders with whatever
// couriers have freed up since the orders became ready.
//
// Orders are processed in creation order and the pass stops as soon as the
// fleet runs out; a fully busy fleet is a normal outcome, not an error.
type RetryAssignmentsCommandHandler struct {
	uowFactory UoWFactory
}

// NewRetryAssignmentsCommandHandler creates a handler for the retry pass.
func NewRetryAssignmentsCommandHandler(uowFactory UoWFactory) RetryAssignmentsCommandHandler {
	return RetryAssignmentsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle runs one retry pass and returns how many orders got a courier.
func (h RetryAssignmentsCommandHandler) Handle(ctx context.Context, command RetryAssignmentsCommand) (int, error) {
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

	orders, err := ordersRepo.GetAllAwaitingAssignment(ctx)
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, uow.Commit(ctx)
	}

	couriers, err := courierRepo.GetAllAvailable(ctx)
	if err != nil {
		return 0, err
	}

	dispatcher := services.NewCourierDispatcher()
	now := time.Now().UTC()
	assigned := 0

	for _, aggregate := range orders {
		selected, err := dispatcher.Dispatch(aggregate, couriers, now)
		if err != nil {
			// Fleet exhausted; the remaining orders wait for the next pass.
			break
		}

		if err = ordersRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}

		if err = courierRepo.Update(ctx, selected); err != nil {
			return 0, err
		}

		assigned++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return assigned, nil
}
