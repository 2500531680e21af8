package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/services"
)

var (
	// ErrNoFreeCouriersFound is returned when every courier is busy.
	// The order stays unassigned and a later retry may succeed.
	ErrNoFreeCouriersFound = errors.New("no free couriers found")

	// ErrOrderNotReadyForAssignment is returned when the order status does
	// not permit taking a courier.
	ErrOrderNotReadyForAssignment = errors.New("order is not ready for assignment")
)

// AssignCourierCommandHandler orchestrates the courier assignment process
// for a single order.
//
// The candidate couriers are read with row locks inside the transaction, so
// two concurrent assignments can never reserve the same courier. Updates to
// the order and the courier commit or roll back together.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignCourierCommandHandler creates a handler for courier assignment operations.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewAssignCourierCommandHandler(uowFactory UoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the courier assignment command.
// Returns ErrOrderNotReadyForAssignment when the order cannot take a courier
// and ErrNoFreeCouriersFound when the whole fleet is busy.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
	if err := command.Validate(); err != nil {
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
	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Status().ValidateAssign(); err != nil {
		return errors.Join(ErrOrderNotReadyForAssignment, err)
	}

	couriers, err := courierRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}
	if len(couriers) == 0 {
		return ErrNoFreeCouriersFound
	}

	assignedCourier, err := services.NewCourierDispatcher().Dispatch(aggregate, couriers, time.Now().UTC())
	if errors.Is(err, services.ErrCourierNotFound) {
		return ErrNoFreeCouriersFound
	}
	if err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, assignedCourier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
