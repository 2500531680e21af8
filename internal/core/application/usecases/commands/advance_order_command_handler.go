package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// AdvanceOrderResult reports the outcome of one status recalculation.
type AdvanceOrderResult struct {
	// Status is the order status after the recalculation, whether or not
	// it changed.
	Status order.Status

	// BecameReady is true when this recalculation moved the order into the
	// ready-for-assignment status. It fires at most once per order.
	BecameReady bool

	// Terminal is true when the order is in a terminal status after the
	// recalculation. Callers use it to stop polling.
	Terminal bool
}

// AdvanceOrderCommandHandler moves an order forward along its preparation
// schedule based on the time elapsed since creation.
//
// The status write is a conditional update keyed on the status the handler
// read. When a concurrent cancellation wins the race the conditional write
// changes nothing and the handler reports the cancelled state instead of
// overwriting it.
//
// When the recalculated status is terminal any courier still bound to the
// order is released in the same transaction.
type AdvanceOrderCommandHandler struct {
	uowFactory UoWFactory
	schedule   order.Schedule
}

// NewAdvanceOrderCommandHandler creates a handler for status recalculation.
// The schedule defines which status corresponds to which elapsed time.
func NewAdvanceOrderCommandHandler(uowFactory UoWFactory, schedule order.Schedule) (AdvanceOrderCommandHandler, error) {
	if err := schedule.Validate(); err != nil {
		return AdvanceOrderCommandHandler{}, err
	}

	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		schedule:   schedule,
	}, nil
}

// Handle processes one status recalculation.
// Returns the status the order holds after the call, which is also correct
// when another writer changed the order concurrently.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (AdvanceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return AdvanceOrderResult{}, err
	}

	if aggregate.IsTerminal() {
		return h.result(aggregate.Status(), false), uow.Commit(ctx)
	}

	previous := aggregate.Status()
	target := h.schedule.StatusAt(aggregate.ElapsedSince(time.Now().UTC()))
	if target <= previous {
		return h.result(previous, false), uow.Commit(ctx)
	}

	updated, err := orderRepo.UpdateStatus(ctx, cmd.OrderID(), previous, target)
	if err != nil {
		return AdvanceOrderResult{}, err
	}
	if !updated {
		// Lost the race, usually to a cancellation. Report what won.
		current, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return AdvanceOrderResult{}, err
		}
		return h.result(current.Status(), false), uow.Commit(ctx)
	}

	if err = aggregate.Advance(target); err != nil {
		return AdvanceOrderResult{}, err
	}

	if aggregate.IsTerminal() && aggregate.Courier() != nil {
		if err = h.releaseCourier(ctx, uow, aggregate); err != nil {
			return AdvanceOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AdvanceOrderResult{}, err
	}

	becameReady := target == h.schedule.ReadyStatus()
	return h.result(target, becameReady), nil
}

func (h AdvanceOrderCommandHandler) releaseCourier(ctx context.Context, uow UoW, aggregate *order.Order) error {
	courierAggregate, err := uow.CourierRepository().Get(ctx, *aggregate.Courier())
	if err != nil {
		return err
	}

	if err = aggregate.ReleaseCourier(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	courierAggregate.Release()
	return uow.CourierRepository().Update(ctx, courierAggregate)
}

func (h AdvanceOrderCommandHandler) result(status order.Status, becameReady bool) AdvanceOrderResult {
	return AdvanceOrderResult{
		Status:      status,
		BecameReady: becameReady,
		Terminal:    status.IsTerminal(),
	}
}
