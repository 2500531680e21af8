package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSweepAssignmentsCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewSweepAssignmentsCommand(20 * time.Minute)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, 20*time.Minute, cmd.Timeout())
	})

	t.Run("should reject non-positive timeout", func(t *testing.T) {
		_, err := commands.NewSweepAssignmentsCommand(0)
		require.ErrorIs(t, err, commands.ErrTimeoutIsInvalid)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.SweepAssignmentsCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrSweepAssignmentsCommandIsNotConstructed)
	})
}

func TestSweepAssignmentsCommandHandler_Handle_ReclaimsStaleCouriers(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSweepAssignmentsCommand(20 * time.Minute)
	require.NoError(t, err)

	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	assignedAt := time.Now().UTC().Add(-30 * time.Minute)
	staleOrder, err := order.RestoreOrder(
		orderID, 25, time.Now().UTC().Add(-40*time.Minute), order.OutForDelivery, &courierID, &assignedAt,
	)
	require.NoError(t, err)
	boundCourier, err := courier.RestoreCourier(courierID, "Alice", false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllWithStaleAssignment", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{staleOrder}, nil).
			Once(),
		courierRepo.On("Get", ctx, courierID).Return(boundCourier, nil).Once(),
		orderRepo.On("Update", ctx, staleOrder).Return(nil).Once(),
		courierRepo.On("Update", ctx, boundCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSweepAssignmentsCommandHandler(factory)
	released, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, released)
	assert.Nil(t, staleOrder.Courier())
	assert.True(t, boundCourier.IsAvailable())
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
}

func TestSweepAssignmentsCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSweepAssignmentsCommand(20 * time.Minute)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllWithStaleAssignment", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{}, nil).
			Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSweepAssignmentsCommandHandler(factory)
	released, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, released)
	courierRepo.AssertNotCalled(t, "Get", ctx, mock.Anything)
}

func TestSweepAssignmentsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SweepAssignmentsCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewSweepAssignmentsCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrSweepAssignmentsCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
