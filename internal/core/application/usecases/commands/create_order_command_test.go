package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewCreateOrderCommand(orderID, 42.50)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.InDelta(t, 42.50, cmd.TotalPrice(), 0.001)
	})

	t.Run("should reject invalid order ID", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, 42.50)
		require.Error(t, err)
	})

	t.Run("should reject non-positive total price", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), 0)
		require.ErrorIs(t, err, commands.ErrTotalPriceIsInvalid)

		_, err = commands.NewCreateOrderCommand(kernel.NewUUID(), -1)
		require.ErrorIs(t, err, commands.ErrTotalPriceIsInvalid)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
