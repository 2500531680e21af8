package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyOrder(t *testing.T) *order.Order {
	t.Helper()

	aggregate, err := order.RestoreOrder(kernel.NewUUID(), 20, time.Now().Add(-10*time.Minute), order.Prepared, nil, nil)
	require.NoError(t, err)

	return aggregate
}

func TestCourierDispatcher_Dispatch(t *testing.T) {
	dispatcher := services.NewCourierDispatcher()

	t.Run("should pick the first free courier", func(t *testing.T) {
		aggregate := readyOrder(t)
		busy, err := courier.RestoreCourier(kernel.NewUUID(), "Busy", false)
		require.NoError(t, err)
		free, err := courier.NewCourier(kernel.NewUUID(), "Free")
		require.NoError(t, err)
		spare, err := courier.NewCourier(kernel.NewUUID(), "Spare")
		require.NoError(t, err)
		at := time.Now()

		selected, err := dispatcher.Dispatch(aggregate, []*courier.Courier{busy, free, spare}, at)

		require.NoError(t, err)
		assert.True(t, selected.IsEqual(free))
		assert.False(t, selected.IsAvailable())
		assert.True(t, spare.IsAvailable())
		require.NotNil(t, aggregate.Courier())
		assert.True(t, aggregate.Courier().IsEqual(free.ID()))
		require.NotNil(t, aggregate.AssignedAt())
		assert.Equal(t, at, *aggregate.AssignedAt())
	})

	t.Run("should return ErrCourierNotFound when nobody is free", func(t *testing.T) {
		aggregate := readyOrder(t)
		busy, err := courier.RestoreCourier(kernel.NewUUID(), "Busy", false)
		require.NoError(t, err)

		_, err = dispatcher.Dispatch(aggregate, []*courier.Courier{busy}, time.Now())

		require.ErrorIs(t, err, services.ErrCourierNotFound)
		assert.Nil(t, aggregate.Courier())
	})

	t.Run("should return ErrCourierNotFound for empty fleet", func(t *testing.T) {
		_, err := dispatcher.Dispatch(readyOrder(t), nil, time.Now())

		require.ErrorIs(t, err, services.ErrCourierNotFound)
	})

	t.Run("should reject orders that are not ready", func(t *testing.T) {
		aggregate, err := order.NewOrder(kernel.NewUUID(), 20, time.Now())
		require.NoError(t, err)
		free, err := courier.NewCourier(kernel.NewUUID(), "Free")
		require.NoError(t, err)

		_, err = dispatcher.Dispatch(aggregate, []*courier.Courier{free}, time.Now())

		require.Error(t, err)
		assert.True(t, free.IsAvailable())
	})

	t.Run("should reject invalid orders", func(t *testing.T) {
		var aggregate order.Order
		free, err := courier.NewCourier(kernel.NewUUID(), "Free")
		require.NoError(t, err)

		_, err = dispatcher.Dispatch(&aggregate, []*courier.Courier{free}, time.Now())

		require.Error(t, err)
	})
}
