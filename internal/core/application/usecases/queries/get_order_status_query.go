package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery retrieves the current status of a single order.
// This is the customer-facing read: it reports what is stored right now
// and never triggers a recalculation.
type GetOrderStatusQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query for one order's status.
func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	statusQuery := GetOrderStatusQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := statusQuery.setOrderID(orderID); err != nil {
		return GetOrderStatusQuery{}, err
	}

	return statusQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderStatusQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetOrderStatusQueryResponse represents one order's status in the read model.
type GetOrderStatusQueryResponse struct {
	ID     kernel.UUID
	Status order.Status
}
