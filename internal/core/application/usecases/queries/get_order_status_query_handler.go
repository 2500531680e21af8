package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads one order's stored status from the database.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for order status queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the status lookup.
// Returns an ObjectNotFoundError when no order with the given ID exists.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var status order.Status

	err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&status).Error
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	// gorm's Scan leaves the destination untouched when no row matches.
	if status == order.Unknown {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	if err := status.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	return GetOrderStatusQueryResponse{
		ID:     query.OrderID(),
		Status: status,
	}, nil
}
