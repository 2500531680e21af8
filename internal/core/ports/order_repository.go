package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus transitions an order from expected to next with a
	// conditional write. It reports false without error when the stored
	// status no longer matches expected, so callers can re-read and decide.
	UpdateStatus(ctx context.Context, id kernel.UUID, expected, next order.Status) (bool, error)

	// GetAllAwaitingAssignment retrieves orders that are ready for courier
	// dispatch but have no courier bound yet.
	GetAllAwaitingAssignment(ctx context.Context) ([]*order.Order, error)

	// GetAllWithStaleAssignment retrieves non-terminal orders whose courier
	// was bound at or before cutoff. Used to reclaim couriers from orders
	// that never completed their delivery leg.
	GetAllWithStaleAssignment(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
