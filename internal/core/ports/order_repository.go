package ports

import (
	"context"
	"time"

	"rental/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations translate storage-level constraint violations into the
// errs taxonomy: duplicate ids and interval-exclusion hits become
// ConflictError, other constraint failures become ConstraintError.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate as a single
	// atomic statement. Returns NotFoundError if the order is absent.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its external order ID.
	// Returns NotFoundError if no such order exists.
	Get(ctx context.Context, orderID string) (*order.Order, error)

	// Delete removes the order row outright, regardless of status.
	// Returns NotFoundError if no such order exists.
	Delete(ctx context.Context, orderID string) error

	// GetAllShippedEndingBefore retrieves all shipped orders whose rental
	// period ended before the cutoff. Used by the overdue sweep.
	GetAllShippedEndingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
