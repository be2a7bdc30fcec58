// Package ports defines the persistence contracts between the dispatch core
// and infrastructure. These interfaces establish the dependency-inversion
// boundary: application handlers depend on them, adapters implement them.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only status-history trail.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// guarded by the aggregate's version: when another writer committed a
	// change after this aggregate was read, Update fails with a conflict
	// error and persists nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns a not-found error when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AppendHistory records one status-history entry. Entries are never
	// updated or deleted afterwards.
	AppendHistory(ctx context.Context, entry order.StatusHistoryEntry) error

	// GetHistory returns the order's full status trail ordered by time
	// ascending.
	GetHistory(ctx context.Context, orderID kernel.UUID) ([]order.StatusHistoryEntry, error)

	// GetActiveByDriver retrieves the orders assigned to a driver whose
	// status still requires the driver to act, i.e. ready_for_pickup,
	// picked_up or in_transit.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error)
}
