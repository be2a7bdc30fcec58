// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, then post-commit notification.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// OrderNotifier receives the id of every order whose state was just
// committed. Implementations fan the change out to subscribers. Notification
// is strictly best-effort and happens after commit; it never influences the
// outcome of the command.
type OrderNotifier interface {
	Publish(ctx context.Context, orderID kernel.UUID)
}

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler declares the narrowest combination it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CommissionRepoFactory provides access to the commission repository
	// within a transaction.
	CommissionRepoFactory interface {
		CommissionRepository() ports.CommissionRepository
	}

	// RestaurantRepoFactory provides access to the restaurant repository
	// within a transaction.
	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	// CreateOrderUoW manages the transaction for order creation, which
	// reads the restaurant and writes the order plus its first history
	// entry.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		RestaurantRepoFactory
	}

	// CreateOrderUoWFactory creates CreateOrderUoW instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// TransitionUoW manages the transaction for a status transition. The
	// delivered transition additionally reads the restaurant and the
	// active commission rule and writes the settlement, all inside the
	// same transaction as the status write.
	TransitionUoW interface {
		TxManager
		OrderRepoFactory
		CommissionRepoFactory
		RestaurantRepoFactory
	}

	// TransitionUoWFactory creates TransitionUoW instances.
	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	// CommissionUoW manages transactions for commission-rule mutations.
	CommissionUoW interface {
		TxManager
		CommissionRepoFactory
	}

	// CommissionUoWFactory creates CommissionUoW instances.
	CommissionUoWFactory interface {
		Create() CommissionUoW
	}
)
