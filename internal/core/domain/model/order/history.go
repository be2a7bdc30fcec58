package order

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// StatusHistoryEntry is one record of the append-only status trail. Entries
// are never mutated or deleted; together they reproduce every status the
// order has held, in commit order.
type StatusHistoryEntry struct {
	OrderID   kernel.UUID
	Status    Status
	ActorID   kernel.UUID
	ActorRole ActorRole
	At        time.Time
}

// NewStatusHistoryEntry creates a history record for one transition.
func NewStatusHistoryEntry(orderID kernel.UUID, status Status, actorID kernel.UUID, role ActorRole, at time.Time) StatusHistoryEntry {
	return StatusHistoryEntry{
		OrderID:   orderID,
		Status:    status,
		ActorID:   actorID,
		ActorRole: role,
		At:        at.UTC(),
	}
}
