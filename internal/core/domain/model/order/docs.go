// Package order implements the Order aggregate of the dispatch core: the
// line items, the role-gated status machine, the driver-assignment rules and
// the append-only status history trail.
//
// Orders can only be created through NewOrder (fresh submissions) or
// RestoreOrder (rehydration from persistence), and are mutated exclusively
// through validated status transitions. They are never deleted; cancellation
// is a terminal status.
package order
