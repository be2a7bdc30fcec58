package ports

import (
	"context"

	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
)

// CommissionRepository defines the persistence contract for commission rules
// and settlements.
type CommissionRepository interface {
	// AddRule persists a new commission rule.
	AddRule(ctx context.Context, rule *commission.Rule) error

	// UpdateRule persists changes to an existing commission rule.
	UpdateRule(ctx context.Context, rule *commission.Rule) error

	// DeleteRule removes a commission rule by id. Returns a not-found
	// error when no such rule exists.
	DeleteRule(ctx context.Context, id kernel.UUID) error

	// GetRule retrieves a commission rule by its unique identifier.
	GetRule(ctx context.Context, id kernel.UUID) (*commission.Rule, error)

	// GetActiveRule retrieves the single currently active rule. Returns
	// (nil, nil) when no rule is active; absence is a normal outcome.
	GetActiveRule(ctx context.Context) (*commission.Rule, error)

	// DeactivateAllRules clears the active flag on every rule. Used when
	// activating a rule so that at most one stays active.
	DeactivateAllRules(ctx context.Context) error

	// AddSettlement persists a settlement. Storage enforces one settlement
	// per order; a duplicate fails with a conflict error.
	AddSettlement(ctx context.Context, settlement *commission.Settlement) error
}
