package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrGetActiveRuleQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetActiveRuleQueryIsNotConstructed = errors.New(
	"GetActiveRuleQuery must be created via NewGetActiveRuleQuery constructor",
)

// GetActiveRuleQuery retrieves the currently active commission rule.
// A parameterless query; at most one rule is active at any time.
type GetActiveRuleQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveRuleQuery creates a query for the active commission rule.
func NewGetActiveRuleQuery() GetActiveRuleQuery {
	return GetActiveRuleQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveRuleQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveRuleQueryIsNotConstructed)
}

// GetActiveRuleQueryResponse is the active commission rule read model.
type GetActiveRuleQueryResponse struct {
	ID        kernel.UUID         `json:"id"`
	Name      string              `json:"name"`
	Kind      commission.RuleKind `json:"kind"`
	Value     float64             `json:"value"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}
