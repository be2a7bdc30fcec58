package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
)

// GetActiveRuleQueryHandler retrieves the active commission rule directly
// from the database.
type GetActiveRuleQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveRuleQueryHandler creates a handler for active-rule queries.
func NewGetActiveRuleQueryHandler(db *gorm.DB) GetActiveRuleQueryHandler {
	return GetActiveRuleQueryHandler{db: db}
}

// Handle returns the active rule, or nil when no rule is active. Absence is
// a normal outcome, not an error.
func (h GetActiveRuleQueryHandler) Handle(
	ctx context.Context,
	query GetActiveRuleQuery,
) (*GetActiveRuleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var row struct {
		ID        uuid.UUID
		Name      string
		Kind      string
		Value     float64
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			kind,
			value,
			created_at,
			updated_at
		FROM commission_rules
		WHERE active
		LIMIT 1
	`).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}

	return &GetActiveRuleQueryResponse{
		ID:        id,
		Name:      row.Name,
		Kind:      commission.RuleKind(row.Kind),
		Value:     row.Value,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
