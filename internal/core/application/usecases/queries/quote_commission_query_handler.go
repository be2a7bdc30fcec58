package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// QuoteCommissionQueryHandler computes a commission quote from the
// restaurant's negotiated rate and the active rule, if any.
type QuoteCommissionQueryHandler struct {
	db         *gorm.DB
	calculator services.CommissionCalculator
}

// NewQuoteCommissionQueryHandler creates a handler for commission quotes.
func NewQuoteCommissionQueryHandler(
	db *gorm.DB, calculator services.CommissionCalculator,
) QuoteCommissionQueryHandler {
	return QuoteCommissionQueryHandler{db: db, calculator: calculator}
}

// Handle returns the quote. An unknown restaurant fails with a not-found
// error.
func (h QuoteCommissionQueryHandler) Handle(
	ctx context.Context,
	query QuoteCommissionQuery,
) (QuoteCommissionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteCommissionQueryResponse{}, err
	}

	var restaurantRow struct {
		CommissionRate float64
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT commission_rate
		FROM restaurants
		WHERE id = ?
	`, query.RestaurantID().Bytes()).Scan(&restaurantRow)
	if result.Error != nil {
		return QuoteCommissionQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return QuoteCommissionQueryResponse{}, errs.NewObjectNotFoundError("restaurant", query.RestaurantID())
	}

	activeRule, err := h.loadActiveRule(ctx)
	if err != nil {
		return QuoteCommissionQueryResponse{}, err
	}

	quote, err := h.calculator.Quote(query.OrderAmount(), restaurantRow.CommissionRate, activeRule)
	if err != nil {
		return QuoteCommissionQueryResponse{}, err
	}

	return QuoteCommissionQueryResponse{
		Rate:             quote.Rate,
		CommissionAmount: quote.CommissionAmount,
		NetAmount:        quote.NetAmount,
	}, nil
}

func (h QuoteCommissionQueryHandler) loadActiveRule(ctx context.Context) (*commission.Rule, error) {
	var row struct {
		ID        uuid.UUID
		Name      string
		Kind      string
		Value     float64
		CreatedBy uuid.UUID
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			kind,
			value,
			created_by,
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
	createdBy, err := kernel.UUIDFromBytes(row.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	return commission.RestoreRule(
		id, row.Name, commission.RuleKind(row.Kind), row.Value, true,
		createdBy, row.CreatedAt, row.UpdatedAt)
}
