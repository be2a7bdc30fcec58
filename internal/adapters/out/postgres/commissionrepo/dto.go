// Package commissionrepo provides data transfer objects and mapping
// functions for commission-rule and settlement persistence.
package commissionrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
)

// RuleDTO represents the database structure for commission rules.
type RuleDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Kind      string
	Value     float64
	Active    bool      `gorm:"index"`
	CreatedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "commission_rules".
func (RuleDTO) TableName() string {
	return "commission_rules"
}

// SettlementDTO represents the database structure for settlements. The
// unique index on order_id is what physically enforces one settlement per
// delivered order.
type SettlementDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	RestaurantID     uuid.UUID `gorm:"type:uuid;index"`
	TotalAmount      float64
	CommissionRate   float64
	CommissionAmount float64
	NetAmount        float64
	Status           string
	CreatedAt        time.Time
}

// TableName overrides GORM's default naming to use "settlements".
func (SettlementDTO) TableName() string {
	return "settlements"
}

func ruleFromDomain(rule *commission.Rule) RuleDTO {
	return RuleDTO{
		ID:        rule.ID().Bytes(),
		Name:      rule.Name(),
		Kind:      string(rule.Kind()),
		Value:     rule.Value(),
		Active:    rule.Active(),
		CreatedBy: rule.CreatedBy().Bytes(),
		CreatedAt: rule.CreatedAt(),
		UpdatedAt: rule.UpdatedAt(),
	}
}

func ruleToDomain(dto RuleDTO) (*commission.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	return commission.RestoreRule(
		id, dto.Name, commission.RuleKind(dto.Kind), dto.Value, dto.Active,
		createdBy, dto.CreatedAt, dto.UpdatedAt)
}

func settlementFromDomain(settlement *commission.Settlement) SettlementDTO {
	return SettlementDTO{
		ID:               settlement.ID().Bytes(),
		OrderID:          settlement.OrderID().Bytes(),
		RestaurantID:     settlement.RestaurantID().Bytes(),
		TotalAmount:      settlement.TotalAmount(),
		CommissionRate:   settlement.CommissionRate(),
		CommissionAmount: settlement.CommissionAmount(),
		NetAmount:        settlement.NetAmount(),
		Status:           string(settlement.Status()),
		CreatedAt:        settlement.CreatedAt(),
	}
}
