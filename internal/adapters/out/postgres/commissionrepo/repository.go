package commissionrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GormCommissionRepository implements ports.CommissionRepository using GORM.
//
// Duplicate-key detection on settlements relies on gorm's TranslateError
// option being enabled on the connection.
type GormCommissionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCommissionRepository creates a new GORM commission repository.
func NewGormCommissionRepository(db *gorm.DB, tracker aggregateTracker) *GormCommissionRepository {
	return &GormCommissionRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddRule inserts a new commission rule.
func (r *GormCommissionRepository) AddRule(ctx context.Context, rule *commission.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	dto := ruleFromDomain(rule)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("add commission rule", err)
	}

	r.tracker.TrackAggregate(rule.ID(), rule)
	return nil
}

// UpdateRule writes a commission rule's full row.
func (r *GormCommissionRepository) UpdateRule(ctx context.Context, rule *commission.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	dto := ruleFromDomain(rule)
	result := r.db.WithContext(ctx).Model(&RuleDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "kind", "value", "active", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update commission rule", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("commission rule", rule.ID().String())
	}

	r.tracker.TrackAggregate(rule.ID(), rule)
	return nil
}

// DeleteRule removes a commission rule by id.
func (r *GormCommissionRepository) DeleteRule(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RuleDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return errs.NewPersistenceError("delete commission rule", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("commission rule", id.String())
	}

	return nil
}

// GetRule retrieves a commission rule by id.
func (r *GormCommissionRepository) GetRule(ctx context.Context, id kernel.UUID) (*commission.Rule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RuleDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		err = r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("commission rule", id.String())
		}
		return nil, errs.NewPersistenceError("get commission rule", err)
	}

	return ruleToDomain(dto)
}

// GetActiveRule retrieves the single active rule, or nil when none is.
func (r *GormCommissionRepository) GetActiveRule(ctx context.Context) (*commission.Rule, error) {
	var dto RuleDTO
	err := r.db.WithContext(ctx).First(&dto, "active").Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		err = r.db.WithContext(ctx).First(&dto, "active").Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errs.NewPersistenceError("get active commission rule", err)
	}

	return ruleToDomain(dto)
}

// DeactivateAllRules clears the active flag on every rule.
func (r *GormCommissionRepository) DeactivateAllRules(ctx context.Context) error {
	err := r.db.WithContext(ctx).Model(&RuleDTO{}).
		Where("active").
		Update("active", false).Error
	if err != nil {
		return errs.NewPersistenceError("deactivate commission rules", err)
	}

	return nil
}

// AddSettlement inserts a settlement. A second settlement for the same order
// hits the unique index and surfaces as a conflict.
func (r *GormCommissionRepository) AddSettlement(ctx context.Context, settlement *commission.Settlement) error {
	if err := settlement.Validate(); err != nil {
		return err
	}

	dto := settlementFromDomain(settlement)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError(
				"settlement for order " + settlement.OrderID().String() + " already exists")
		}
		return errs.NewPersistenceError("add settlement", err)
	}

	r.tracker.TrackAggregate(settlement.ID(), settlement)
	return nil
}
