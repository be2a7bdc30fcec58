package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
)

// CreateCommissionRuleCommandHandler handles commission-rule registration.
// When a rule is created active, every other rule is deactivated in the same
// transaction so at most one rule is active afterwards.
type CreateCommissionRuleCommandHandler struct {
	uowFactory CommissionUoWFactory
}

// NewCreateCommissionRuleCommandHandler creates a handler for rule
// registration.
func NewCreateCommissionRuleCommandHandler(uowFactory CommissionUoWFactory) CreateCommissionRuleCommandHandler {
	return CreateCommissionRuleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rule registration command and returns the new rule.
func (h *CreateCommissionRuleCommandHandler) Handle(
	ctx context.Context, cmd CreateCommissionRuleCommand,
) (*commission.Rule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	rule, err := commission.NewRule(
		kernel.NewUUID(), cmd.Name(), cmd.Kind(), cmd.Value(), cmd.Active(),
		cmd.CreatedBy(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	commissionRepo := uow.CommissionRepository()
	if cmd.Active() {
		if err = commissionRepo.DeactivateAllRules(ctx); err != nil {
			return nil, err
		}
	}

	if err = commissionRepo.AddRule(ctx, rule); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return rule, nil
}
