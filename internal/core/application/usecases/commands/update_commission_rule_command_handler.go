package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/commission"
)

// UpdateCommissionRuleCommandHandler handles commission-rule updates.
// Activating a rule deactivates every other rule inside the same
// transaction, preserving the at-most-one-active invariant.
type UpdateCommissionRuleCommandHandler struct {
	uowFactory CommissionUoWFactory
}

// NewUpdateCommissionRuleCommandHandler creates a handler for rule updates.
func NewUpdateCommissionRuleCommandHandler(uowFactory CommissionUoWFactory) UpdateCommissionRuleCommandHandler {
	return UpdateCommissionRuleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rule update command and returns the updated rule.
func (h *UpdateCommissionRuleCommandHandler) Handle(
	ctx context.Context, cmd UpdateCommissionRuleCommand,
) (*commission.Rule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	commissionRepo := uow.CommissionRepository()
	rule, err := commissionRepo.GetRule(ctx, cmd.RuleID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err = rule.Rename(cmd.Name(), now); err != nil {
		return nil, err
	}
	if err = rule.Reprice(cmd.Kind(), cmd.Value(), now); err != nil {
		return nil, err
	}

	switch {
	case cmd.Active() && !rule.Active():
		if err = commissionRepo.DeactivateAllRules(ctx); err != nil {
			return nil, err
		}
		rule.Activate(now)
	case !cmd.Active() && rule.Active():
		rule.Deactivate(now)
	}

	if err = commissionRepo.UpdateRule(ctx, rule); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return rule, nil
}
