package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// DeleteCommissionRuleCommandHandler handles commission-rule deletion.
// Deleting the currently active rule is a conflict; deactivate or activate a
// replacement first.
type DeleteCommissionRuleCommandHandler struct {
	uowFactory CommissionUoWFactory
}

// NewDeleteCommissionRuleCommandHandler creates a handler for rule deletion.
func NewDeleteCommissionRuleCommandHandler(uowFactory CommissionUoWFactory) DeleteCommissionRuleCommandHandler {
	return DeleteCommissionRuleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rule deletion command.
func (h *DeleteCommissionRuleCommandHandler) Handle(ctx context.Context, cmd DeleteCommissionRuleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	commissionRepo := uow.CommissionRepository()
	rule, err := commissionRepo.GetRule(ctx, cmd.RuleID())
	if err != nil {
		return err
	}

	if rule.Active() {
		return errs.NewConflictError("cannot delete the active commission rule")
	}

	if err = commissionRepo.DeleteRule(ctx, cmd.RuleID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
