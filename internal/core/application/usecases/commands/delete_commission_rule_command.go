package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrDeleteCommissionRuleCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrDeleteCommissionRuleCommandIsNotConstructed = errors.New(
	"DeleteCommissionRuleCommand must be created via NewDeleteCommissionRuleCommand constructor",
)

// DeleteCommissionRuleCommand represents a request to remove a commission
// rule. The currently active rule cannot be deleted.
type DeleteCommissionRuleCommand struct { //nolint:recvcheck //using for validation
	ruleID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteCommissionRuleCommand creates a rule deletion command.
func NewDeleteCommissionRuleCommand(ruleID kernel.UUID) (DeleteCommissionRuleCommand, error) {
	cmd := DeleteCommissionRuleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRuleID(ruleID); err != nil {
		return DeleteCommissionRuleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteCommissionRuleCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCommissionRuleCommandIsNotConstructed)
}

// RuleID returns the id of the rule to delete.
func (c DeleteCommissionRuleCommand) RuleID() kernel.UUID { return c.ruleID }

func (c *DeleteCommissionRuleCommand) setRuleID(ruleID kernel.UUID) error {
	if err := ruleID.Validate(); err != nil {
		return err
	}

	c.ruleID = ruleID
	return nil
}
