package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrUpdateCommissionRuleCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrUpdateCommissionRuleCommandIsNotConstructed = errors.New(
	"UpdateCommissionRuleCommand must be created via NewUpdateCommissionRuleCommand constructor",
)

// UpdateCommissionRuleCommand represents a request to change an existing
// commission rule's name, pricing or activation state. The command carries
// the full desired state of the rule.
type UpdateCommissionRuleCommand struct { //nolint:recvcheck //using for validation
	ruleID kernel.UUID
	name   string
	kind   commission.RuleKind
	value  float64
	active bool

	guard guard.ConstructorGuard
}

// NewUpdateCommissionRuleCommand creates a rule update command.
func NewUpdateCommissionRuleCommand(
	ruleID kernel.UUID, name string, kind commission.RuleKind, value float64, active bool,
) (UpdateCommissionRuleCommand, error) {
	cmd := UpdateCommissionRuleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRuleID(ruleID),
		cmd.setName(name),
		cmd.setKind(kind),
	); err != nil {
		return UpdateCommissionRuleCommand{}, err
	}

	cmd.value = value
	cmd.active = active

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCommissionRuleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCommissionRuleCommandIsNotConstructed)
}

// RuleID returns the id of the rule to update.
func (c UpdateCommissionRuleCommand) RuleID() kernel.UUID { return c.ruleID }

// Name returns the desired display name.
func (c UpdateCommissionRuleCommand) Name() string { return c.name }

// Kind returns the desired charging kind.
func (c UpdateCommissionRuleCommand) Kind() commission.RuleKind { return c.kind }

// Value returns the desired percentage or flat amount.
func (c UpdateCommissionRuleCommand) Value() float64 { return c.value }

// Active reports whether the rule should be active after the update.
func (c UpdateCommissionRuleCommand) Active() bool { return c.active }

func (c *UpdateCommissionRuleCommand) setRuleID(ruleID kernel.UUID) error {
	if err := ruleID.Validate(); err != nil {
		return err
	}

	c.ruleID = ruleID
	return nil
}

func (c *UpdateCommissionRuleCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("rule name")
	}

	c.name = name
	return nil
}

func (c *UpdateCommissionRuleCommand) setKind(kind commission.RuleKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}
