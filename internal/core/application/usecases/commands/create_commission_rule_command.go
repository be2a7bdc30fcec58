package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrCreateCommissionRuleCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrCreateCommissionRuleCommandIsNotConstructed = errors.New(
	"CreateCommissionRuleCommand must be created via NewCreateCommissionRuleCommand constructor",
)

// CreateCommissionRuleCommand represents a request to register a new
// commission rule, optionally activating it immediately.
type CreateCommissionRuleCommand struct { //nolint:recvcheck //using for validation
	name      string
	kind      commission.RuleKind
	value     float64
	active    bool
	createdBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateCommissionRuleCommand creates a command to register a commission
// rule. Value bounds are enforced by the rule aggregate; the command only
// checks presence and kind validity.
func NewCreateCommissionRuleCommand(
	name string, kind commission.RuleKind, value float64, active bool, createdBy kernel.UUID,
) (CreateCommissionRuleCommand, error) {
	cmd := CreateCommissionRuleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setKind(kind),
		cmd.setCreatedBy(createdBy),
	); err != nil {
		return CreateCommissionRuleCommand{}, err
	}

	cmd.value = value
	cmd.active = active

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCommissionRuleCommand) Validate() error {
	return c.guard.Validate(ErrCreateCommissionRuleCommandIsNotConstructed)
}

// Name returns the rule's display name.
func (c CreateCommissionRuleCommand) Name() string { return c.name }

// Kind returns whether the rule charges a percentage or a flat amount.
func (c CreateCommissionRuleCommand) Kind() commission.RuleKind { return c.kind }

// Value returns the percentage or flat amount.
func (c CreateCommissionRuleCommand) Value() float64 { return c.value }

// Active reports whether the rule should be activated on creation.
func (c CreateCommissionRuleCommand) Active() bool { return c.active }

// CreatedBy returns the id of the operator registering the rule.
func (c CreateCommissionRuleCommand) CreatedBy() kernel.UUID { return c.createdBy }

func (c *CreateCommissionRuleCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("rule name")
	}

	c.name = name
	return nil
}

func (c *CreateCommissionRuleCommand) setKind(kind commission.RuleKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *CreateCommissionRuleCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}

	c.createdBy = createdBy
	return nil
}
