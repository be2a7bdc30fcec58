package commission

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrRuleIsNotConstructed is returned when a Rule was not created through
// NewRule or RestoreRule.
var ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule or RestoreRule constructor")

// RuleKind discriminates how a commission rule charges.
type RuleKind string

const (
	// RuleKindPercentage charges orderAmount * value / 100.
	RuleKindPercentage RuleKind = "percentage"
	// RuleKindFlat charges the fixed value.
	RuleKindFlat RuleKind = "flat"
)

// Validate checks the RuleKind holds one of the defined values.
func (k RuleKind) Validate() error {
	switch k {
	case RuleKindPercentage, RuleKindFlat:
		return nil
	default:
		return errs.NewValueIsInvalidError("rule kind " + string(k))
	}
}

// Rule is a globally configurable commission rule. At most one rule is
// active at any time; activating a rule deactivates all others atomically
// at the persistence layer.
type Rule struct {
	id        kernel.UUID
	name      string
	kind      RuleKind
	value     float64
	active    bool
	createdBy kernel.UUID
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewRule creates a validated commission rule. Percentage values must lie in
// (0, 100]; flat values must be positive.
func NewRule(id kernel.UUID, name string, kind RuleKind, value float64, active bool, createdBy kernel.UUID, now time.Time) (*Rule, error) {
	r := &Rule{
		active:        active,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setKindAndValue(kind, value),
		r.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRule reconstructs a Rule from persistence.
func RestoreRule(id kernel.UUID, name string, kind RuleKind, value float64, active bool, createdBy kernel.UUID, createdAt, updatedAt time.Time) (*Rule, error) {
	if err := errors.Join(id.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	return &Rule{
		id:            id,
		name:          name,
		kind:          kind,
		value:         value,
		active:        active,
		createdBy:     createdBy,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Rule was properly constructed.
func (r *Rule) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRuleIsNotConstructed
	}
	return nil
}

// ID returns the rule's unique identifier.
func (r *Rule) ID() kernel.UUID { return r.id }

// Name returns the rule's display name.
func (r *Rule) Name() string { return r.name }

// Kind returns whether the rule charges a percentage or a flat amount.
func (r *Rule) Kind() RuleKind { return r.kind }

// Value returns the percentage (0..100] or the flat amount.
func (r *Rule) Value() float64 { return r.value }

// Active reports whether this is the rule currently in force.
func (r *Rule) Active() bool { return r.active }

// CreatedBy returns the identifier of whoever created the rule.
func (r *Rule) CreatedBy() kernel.UUID { return r.createdBy }

// CreatedAt returns the creation time.
func (r *Rule) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last mutation time.
func (r *Rule) UpdatedAt() time.Time { return r.updatedAt }

// Rename updates the display name.
func (r *Rule) Rename(name string, now time.Time) error {
	if err := r.setName(name); err != nil {
		return err
	}
	r.updatedAt = now.UTC()
	return nil
}

// Reprice updates the rule's kind and value.
func (r *Rule) Reprice(kind RuleKind, value float64, now time.Time) error {
	if err := r.setKindAndValue(kind, value); err != nil {
		return err
	}
	r.updatedAt = now.UTC()
	return nil
}

// Activate marks the rule as the one in force. The persistence layer is
// responsible for deactivating all other rules in the same transaction.
func (r *Rule) Activate(now time.Time) {
	r.active = true
	r.updatedAt = now.UTC()
}

// Deactivate takes the rule out of force.
func (r *Rule) Deactivate(now time.Time) {
	r.active = false
	r.updatedAt = now.UTC()
}

func (r *Rule) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rule) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("rule name")
	}
	r.name = name
	return nil
}

func (r *Rule) setKindAndValue(kind RuleKind, value float64) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("rule value",
			fmt.Errorf("%v is not greater than 0", value))
	}
	if kind == RuleKindPercentage && value > 100 {
		return errs.NewValueIsOutOfRangeError("rule value", value, 0, 100)
	}

	r.kind = kind
	r.value = value
	return nil
}

func (r *Rule) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}
	r.createdBy = createdBy
	return nil
}
