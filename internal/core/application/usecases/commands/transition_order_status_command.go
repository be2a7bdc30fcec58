package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

// ErrTransitionOrderStatusCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand represents a request to move an order to a
// new lifecycle status on behalf of an actor with a given role.
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status
	actorID   kernel.UUID
	actorRole order.ActorRole

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand creates a status-transition command.
// Validates the ids, the target status and the actor role. Whether the
// transition itself is permitted is decided by the aggregate, not here.
func NewTransitionOrderStatusCommand(
	orderID kernel.UUID, newStatus order.Status, actorID kernel.UUID, actorRole order.ActorRole,
) (TransitionOrderStatusCommand, error) {
	cmd := TransitionOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

// OrderID returns the id of the order to transition.
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// NewStatus returns the target status.
func (c TransitionOrderStatusCommand) NewStatus() order.Status { return c.newStatus }

// ActorID returns the id of the actor performing the transition.
func (c TransitionOrderStatusCommand) ActorID() kernel.UUID { return c.actorID }

// ActorRole returns the role the actor acts under.
func (c TransitionOrderStatusCommand) ActorRole() order.ActorRole { return c.actorRole }

func (c *TransitionOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}

func (c *TransitionOrderStatusCommand) setActor(actorID kernel.UUID, actorRole order.ActorRole) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
