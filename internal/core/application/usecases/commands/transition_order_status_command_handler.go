package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// TransitionOrderStatusCommandHandler drives the order state machine. One
// call is one transaction: the status write, the history entry and, for the
// delivered transition, the settlement either all commit or all roll back.
//
// The handler never retries a transition on its own. A concurrent writer
// surfaces as a conflict error and the caller decides whether to re-read and
// retry; silently retrying could double-apply a settlement.
type TransitionOrderStatusCommandHandler struct {
	uowFactory TransitionUoWFactory
	calculator services.CommissionCalculator
	notifier   OrderNotifier
}

// NewTransitionOrderStatusCommandHandler creates a handler for status
// transitions.
func NewTransitionOrderStatusCommandHandler(
	uowFactory TransitionUoWFactory,
	calculator services.CommissionCalculator,
	notifier OrderNotifier,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		notifier:   notifier,
	}
}

// Handle applies one status transition and returns the updated order. The
// broadcast goes out strictly after the transaction committed, so a
// subscriber can never observe a state that was not durably persisted.
func (h *TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd TransitionOrderStatusCommand,
) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry, err := aggregate.TransitionTo(cmd.NewStatus(), cmd.ActorID(), cmd.ActorRole(), now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}

	if cmd.NewStatus() == order.StatusDelivered {
		if err = h.settle(ctx, uow, aggregate, now); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Publish(ctx, aggregate.ID())

	return aggregate, nil
}

// settle creates the one settlement row the delivered order owes its
// restaurant, inside the caller's open transaction.
func (h *TransitionOrderStatusCommandHandler) settle(
	ctx context.Context, uow TransitionUoW, aggregate *order.Order, now time.Time,
) error {
	rest, err := uow.RestaurantRepository().Get(ctx, aggregate.RestaurantID())
	if err != nil {
		return err
	}

	commissionRepo := uow.CommissionRepository()
	activeRule, err := commissionRepo.GetActiveRule(ctx)
	if err != nil {
		return err
	}

	quote, err := h.calculator.Quote(aggregate.Total(), rest.CommissionRate(), activeRule)
	if err != nil {
		return err
	}

	settlement, err := commission.NewSettlement(
		kernel.NewUUID(), aggregate.ID(), aggregate.RestaurantID(),
		aggregate.Total(), quote.Rate, quote.CommissionAmount, quote.NetAmount, now)
	if err != nil {
		return err
	}

	return commissionRepo.AddSettlement(ctx, settlement)
}
