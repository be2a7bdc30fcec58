package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles order placement. Persists the order and
// its first history entry in one transaction, then notifies subscribers.
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	notifier   OrderNotifier
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory CreateOrderUoWFactory, notifier OrderNotifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order placement command. The restaurant's pickup
// location is loaded inside the transaction so an unknown restaurant id
// surfaces as a not-found error before anything is written. The broadcast
// happens only after the transaction committed.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	rest, err := uow.RestaurantRepository().Get(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(kernel.NewUUID(), order.NewOrderParams{
		CustomerID:          cmd.CustomerID(),
		RestaurantID:        cmd.RestaurantID(),
		Items:               cmd.Items(),
		DeliveryFee:         cmd.DeliveryFee(),
		Tax:                 cmd.Tax(),
		Currency:            cmd.Currency(),
		DeliveryAddress:     cmd.DeliveryAddress(),
		DeliveryLocation:    cmd.DeliveryLocation(),
		RestaurantLocation:  rest.Location(),
		PaymentMethod:       cmd.PaymentMethod(),
		Instructions:        cmd.Instructions(),
		RequestedDeliveryAt: cmd.RequestedDeliveryAt(),
	}, now)
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	entry := order.NewStatusHistoryEntry(
		aggregate.ID(), aggregate.Status(), cmd.CustomerID(), order.RoleCustomer, now)
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Publish(ctx, aggregate.ID())

	return aggregate, nil
}
