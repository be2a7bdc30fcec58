package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

func restoredOrder(t *testing.T, status order.Status, driverID *kernel.UUID) *order.Order {
	t.Helper()
	delivery, err := kernel.NewGeoPoint(41.311151, 69.279737)
	require.NoError(t, err)
	pickup, err := kernel.NewGeoPoint(41.326413, 69.228711)
	require.NoError(t, err)

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	aggregate, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:                 kernel.NewUUID(),
		CustomerID:         kernel.NewUUID(),
		RestaurantID:       kernel.NewUUID(),
		DriverID:           driverID,
		Items:              []order.Item{mustItem(t, "plov", 70, 2)},
		Subtotal:           140,
		DeliveryFee:        30,
		Tax:                10,
		Total:              180,
		Currency:           "UZS",
		Status:             status,
		DeliveryAddress:    "12 Amir Temur Ave",
		DeliveryLocation:   delivery,
		RestaurantLocation: pickup,
		PaymentMethod:      "cash",
		PaymentStatus:      "unpaid",
		Version:            3,
		CreatedAt:          created,
		UpdatedAt:          created,
	})
	require.NoError(t, err)
	return aggregate
}

func newTransitionHandler(
	factory *MockTransitionUoWFactory, notifier *MockOrderNotifier,
) commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(
		factory, services.NewCommissionCalculator(), notifier)
}

func TestTransitionOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, order.StatusConfirmed, nil)
	restaurantID := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderStatusCommand(
		aggregate.ID(), order.StatusPreparing, restaurantID, order.RoleRestaurant)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		orderRepo.On("AppendHistory", mock.Anything,
			mock.AnythingOfType("order.StatusHistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockOrderNotifier)
	notifier.On("Publish", mock.Anything, aggregate.ID()).Once()

	h := newTransitionHandler(factory, notifier)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.StatusPreparing, updated.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_DeliveredCreatesSettlement(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	aggregate := restoredOrder(t, order.StatusInTransit, &driverID)
	cmd, err := commands.NewTransitionOrderStatusCommand(
		aggregate.ID(), order.StatusDelivered, driverID, order.RoleDriver)
	require.NoError(t, err)

	rest := testRestaurant(t, aggregate.RestaurantID())
	rule, err := commission.NewRule(
		kernel.NewUUID(), "global", commission.RuleKindPercentage, 8, true,
		kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	commissionRepo := new(MockCommissionRepository)
	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		orderRepo.On("AppendHistory", mock.Anything,
			mock.AnythingOfType("order.StatusHistoryEntry")).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", mock.Anything, aggregate.RestaurantID()).Return(rest, nil).Once(),
		uow.On("CommissionRepository").Return(commissionRepo).Once(),
		commissionRepo.On("GetActiveRule", mock.Anything).Return(rule, nil).Once(),
		commissionRepo.On("AddSettlement", mock.Anything,
			mock.AnythingOfType("*commission.Settlement")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockOrderNotifier)
	notifier.On("Publish", mock.Anything, aggregate.ID()).Once()

	h := newTransitionHandler(factory, notifier)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.StatusDelivered, updated.Status())

	settlement := commissionRepo.Calls[1].Arguments.Get(1).(*commission.Settlement)
	assert.True(t, settlement.OrderID().IsEqual(aggregate.ID()))
	assert.InDelta(t, 8.0, settlement.CommissionRate(), 0.0001)
	assert.InDelta(t, 14.4, settlement.CommissionAmount(), 0.0001)
	assert.InDelta(t, 165.6, settlement.NetAmount(), 0.0001)

	orderRepo.AssertExpectations(t)
	commissionRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, order.StatusReadyForPickup, nil)
	cmd, err := commands.NewTransitionOrderStatusCommand(
		aggregate.ID(), order.StatusDelivered, kernel.NewUUID(), order.RoleDriver)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockOrderNotifier)

	h := newTransitionHandler(factory, notifier)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderStatusCommand(
		orderID, order.StatusCancelled, kernel.NewUUID(), order.RoleCustomer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newTransitionHandler(factory, new(MockOrderNotifier))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionOrderStatusCommandHandler_Handle_StaleWriteConflict(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, order.StatusConfirmed, nil)
	cmd, err := commands.NewTransitionOrderStatusCommand(
		aggregate.ID(), order.StatusCancelled, aggregate.CustomerID(), order.RoleCustomer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).
			Return(errs.NewConflictError("order version changed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockOrderNotifier)

	h := newTransitionHandler(factory, notifier)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)

	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderStatusCommandHandler_Handle_DriverConflict(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	aggregate := restoredOrder(t, order.StatusPickedUp, &ownerID)
	cmd, err := commands.NewTransitionOrderStatusCommand(
		aggregate.ID(), order.StatusInTransit, kernel.NewUUID(), order.RoleDriver)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newTransitionHandler(factory, new(MockOrderNotifier))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
}
