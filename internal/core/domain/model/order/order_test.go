package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name string, price float64, qty int) order.Item {
	t.Helper()
	item, err := order.NewItem(name, price, qty)
	require.NoError(t, err)
	return item
}

func validParams(t *testing.T, items ...order.Item) order.NewOrderParams {
	t.Helper()
	deliveryLoc, err := kernel.NewGeoPoint(41.32, 69.28)
	require.NoError(t, err)
	restaurantLoc, err := kernel.NewGeoPoint(41.31, 69.24)
	require.NoError(t, err)

	return order.NewOrderParams{
		CustomerID:         kernel.NewUUID(),
		RestaurantID:       kernel.NewUUID(),
		Items:              items,
		DeliveryFee:        30,
		Tax:                10,
		Currency:           "UZS",
		DeliveryAddress:    "12 Amir Temur Ave",
		DeliveryLocation:   deliveryLoc,
		RestaurantLocation: restaurantLoc,
		PaymentMethod:      "card",
	}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(),
		validParams(t, mustItem(t, "plov", 70, 2), mustItem(t, "tea", 30, 1)),
		time.Now())
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("computes subtotal and total from items", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(),
			validParams(t, mustItem(t, "plov", 70, 2), mustItem(t, "tea", 30, 1)),
			time.Now())

		require.NoError(t, err)
		assert.InDelta(t, 170, o.Subtotal(), 1e-9)
		assert.InDelta(t, 210, o.Total(), 1e-9)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.DriverID())
		assert.EqualValues(t, 1, o.Version())
	})

	t.Run("estimates distance and duration", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Positive(t, o.EstimatedDistanceKm())
		assert.Positive(t, o.EstimatedDurationMin())
	})

	t.Run("empty items are rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), validParams(t), time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("non-positive quantity is rejected at item construction", func(t *testing.T) {
		_, err := order.NewItem("plov", 70, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.NewItem("plov", 70, -1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative charges are rejected", func(t *testing.T) {
		p := validParams(t, mustItem(t, "plov", 70, 1))
		p.DeliveryFee = -1
		_, err := order.NewOrder(kernel.NewUUID(), p, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing address is rejected", func(t *testing.T) {
		p := validParams(t, mustItem(t, "plov", 70, 1))
		p.DeliveryAddress = ""
		_, err := order.NewOrder(kernel.NewUUID(), p, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("roundtrip preserves state", func(t *testing.T) {
		o := newTestOrder(t)

		restored, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:                   o.ID(),
			CustomerID:           o.CustomerID(),
			RestaurantID:         o.RestaurantID(),
			Items:                o.Items(),
			Subtotal:             o.Subtotal(),
			DeliveryFee:          o.DeliveryFee(),
			Tax:                  o.Tax(),
			Total:                o.Total(),
			Currency:             o.Currency(),
			Status:               o.Status(),
			DeliveryAddress:      o.DeliveryAddress(),
			DeliveryLocation:     o.DeliveryLocation(),
			RestaurantLocation:   o.RestaurantLocation(),
			PaymentMethod:        o.PaymentMethod(),
			PaymentStatus:        o.PaymentStatus(),
			EstimatedDistanceKm:  o.EstimatedDistanceKm(),
			EstimatedDurationMin: o.EstimatedDurationMin(),
			Version:              o.Version(),
			CreatedAt:            o.CreatedAt(),
			UpdatedAt:            o.UpdatedAt(),
		})

		require.NoError(t, err)
		assert.True(t, o.IsEqual(restored))
		assert.Equal(t, o.Status(), restored.Status())
		assert.InDelta(t, o.Total(), restored.Total(), 1e-9)
	})

	t.Run("broken money invariant is rejected", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:           o.ID(),
			CustomerID:   o.CustomerID(),
			RestaurantID: o.RestaurantID(),
			Status:       o.Status(),
			Subtotal:     100,
			DeliveryFee:  10,
			Tax:          5,
			Total:        200, // not 115
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	now := time.Now()

	t.Run("valid transition produces history entry", func(t *testing.T) {
		o := newTestOrder(t)
		customer := o.CustomerID()

		entry, err := o.TransitionTo(order.StatusCancelled, customer, order.RoleCustomer, now)

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, o.Status())
		assert.Equal(t, o.ID(), entry.OrderID)
		assert.Equal(t, order.StatusCancelled, entry.Status)
		assert.Equal(t, customer, entry.ActorID)
		assert.Equal(t, order.RoleCustomer, entry.ActorRole)
		assert.Equal(t, now.UTC(), entry.At)
	})

	t.Run("invalid transition leaves order unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.TransitionTo(order.StatusDelivered, kernel.NewUUID(), order.RoleDriver, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.DriverID())
	})

	t.Run("pickup assigns the driver", func(t *testing.T) {
		o := restoredInStatus(t, order.StatusReadyForPickup, nil)
		driver := kernel.NewUUID()

		_, err := o.TransitionTo(order.StatusPickedUp, driver, order.RoleDriver, now)

		require.NoError(t, err)
		require.NotNil(t, o.DriverID())
		assert.True(t, o.DriverID().IsEqual(driver))
	})

	t.Run("driver cancel before pickup does not assign", func(t *testing.T) {
		o := restoredInStatus(t, order.StatusReadyForPickup, nil)

		_, err := o.TransitionTo(order.StatusCancelled, kernel.NewUUID(), order.RoleDriver, now)

		require.NoError(t, err)
		assert.Nil(t, o.DriverID())
	})

	t.Run("another driver cannot take an owned order", func(t *testing.T) {
		owner := kernel.NewUUID()
		o := restoredInStatus(t, order.StatusPickedUp, &owner)

		_, err := o.TransitionTo(order.StatusInTransit, kernel.NewUUID(), order.RoleDriver, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.StatusPickedUp, o.Status())
		assert.True(t, o.DriverID().IsEqual(owner))
	})

	t.Run("owning driver continues the delivery", func(t *testing.T) {
		owner := kernel.NewUUID()
		o := restoredInStatus(t, order.StatusPickedUp, &owner)

		_, err := o.TransitionTo(order.StatusInTransit, owner, order.RoleDriver, now)
		require.NoError(t, err)

		_, err = o.TransitionTo(order.StatusDelivered, owner, order.RoleDriver, now)
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.True(t, o.DriverID().IsEqual(owner))
	})

	t.Run("unconstructed order is rejected", func(t *testing.T) {
		var o order.Order
		_, err := o.TransitionTo(order.StatusCancelled, kernel.NewUUID(), order.RoleCustomer, now)
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

// restoredInStatus rehydrates a valid order forced into the given status,
// the way the repository would hand it to the coordinator.
func restoredInStatus(t *testing.T, status order.Status, driverID *kernel.UUID) *order.Order {
	t.Helper()
	o := newTestOrder(t)

	restored, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:                   o.ID(),
		CustomerID:           o.CustomerID(),
		RestaurantID:         o.RestaurantID(),
		DriverID:             driverID,
		Items:                o.Items(),
		Subtotal:             o.Subtotal(),
		DeliveryFee:          o.DeliveryFee(),
		Tax:                  o.Tax(),
		Total:                o.Total(),
		Currency:             o.Currency(),
		Status:               status,
		DeliveryAddress:      o.DeliveryAddress(),
		DeliveryLocation:     o.DeliveryLocation(),
		RestaurantLocation:   o.RestaurantLocation(),
		PaymentMethod:        o.PaymentMethod(),
		PaymentStatus:        o.PaymentStatus(),
		EstimatedDistanceKm:  o.EstimatedDistanceKm(),
		EstimatedDurationMin: o.EstimatedDurationMin(),
		Version:              o.Version(),
		CreatedAt:            o.CreatedAt(),
		UpdatedAt:            o.UpdatedAt(),
	})
	require.NoError(t, err)
	return restored
}

func TestItem(t *testing.T) {
	t.Run("subtotal", func(t *testing.T) {
		item := mustItem(t, "plov", 70, 2)
		assert.InDelta(t, 140, item.Subtotal(), 1e-9)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := order.NewItem("", 70, 1)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var item order.Item
		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}
