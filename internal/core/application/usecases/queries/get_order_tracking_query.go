package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

// ErrGetOrderTrackingQueryIsNotConstructed is returned when the query was
// not created via its constructor.
var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery retrieves the live tracking snapshot of one order:
// its current state, the full status trail and a customer-facing ETA.
type GetOrderTrackingQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a tracking query for one order.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	q := GetOrderTrackingQuery{guard: guard.NewConstructorGuard()}

	if err := q.setOrderID(orderID); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the order whose snapshot is requested.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID { return q.orderID }

func (q *GetOrderTrackingQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// TrackingHistoryEntry is one step of the order's status trail as presented
// to subscribers.
type TrackingHistoryEntry struct {
	Status    order.Status    `json:"status"`
	ActorID   kernel.UUID     `json:"actorId"`
	ActorRole order.ActorRole `json:"actorRole"`
	At        time.Time       `json:"at"`
}

// OrderTrackingSnapshot is the presentation snapshot pushed to subscribers
// and returned by the polling fallback. ETAMinutes is the base duration
// estimate inflated by the fixed traffic and weather multipliers.
type OrderTrackingSnapshot struct {
	OrderID              kernel.UUID            `json:"orderId"`
	Status               order.Status           `json:"status"`
	DriverID             *kernel.UUID           `json:"driverId,omitempty"`
	DeliveryAddress      string                 `json:"deliveryAddress"`
	DeliveryLat          float64                `json:"deliveryLat"`
	DeliveryLon          float64                `json:"deliveryLon"`
	RestaurantLat        float64                `json:"restaurantLat"`
	RestaurantLon        float64                `json:"restaurantLon"`
	Total                float64                `json:"total"`
	Currency             string                 `json:"currency"`
	PaymentStatus        string                 `json:"paymentStatus"`
	EstimatedDistanceKm  float64                `json:"estimatedDistanceKm"`
	EstimatedDurationMin float64                `json:"estimatedDurationMin"`
	ETAMinutes           float64                `json:"etaMinutes"`
	History              []TrackingHistoryEntry `json:"history"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}
