package http

import (
	"time"

	"dispatch/internal/core/domain/model/order"
)

// ErrorResponse is the uniform error payload of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the payload of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID          string             `json:"customerId"`
	RestaurantID        string             `json:"restaurantId"`
	Items               []OrderItemRequest `json:"items"`
	DeliveryFee         float64            `json:"deliveryFee"`
	Tax                 float64            `json:"tax"`
	Currency            string             `json:"currency"`
	DeliveryAddress     string             `json:"deliveryAddress"`
	DeliveryLat         float64            `json:"deliveryLat"`
	DeliveryLon         float64            `json:"deliveryLon"`
	PaymentMethod       string             `json:"paymentMethod"`
	Instructions        string             `json:"instructions,omitempty"`
	RequestedDeliveryAt *time.Time         `json:"requestedDeliveryAt,omitempty"`
}

// OrderItemRequest is one line item of an order being placed.
type OrderItemRequest struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// TransitionRequest is the payload of POST /api/v1/orders/:id/status.
type TransitionRequest struct {
	NewStatus string `json:"newStatus"`
	ActorID   string `json:"actorId"`
	ActorRole string `json:"actorRole"`
}

// OrderResponse is the API representation of an order.
type OrderResponse struct {
	ID                   string              `json:"id"`
	CustomerID           string              `json:"customerId"`
	RestaurantID         string              `json:"restaurantId"`
	DriverID             *string             `json:"driverId,omitempty"`
	Items                []OrderItemResponse `json:"items"`
	Subtotal             float64             `json:"subtotal"`
	DeliveryFee          float64             `json:"deliveryFee"`
	Tax                  float64             `json:"tax"`
	Total                float64             `json:"total"`
	Currency             string              `json:"currency"`
	Status               string              `json:"status"`
	DeliveryAddress      string              `json:"deliveryAddress"`
	PaymentMethod        string              `json:"paymentMethod"`
	PaymentStatus        string              `json:"paymentStatus"`
	Instructions         string              `json:"instructions,omitempty"`
	EstimatedDistanceKm  float64             `json:"estimatedDistanceKm"`
	EstimatedDurationMin float64             `json:"estimatedDurationMin"`
	RequestedDeliveryAt  *time.Time          `json:"requestedDeliveryAt,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// OrderItemResponse is one line item of an order.
type OrderItemResponse struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CommissionRuleRequest is the payload for creating and updating rules.
type CommissionRuleRequest struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Value     float64 `json:"value"`
	Active    bool    `json:"active"`
	CreatedBy string  `json:"createdBy,omitempty"`
}

// CommissionRuleResponse is the API representation of a commission rule.
type CommissionRuleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Value     float64   `json:"value"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoutePointResponse is one stop of a driver's planned route.
type RoutePointResponse struct {
	OrderID     string     `json:"orderId"`
	Kind        string     `json:"kind"`
	Address     string     `json:"address"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Priority    int        `json:"priority"`
	WindowStart *time.Time `json:"windowStart,omitempty"`
	WindowEnd   *time.Time `json:"windowEnd,omitempty"`
}

// DriverRouteResponse is the API representation of a planned route.
type DriverRouteResponse struct {
	Points          []RoutePointResponse `json:"points"`
	TotalDistanceKm float64              `json:"totalDistanceKm"`
	TotalMinutes    float64              `json:"totalMinutes"`
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemResponse{
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
		})
	}

	var driverID *string
	if aggregate.DriverID() != nil {
		s := aggregate.DriverID().String()
		driverID = &s
	}

	return OrderResponse{
		ID:                   aggregate.ID().String(),
		CustomerID:           aggregate.CustomerID().String(),
		RestaurantID:         aggregate.RestaurantID().String(),
		DriverID:             driverID,
		Items:                items,
		Subtotal:             aggregate.Subtotal(),
		DeliveryFee:          aggregate.DeliveryFee(),
		Tax:                  aggregate.Tax(),
		Total:                aggregate.Total(),
		Currency:             aggregate.Currency(),
		Status:               aggregate.Status().String(),
		DeliveryAddress:      aggregate.DeliveryAddress(),
		PaymentMethod:        aggregate.PaymentMethod(),
		PaymentStatus:        aggregate.PaymentStatus(),
		Instructions:         aggregate.Instructions(),
		EstimatedDistanceKm:  aggregate.EstimatedDistanceKm(),
		EstimatedDurationMin: aggregate.EstimatedDurationMin(),
		RequestedDeliveryAt:  aggregate.RequestedDeliveryAt(),
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
	}
}
