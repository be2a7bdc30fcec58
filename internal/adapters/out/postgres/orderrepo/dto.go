// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate and its append-only status history, handling the conversion
// between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The version column carries the optimistic-lock counter; the
// line items are stored as a JSON document since the core never queries
// them relationally.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`
	DriverID     *uuid.UUID `gorm:"type:uuid;index"`

	Items       []ItemDTO `gorm:"serializer:json;type:jsonb"`
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	Total       float64
	Currency    string

	Status string `gorm:"index"`

	DeliveryAddress string
	DeliveryLat     float64
	DeliveryLon     float64
	RestaurantLat   float64
	RestaurantLon   float64

	PaymentMethod string
	PaymentStatus string
	Instructions  string

	EstimatedDistanceKm  float64
	EstimatedDurationMin float64
	RequestedDeliveryAt  *time.Time

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one ordered line item inside the order's JSON items column.
type ItemDTO struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// StatusHistoryDTO represents one row of the append-only status trail.
// Rows are only ever inserted.
type StatusHistoryDTO struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    string
	ActorID   uuid.UUID `gorm:"type:uuid"`
	ActorRole string
	CreatedAt time.Time
}

// TableName overrides GORM's default naming to use "order_status_history".
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		CustomerID:           aggregate.CustomerID().Bytes(),
		RestaurantID:         aggregate.RestaurantID().Bytes(),
		DriverID:             driverID,
		Items:                items,
		Subtotal:             aggregate.Subtotal(),
		DeliveryFee:          aggregate.DeliveryFee(),
		Tax:                  aggregate.Tax(),
		Total:                aggregate.Total(),
		Currency:             aggregate.Currency(),
		Status:               aggregate.Status().String(),
		DeliveryAddress:      aggregate.DeliveryAddress(),
		DeliveryLat:          aggregate.DeliveryLocation().Lat(),
		DeliveryLon:          aggregate.DeliveryLocation().Lon(),
		RestaurantLat:        aggregate.RestaurantLocation().Lat(),
		RestaurantLon:        aggregate.RestaurantLocation().Lon(),
		PaymentMethod:        aggregate.PaymentMethod(),
		PaymentStatus:        aggregate.PaymentStatus(),
		Instructions:         aggregate.Instructions(),
		EstimatedDistanceKm:  aggregate.EstimatedDistanceKm(),
		EstimatedDurationMin: aggregate.EstimatedDurationMin(),
		RequestedDeliveryAt:  aggregate.RequestedDeliveryAt(),
		Version:              aggregate.Version(),
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
	}
}

// historyFromDomain converts one status-history entry to its row form.
func historyFromDomain(entry order.StatusHistoryEntry) StatusHistoryDTO {
	return StatusHistoryDTO{
		OrderID:   entry.OrderID.Bytes(),
		Status:    entry.Status.String(),
		ActorID:   entry.ActorID.Bytes(),
		ActorRole: string(entry.ActorRole),
		CreatedAt: entry.At,
	}
}

// toDomain converts a database row back into an order aggregate using
// RestoreOrder, which revalidates identifiers and the money invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		domainItem, itemErr := order.NewItem(item.Name, item.UnitPrice, item.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, domainItem)
	}

	deliveryLocation, err := kernel.NewGeoPoint(dto.DeliveryLat, dto.DeliveryLon)
	if err != nil {
		return nil, err
	}
	restaurantLocation, err := kernel.NewGeoPoint(dto.RestaurantLat, dto.RestaurantLon)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                   id,
		CustomerID:           customerID,
		RestaurantID:         restaurantID,
		DriverID:             driverID,
		Items:                items,
		Subtotal:             dto.Subtotal,
		DeliveryFee:          dto.DeliveryFee,
		Tax:                  dto.Tax,
		Total:                dto.Total,
		Currency:             dto.Currency,
		Status:               order.Status(dto.Status),
		DeliveryAddress:      dto.DeliveryAddress,
		DeliveryLocation:     deliveryLocation,
		RestaurantLocation:   restaurantLocation,
		PaymentMethod:        dto.PaymentMethod,
		PaymentStatus:        dto.PaymentStatus,
		Instructions:         dto.Instructions,
		EstimatedDistanceKm:  dto.EstimatedDistanceKm,
		EstimatedDurationMin: dto.EstimatedDurationMin,
		RequestedDeliveryAt:  dto.RequestedDeliveryAt,
		Version:              dto.Version,
		CreatedAt:            dto.CreatedAt,
		UpdatedAt:            dto.UpdatedAt,
	})
}

// historyToDomain converts a status-history row back to its domain form.
func historyToDomain(dto StatusHistoryDTO) (order.StatusHistoryEntry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusHistoryEntry{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.StatusHistoryEntry{}, err
	}

	return order.StatusHistoryEntry{
		OrderID:   orderID,
		Status:    order.Status(dto.Status),
		ActorID:   actorID,
		ActorRole: order.ActorRole(dto.ActorRole),
		At:        dto.CreatedAt,
	}, nil
}
