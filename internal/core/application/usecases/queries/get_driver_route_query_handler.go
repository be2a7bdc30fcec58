package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// Delivery-point priorities. Food already in the driver's hands outranks a
// pickup, which outranks the drop-off of an order not yet collected.
const (
	priorityAwaitingDropOff = 0
	priorityPickup          = 1
	priorityInHandDropOff   = 2
)

// GetDriverRouteQueryHandler builds a driver's sequenced route. It reads the
// driver's in-flight orders in one query and delegates the ordering to the
// route planner.
type GetDriverRouteQueryHandler struct {
	db      *gorm.DB
	planner services.RoutePlanner
}

// NewGetDriverRouteQueryHandler creates a handler for driver route queries.
func NewGetDriverRouteQueryHandler(db *gorm.DB, planner services.RoutePlanner) GetDriverRouteQueryHandler {
	return GetDriverRouteQueryHandler{db: db, planner: planner}
}

type driverRouteRow struct {
	orderID             uuid.UUID
	status              string
	deliveryAddress     string
	deliveryLat         float64
	deliveryLon         float64
	requestedDeliveryAt sql.NullTime
	restaurantName      string
	restaurantLat       float64
	restaurantLon       float64
}

// Handle loads every delivery point belonging to the driver's orders in
// ready_for_pickup, picked_up or in_transit and returns them sequenced. A
// driver with no open orders gets an empty route.
func (h GetDriverRouteQueryHandler) Handle(
	ctx context.Context,
	query GetDriverRouteQuery,
) (GetDriverRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverRouteQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.delivery_address,
			o.delivery_lat,
			o.delivery_lon,
			o.requested_delivery_at,
			r.name,
			r.lat,
			r.lon
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.driver_id = ? AND o.status IN (?, ?, ?)
		ORDER BY o.created_at, o.id
	`, query.DriverID().Bytes(),
		order.StatusReadyForPickup, order.StatusPickedUp, order.StatusInTransit).Rows()
	if err != nil {
		return GetDriverRouteQueryResponse{}, err
	}
	defer rows.Close()

	points := make([]services.DeliveryPoint, 0)
	for rows.Next() {
		var row driverRouteRow
		if err = rows.Scan(
			&row.orderID,
			&row.status,
			&row.deliveryAddress,
			&row.deliveryLat,
			&row.deliveryLon,
			&row.requestedDeliveryAt,
			&row.restaurantName,
			&row.restaurantLat,
			&row.restaurantLon,
		); err != nil {
			return GetDriverRouteQueryResponse{}, err
		}

		orderPoints, pointsErr := buildOrderPoints(row)
		if pointsErr != nil {
			return GetDriverRouteQueryResponse{}, pointsErr
		}
		points = append(points, orderPoints...)
	}

	if err = rows.Err(); err != nil {
		return GetDriverRouteQueryResponse{}, err
	}

	route, err := h.planner.Plan(points)
	if err != nil {
		return GetDriverRouteQueryResponse{}, err
	}

	return GetDriverRouteQueryResponse{
		Points:          route.Points,
		TotalDistanceKm: route.TotalDistanceKm,
		TotalMinutes:    route.TotalMinutes,
	}, nil
}

// buildOrderPoints derives the delivery points one in-flight order
// contributes to the driver's worklist. An order awaiting pickup contributes
// both its pickup and its drop-off; once collected, only the drop-off
// remains.
func buildOrderPoints(row driverRouteRow) ([]services.DeliveryPoint, error) {
	orderID, err := kernel.UUIDFromBytes(row.orderID[:])
	if err != nil {
		return nil, err
	}

	dropOff, err := kernel.NewGeoPoint(row.deliveryLat, row.deliveryLon)
	if err != nil {
		return nil, err
	}

	var window *time.Time
	if row.requestedDeliveryAt.Valid {
		at := row.requestedDeliveryAt.Time.UTC()
		window = &at
	}

	if order.Status(row.status) != order.StatusReadyForPickup {
		return []services.DeliveryPoint{{
			ID:          kernel.NewUUID(),
			OrderID:     orderID,
			Location:    dropOff,
			Address:     row.deliveryAddress,
			Kind:        services.PointKindDelivery,
			Priority:    priorityInHandDropOff,
			WindowStart: window,
		}}, nil
	}

	pickup, err := kernel.NewGeoPoint(row.restaurantLat, row.restaurantLon)
	if err != nil {
		return nil, err
	}

	return []services.DeliveryPoint{
		{
			ID:       kernel.NewUUID(),
			OrderID:  orderID,
			Location: pickup,
			Address:  row.restaurantName,
			Kind:     services.PointKindPickup,
			Priority: priorityPickup,
		},
		{
			ID:          kernel.NewUUID(),
			OrderID:     orderID,
			Location:    dropOff,
			Address:     row.deliveryAddress,
			Kind:        services.PointKindDelivery,
			Priority:    priorityAwaitingDropOff,
			WindowStart: window,
		},
	}, nil
}
