package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// GetOrderTrackingQueryHandler assembles the tracking snapshot for one
// order. The order row and its history trail are read inside a single
// transaction so a snapshot taken concurrently with a transition is always
// self-consistent.
type GetOrderTrackingQueryHandler struct {
	db  *gorm.DB
	eta services.ETAEstimator
}

// NewGetOrderTrackingQueryHandler creates a handler for tracking queries.
func NewGetOrderTrackingQueryHandler(db *gorm.DB, eta services.ETAEstimator) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db, eta: eta}
}

// Handle returns the order's tracking snapshot. Unknown order ids fail with
// a not-found error.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (OrderTrackingSnapshot, error) {
	if err := query.Validate(); err != nil {
		return OrderTrackingSnapshot{}, err
	}

	var snapshot OrderTrackingSnapshot
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		snapshot, txErr = h.readSnapshot(tx, query.OrderID())
		return txErr
	})
	if err != nil {
		return OrderTrackingSnapshot{}, err
	}

	return snapshot, nil
}

func (h GetOrderTrackingQueryHandler) readSnapshot(tx *gorm.DB, orderID kernel.UUID) (OrderTrackingSnapshot, error) {
	var row struct {
		ID                   uuid.UUID
		Status               string
		DriverID             uuid.NullUUID
		DeliveryAddress      string
		DeliveryLat          float64
		DeliveryLon          float64
		RestaurantLat        float64
		RestaurantLon        float64
		Total                float64
		Currency             string
		PaymentStatus        string
		EstimatedDistanceKm  float64
		EstimatedDurationMin float64
		UpdatedAt            time.Time
	}

	result := tx.Raw(`
		SELECT
			id,
			status,
			driver_id,
			delivery_address,
			delivery_lat,
			delivery_lon,
			restaurant_lat,
			restaurant_lon,
			total,
			currency,
			payment_status,
			estimated_distance_km,
			estimated_duration_min,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Scan(&row)
	if result.Error != nil {
		return OrderTrackingSnapshot{}, result.Error
	}
	if result.RowsAffected == 0 {
		return OrderTrackingSnapshot{}, errs.NewObjectNotFoundError("order", orderID)
	}

	snapshot := OrderTrackingSnapshot{
		OrderID:              orderID,
		Status:               order.Status(row.Status),
		DeliveryAddress:      row.DeliveryAddress,
		DeliveryLat:          row.DeliveryLat,
		DeliveryLon:          row.DeliveryLon,
		RestaurantLat:        row.RestaurantLat,
		RestaurantLon:        row.RestaurantLon,
		Total:                row.Total,
		Currency:             row.Currency,
		PaymentStatus:        row.PaymentStatus,
		EstimatedDistanceKm:  row.EstimatedDistanceKm,
		EstimatedDurationMin: row.EstimatedDurationMin,
		ETAMinutes:           h.eta.EstimateMinutes(row.EstimatedDurationMin),
		UpdatedAt:            row.UpdatedAt,
	}

	if row.DriverID.Valid {
		driverID, err := kernel.UUIDFromBytes(row.DriverID.UUID[:])
		if err != nil {
			return OrderTrackingSnapshot{}, err
		}
		snapshot.DriverID = &driverID
	}

	history, err := h.readHistory(tx, orderID)
	if err != nil {
		return OrderTrackingSnapshot{}, err
	}
	snapshot.History = history

	return snapshot, nil
}

func (h GetOrderTrackingQueryHandler) readHistory(tx *gorm.DB, orderID kernel.UUID) ([]TrackingHistoryEntry, error) {
	rows, err := tx.Raw(`
		SELECT
			status,
			actor_id,
			actor_role,
			created_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]TrackingHistoryEntry, 0)
	for rows.Next() {
		var entry TrackingHistoryEntry
		var status, role string
		var actorID uuid.UUID

		if err = rows.Scan(&status, &actorID, &role, &entry.At); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}

		entry.Status = order.Status(status)
		entry.ActorID = id
		entry.ActorRole = order.ActorRole(role)
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
