// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read the database directly and return read models shaped for
// specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

// ErrGetDriverRouteQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetDriverRouteQueryIsNotConstructed = errors.New(
	"GetDriverRouteQuery must be created via NewGetDriverRouteQuery constructor",
)

// GetDriverRouteQuery retrieves the sequenced worklist for one driver: every
// pickup and drop-off belonging to their orders still in flight, ordered by
// urgency and time window.
type GetDriverRouteQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverRouteQuery creates a query for a driver's route.
func NewGetDriverRouteQuery(driverID kernel.UUID) (GetDriverRouteQuery, error) {
	q := GetDriverRouteQuery{guard: guard.NewConstructorGuard()}

	if err := q.setDriverID(driverID); err != nil {
		return GetDriverRouteQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverRouteQueryIsNotConstructed)
}

// DriverID returns the driver whose route is requested.
func (q GetDriverRouteQuery) DriverID() kernel.UUID { return q.driverID }

func (q *GetDriverRouteQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	q.driverID = driverID
	return nil
}

// GetDriverRouteQueryResponse is the sequenced route read model.
type GetDriverRouteQueryResponse struct {
	Points          []services.DeliveryPoint
	TotalDistanceKm float64
	TotalMinutes    float64
}
