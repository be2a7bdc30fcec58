package services

import (
	"sort"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// PointKind tells whether a delivery point is a restaurant pickup or a
// customer drop-off.
type PointKind string

const (
	// PointKindPickup marks a restaurant pickup location.
	PointKindPickup PointKind = "pickup"
	// PointKindDelivery marks a customer drop-off location.
	PointKindDelivery PointKind = "delivery"
)

// DeliveryPoint is one stop on a driver's worklist. Points are derived from
// the driver's assigned, non-terminal orders; they are not persisted as
// aggregates of their own.
type DeliveryPoint struct {
	ID       kernel.UUID
	OrderID  kernel.UUID
	Location kernel.GeoPoint
	Address  string
	Kind     PointKind
	// Priority orders stops by urgency; higher goes first.
	Priority    int
	WindowStart *time.Time
	WindowEnd   *time.Time
}

// Route is a sequenced worklist with its cumulative straight-line cost.
type Route struct {
	Points          []DeliveryPoint
	TotalDistanceKm float64
	TotalMinutes    float64
}

// RoutePlanner sequences a driver's outstanding delivery points. The
// ordering is priority first, then time-window start for points that carry a
// window, with windowless points after windowed ones. Ties keep insertion
// order, so identical input always yields the identical route.
type RoutePlanner struct{}

// NewRoutePlanner creates a RoutePlanner.
func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// Plan sorts the points and accumulates the great-circle distance between
// consecutive stops plus a travel-time estimate at the fixed average driver
// speed. An empty input produces an empty route, not an error.
func (RoutePlanner) Plan(points []DeliveryPoint) (Route, error) {
	if len(points) == 0 {
		return Route{Points: []DeliveryPoint{}}, nil
	}

	for _, p := range points {
		if err := p.Location.Validate(); err != nil {
			return Route{}, err
		}
	}

	ordered := make([]DeliveryPoint, len(points))
	copy(ordered, points)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}

		iw, jw := ordered[i].WindowStart, ordered[j].WindowStart
		switch {
		case iw != nil && jw != nil:
			return iw.Before(*jw)
		case iw != nil:
			return true
		case jw != nil:
			return false
		default:
			return false
		}
	})

	var totalKm float64
	for i := 1; i < len(ordered); i++ {
		km, err := ordered[i-1].Location.DistanceKm(ordered[i].Location)
		if err != nil {
			return Route{}, err
		}
		totalKm += km
	}

	return Route{
		Points:          ordered,
		TotalDistanceKm: totalKm,
		TotalMinutes:    kernel.EstimateTravelMinutes(totalKm),
	}, nil
}
