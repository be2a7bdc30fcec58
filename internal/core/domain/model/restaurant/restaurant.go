// Package restaurant holds the minimal restaurant aggregate the dispatch
// core needs: the negotiated commission rate and the pickup location.
// Everything else about restaurants (menus, opening hours, onboarding) is
// owned by the surrounding application.
package restaurant

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrRestaurantIsNotConstructed is returned when a Restaurant was not created
// through NewRestaurant or RestoreRestaurant.
var ErrRestaurantIsNotConstructed = errors.New(
	"Restaurant must be created via NewRestaurant or RestoreRestaurant constructor")

// Restaurant is the dispatch core's read-mostly view of a restaurant.
type Restaurant struct {
	id             kernel.UUID
	name           string
	commissionRate float64
	location       kernel.GeoPoint

	isConstructed bool
}

// NewRestaurant creates a validated restaurant. The commission rate is the
// restaurant's own negotiated percentage and must lie in [0, 100].
func NewRestaurant(id kernel.UUID, name string, commissionRate float64, location kernel.GeoPoint) (*Restaurant, error) {
	r := &Restaurant{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setCommissionRate(commissionRate),
		r.setLocation(location),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRestaurant reconstructs a Restaurant from persistence.
func RestoreRestaurant(id kernel.UUID, name string, commissionRate float64, location kernel.GeoPoint) (*Restaurant, error) {
	return NewRestaurant(id, name, commissionRate, location)
}

// Validate ensures the Restaurant was properly constructed.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

// ID returns the restaurant's unique identifier.
func (r *Restaurant) ID() kernel.UUID { return r.id }

// Name returns the restaurant's display name.
func (r *Restaurant) Name() string { return r.name }

// CommissionRate returns the negotiated commission percentage.
func (r *Restaurant) CommissionRate() float64 { return r.commissionRate }

// Location returns the pickup coordinates.
func (r *Restaurant) Location() kernel.GeoPoint { return r.location }

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("restaurant name")
	}
	r.name = name
	return nil
}

func (r *Restaurant) setCommissionRate(rate float64) error {
	if rate < 0 || rate > 100 {
		return errs.NewValueIsOutOfRangeError("commission rate", rate, 0, 100)
	}
	r.commissionRate = rate
	return nil
}

func (r *Restaurant) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	r.location = location
	return nil
}
