// Package restaurantrepo persists the restaurant collaborator data the
// dispatch core reads: the negotiated commission rate and the pickup
// location.
package restaurantrepo

import (
	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/restaurant"
)

// RestaurantDTO represents the database structure for restaurants.
type RestaurantDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	CommissionRate float64
	Lat            float64
	Lon            float64
}

// TableName overrides GORM's default naming to use "restaurants".
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

func fromDomain(aggregate *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		CommissionRate: aggregate.CommissionRate(),
		Lat:            aggregate.Location().Lat(),
		Lon:            aggregate.Location().Lon(),
	}
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	return restaurant.RestoreRestaurant(id, dto.Name, dto.CommissionRate, location)
}
