package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/restaurant"
)

// RestaurantRepository defines the read contract for restaurant collaborator
// data: the negotiated commission rate and the pickup location. Restaurant
// lifecycle management belongs to the surrounding platform; the dispatch
// core only adds rows in support of tests and bootstrap.
type RestaurantRepository interface {
	// Add persists a restaurant.
	Add(ctx context.Context, aggregate *restaurant.Restaurant) error

	// Get retrieves a restaurant by its unique identifier.
	// Returns a not-found error when the restaurant is unknown.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
}
