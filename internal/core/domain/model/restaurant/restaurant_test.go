package restaurant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/restaurant"
	"dispatch/internal/pkg/errs"
)

func TestNewRestaurant(t *testing.T) {
	location, err := kernel.NewGeoPoint(41.311151, 69.279737)
	require.NoError(t, err)

	r, err := restaurant.NewRestaurant(kernel.NewUUID(), "Navat", 7.5, location)
	require.NoError(t, err)

	assert.NoError(t, r.Validate())
	assert.Equal(t, "Navat", r.Name())
	assert.InDelta(t, 7.5, r.CommissionRate(), 0.0001)
	assert.Equal(t, location, r.Location())
}

func TestNewRestaurantErrors(t *testing.T) {
	location, err := kernel.NewGeoPoint(41.311151, 69.279737)
	require.NoError(t, err)

	tests := map[string]struct {
		id       kernel.UUID
		name     string
		rate     float64
		location kernel.GeoPoint
		wantErr  error
	}{
		"empty id":        {kernel.UUID{}, "Navat", 7.5, location, kernel.ErrUUIDIsNotConstructed},
		"empty name":      {kernel.NewUUID(), "", 7.5, location, errs.ErrValueIsRequired},
		"negative rate":   {kernel.NewUUID(), "Navat", -1, location, errs.ErrValueIsOutOfRange},
		"rate above 100":  {kernel.NewUUID(), "Navat", 100.5, location, errs.ErrValueIsOutOfRange},
		"zero location":   {kernel.NewUUID(), "Navat", 7.5, kernel.GeoPoint{}, errs.ErrValueIsRequired},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := restaurant.NewRestaurant(test.id, test.name, test.rate, test.location)
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}

func TestRestaurantValidateZeroValue(t *testing.T) {
	var r restaurant.Restaurant
	assert.ErrorIs(t, r.Validate(), restaurant.ErrRestaurantIsNotConstructed)
}
