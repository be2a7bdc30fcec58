package services

import "math"

const (
	// trafficMultiplier inflates the base travel estimate for congestion.
	trafficMultiplier = 1.3
	// weatherMultiplier inflates the base travel estimate for weather.
	weatherMultiplier = 1.1
)

// ETAEstimator turns the order's base duration estimate into the figure
// surfaced to customers. The multipliers are fixed constants; a real traffic
// or weather feed is an external collaborator and would be injected here.
type ETAEstimator struct{}

// NewETAEstimator creates an ETAEstimator.
func NewETAEstimator() ETAEstimator {
	return ETAEstimator{}
}

// EstimateMinutes inflates baseMinutes by the traffic and weather
// multipliers, rounded up to a whole minute. Non-positive input yields zero.
func (ETAEstimator) EstimateMinutes(baseMinutes float64) float64 {
	if baseMinutes <= 0 {
		return 0
	}
	return math.Ceil(baseMinutes * trafficMultiplier * weatherMultiplier)
}
