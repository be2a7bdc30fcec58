package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrQuoteCommissionQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrQuoteCommissionQueryIsNotConstructed = errors.New(
	"QuoteCommissionQuery must be created via NewQuoteCommissionQuery constructor",
)

// QuoteCommissionQuery asks what commission would be charged on a given
// order amount for a given restaurant, without creating anything.
type QuoteCommissionQuery struct { //nolint:recvcheck //using for validation
	orderAmount  float64
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewQuoteCommissionQuery creates a commission quote query.
func NewQuoteCommissionQuery(orderAmount float64, restaurantID kernel.UUID) (QuoteCommissionQuery, error) {
	q := QuoteCommissionQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setOrderAmount(orderAmount),
		q.setRestaurantID(restaurantID),
	); err != nil {
		return QuoteCommissionQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q QuoteCommissionQuery) Validate() error {
	return q.guard.Validate(ErrQuoteCommissionQueryIsNotConstructed)
}

// OrderAmount returns the amount to quote against.
func (q QuoteCommissionQuery) OrderAmount() float64 { return q.orderAmount }

// RestaurantID returns the restaurant whose negotiated rate applies.
func (q QuoteCommissionQuery) RestaurantID() kernel.UUID { return q.restaurantID }

func (q *QuoteCommissionQuery) setOrderAmount(orderAmount float64) error {
	if orderAmount < 0 {
		return errs.NewValueIsInvalidError("order amount")
	}

	q.orderAmount = orderAmount
	return nil
}

func (q *QuoteCommissionQuery) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	q.restaurantID = restaurantID
	return nil
}

// QuoteCommissionQueryResponse is the commission quote read model. Rate is
// zero when a flat rule won over the restaurant's percentage.
type QuoteCommissionQueryResponse struct {
	Rate             float64 `json:"rate"`
	CommissionAmount float64 `json:"commissionAmount"`
	NetAmount        float64 `json:"netAmount"`
}
