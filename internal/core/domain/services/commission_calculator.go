package services

import (
	"dispatch/internal/core/domain/model/commission"
	"dispatch/internal/pkg/errs"
)

// CommissionQuote is the outcome of applying commission policy to one order
// amount. Rate is the percentage actually charged; it is zero when a flat
// rule won over the restaurant's negotiated percentage.
type CommissionQuote struct {
	Rate             float64
	CommissionAmount float64
	NetAmount        float64
}

// CommissionCalculator applies the platform's commission policy: the charge
// is the greater of the restaurant's own negotiated percentage and the
// globally active rule, if any. This max-of-two tie-break is business
// policy and must not change without product sign-off.
type CommissionCalculator struct{}

// NewCommissionCalculator creates a CommissionCalculator.
func NewCommissionCalculator() CommissionCalculator {
	return CommissionCalculator{}
}

// Quote computes the commission owed on orderAmount for a restaurant with
// the given negotiated percentage rate. activeRule may be nil when no global
// rule is active.
func (CommissionCalculator) Quote(orderAmount, restaurantRate float64, activeRule *commission.Rule) (CommissionQuote, error) {
	if orderAmount < 0 {
		return CommissionQuote{}, errs.NewValueIsOutOfRangeError("order amount", orderAmount, 0, "+inf")
	}
	if restaurantRate < 0 || restaurantRate > 100 {
		return CommissionQuote{}, errs.NewValueIsOutOfRangeError("restaurant commission rate", restaurantRate, 0, 100)
	}

	rate := restaurantRate
	amount := orderAmount * rate / 100

	if activeRule != nil {
		if err := activeRule.Validate(); err != nil {
			return CommissionQuote{}, err
		}

		switch activeRule.Kind() {
		case commission.RuleKindPercentage:
			if activeRule.Value() > rate {
				rate = activeRule.Value()
				amount = orderAmount * rate / 100
			}
		case commission.RuleKindFlat:
			if activeRule.Value() > amount {
				rate = 0
				amount = activeRule.Value()
			}
		}
	}

	return CommissionQuote{
		Rate:             rate,
		CommissionAmount: amount,
		NetAmount:        orderAmount - amount,
	}, nil
}
