package commission

import (
	"errors"
	"fmt"
	"math"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrSettlementIsNotConstructed is returned when a Settlement was not created
// through NewSettlement or RestoreSettlement.
var ErrSettlementIsNotConstructed = errors.New(
	"Settlement must be created via NewSettlement or RestoreSettlement constructor")

// SettlementStatus tracks the payout state of a settlement.
type SettlementStatus string

const (
	// SettlementPending means the restaurant has not been paid out yet.
	SettlementPending SettlementStatus = "pending"
	// SettlementPaid means the payout went through.
	SettlementPaid SettlementStatus = "paid"
)

// Settlement records how much commission the platform retains and how much
// net amount is owed to the restaurant for one completed order. Exactly one
// settlement exists per delivered order; it is immutable except for its own
// payout-status transition.
type Settlement struct {
	id               kernel.UUID
	orderID          kernel.UUID
	restaurantID     kernel.UUID
	totalAmount      float64
	commissionRate   float64
	commissionAmount float64
	netAmount        float64
	status           SettlementStatus
	createdAt        time.Time

	isConstructed bool
}

// NewSettlement creates a pending settlement. The net amount must equal
// totalAmount - commissionAmount.
func NewSettlement(id, orderID, restaurantID kernel.UUID, totalAmount, commissionRate, commissionAmount, netAmount float64, now time.Time) (*Settlement, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), restaurantID.Validate()); err != nil {
		return nil, err
	}

	if totalAmount <= 0 {
		return nil, errs.NewValueIsInvalidError("settlement total amount")
	}
	if commissionAmount < 0 {
		return nil, errs.NewValueIsInvalidError("settlement commission amount")
	}
	if math.Abs(netAmount-(totalAmount-commissionAmount)) > 1e-6 {
		return nil, errs.NewValueIsInvalidErrorWithCause("settlement net amount",
			fmt.Errorf("%v is not total %v minus commission %v", netAmount, totalAmount, commissionAmount))
	}

	return &Settlement{
		id:               id,
		orderID:          orderID,
		restaurantID:     restaurantID,
		totalAmount:      totalAmount,
		commissionRate:   commissionRate,
		commissionAmount: commissionAmount,
		netAmount:        netAmount,
		status:           SettlementPending,
		createdAt:        now.UTC(),
		isConstructed:    true,
	}, nil
}

// RestoreSettlement reconstructs a Settlement from persistence.
func RestoreSettlement(id, orderID, restaurantID kernel.UUID, totalAmount, commissionRate, commissionAmount, netAmount float64, status SettlementStatus, createdAt time.Time) (*Settlement, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), restaurantID.Validate()); err != nil {
		return nil, err
	}

	return &Settlement{
		id:               id,
		orderID:          orderID,
		restaurantID:     restaurantID,
		totalAmount:      totalAmount,
		commissionRate:   commissionRate,
		commissionAmount: commissionAmount,
		netAmount:        netAmount,
		status:           status,
		createdAt:        createdAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Settlement was properly constructed.
func (s *Settlement) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSettlementIsNotConstructed
	}
	return nil
}

// ID returns the settlement's unique identifier.
func (s *Settlement) ID() kernel.UUID { return s.id }

// OrderID returns the settled order's identifier.
func (s *Settlement) OrderID() kernel.UUID { return s.orderID }

// RestaurantID returns the restaurant owed the net amount.
func (s *Settlement) RestaurantID() kernel.UUID { return s.restaurantID }

// TotalAmount returns the order total the settlement was computed from.
func (s *Settlement) TotalAmount() float64 { return s.totalAmount }

// CommissionRate returns the percentage rate used, zero when a flat rule won.
func (s *Settlement) CommissionRate() float64 { return s.commissionRate }

// CommissionAmount returns the amount the platform retains.
func (s *Settlement) CommissionAmount() float64 { return s.commissionAmount }

// NetAmount returns the amount owed to the restaurant.
func (s *Settlement) NetAmount() float64 { return s.netAmount }

// Status returns the payout state.
func (s *Settlement) Status() SettlementStatus { return s.status }

// CreatedAt returns the settlement creation time.
func (s *Settlement) CreatedAt() time.Time { return s.createdAt }

// MarkPaid transitions the settlement to paid. Paying twice is a conflict.
func (s *Settlement) MarkPaid() error {
	if s.status == SettlementPaid {
		return errs.NewConflictError("settlement " + s.id.String() + " is already paid")
	}
	s.status = SettlementPaid
	return nil
}
