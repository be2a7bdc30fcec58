package order

import (
	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. The state machine is
// role-gated: which transitions are permitted depends on who performs them,
// and any (from, to, role) triple outside the table is rejected.
//
// Forward path:
//
//	pending .. confirmed ──> preparing ──> ready_for_pickup ──> picked_up ──> in_transit ──> delivered
//
// pending is the initial status; delivered and cancelled are terminal.
// Cancellation is reachable from pending and confirmed (customer), from
// confirmed and preparing (restaurant), and from ready_for_pickup (driver).
type Status string

const (
	// StatusPending is the initial status of a freshly submitted order.
	StatusPending Status = "pending"
	// StatusConfirmed means the restaurant has acknowledged the order.
	StatusConfirmed Status = "confirmed"
	// StatusPreparing means the kitchen is working on the order.
	StatusPreparing Status = "preparing"
	// StatusReadyForPickup means food is waiting for a driver.
	StatusReadyForPickup Status = "ready_for_pickup"
	// StatusPickedUp means a driver has collected the order.
	StatusPickedUp Status = "picked_up"
	// StatusInTransit means the driver is en route to the customer.
	StatusInTransit Status = "in_transit"
	// StatusDelivered is the terminal success state.
	StatusDelivered Status = "delivered"
	// StatusCancelled is the terminal failure state. Orders are never
	// deleted; cancellation is a status, not a removal.
	StatusCancelled Status = "cancelled"
)

// ActorRole identifies who is performing a status transition. Roles come from
// the surrounding identity provider and are trusted as-is.
type ActorRole string

const (
	// RoleCustomer is the ordering customer.
	RoleCustomer ActorRole = "customer"
	// RoleRestaurant is the restaurant fulfilling the order.
	RoleRestaurant ActorRole = "restaurant"
	// RoleDriver is the delivery driver.
	RoleDriver ActorRole = "driver"
)

// transition is a (from, to) status pair.
type transition struct {
	from Status
	to   Status
}

// getValidStatuses returns the set of valid Status values.
func getValidStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusPending:        {},
		StatusConfirmed:      {},
		StatusPreparing:      {},
		StatusReadyForPickup: {},
		StatusPickedUp:       {},
		StatusInTransit:      {},
		StatusDelivered:      {},
		StatusCancelled:      {},
	}
}

// getRoleTransitions returns the permitted transitions per actor role.
// Any pair not listed is rejected regardless of the current persisted status,
// which also rules out skipping states. There is deliberately no restaurant
// path out of ready_for_pickup and no way to re-open a cancelled order.
func getRoleTransitions() map[ActorRole]map[transition]struct{} {
	return map[ActorRole]map[transition]struct{}{
		RoleCustomer: {
			{StatusPending, StatusCancelled}:   {},
			{StatusConfirmed, StatusCancelled}: {},
		},
		RoleRestaurant: {
			{StatusConfirmed, StatusPreparing}:      {},
			{StatusConfirmed, StatusReadyForPickup}: {},
			{StatusConfirmed, StatusCancelled}:      {},
			{StatusPreparing, StatusReadyForPickup}: {},
			{StatusPreparing, StatusCancelled}:      {},
		},
		RoleDriver: {
			{StatusReadyForPickup, StatusPickedUp}:  {},
			{StatusReadyForPickup, StatusCancelled}: {},
			{StatusPickedUp, StatusInTransit}:       {},
			{StatusInTransit, StatusDelivered}:      {},
		},
	}
}

// Validate checks the Status holds one of the defined values.
func (s Status) Validate() error {
	if _, ok := getValidStatuses()[s]; !ok {
		return errs.NewValueIsInvalidError("status " + string(s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition checks whether role may move an order from s to target.
// Returns an InvalidTransitionError for any pair outside the role's table.
func (s Status) CanTransition(target Status, role ActorRole) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}

	allowed, ok := getRoleTransitions()[role]
	if !ok {
		return errs.NewInvalidTransitionError(s.String(), target.String(), string(role))
	}

	if _, ok = allowed[transition{from: s, to: target}]; !ok {
		return errs.NewInvalidTransitionError(s.String(), target.String(), string(role))
	}

	return nil
}

// ActiveDriverStatuses returns the statuses whose orders contribute delivery
// points to a driver's route.
func ActiveDriverStatuses() []Status {
	return []Status{StatusReadyForPickup, StatusPickedUp, StatusInTransit}
}

// Validate checks the ActorRole holds one of the defined values.
func (r ActorRole) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleDriver:
		return nil
	default:
		return errs.NewValueIsInvalidError("actor role " + string(r))
	}
}
