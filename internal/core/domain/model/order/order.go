package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// moneyEpsilon tolerates float rounding when checking the total invariant.
const moneyEpsilon = 1e-6

// Order is the aggregate root of the dispatch core. It owns the validated
// lifecycle of one placed order, from submission through the role-gated
// status machine to a terminal delivered or cancelled state.
//
// Invariants:
//   - total = subtotal + deliveryFee + tax at all times
//   - driverID is nil while status is pending, confirmed or preparing
//   - once set, driverID never changes for the life of the order
//   - orders are never deleted; cancellation is a terminal status
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	driverID     *kernel.UUID

	items       []Item
	subtotal    float64
	deliveryFee float64
	tax         float64
	total       float64
	currency    string

	status Status

	deliveryAddress    string
	deliveryLocation   kernel.GeoPoint
	restaurantLocation kernel.GeoPoint

	paymentMethod string
	paymentStatus string
	instructions  string

	estimatedDistanceKm  float64
	estimatedDurationMin float64
	requestedDeliveryAt  *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrderParams carries the caller-supplied attributes of a fresh order.
// Monetary amounts are in the order's currency; derived fields (subtotal,
// total, distance, duration) are computed by NewOrder.
type NewOrderParams struct {
	CustomerID          kernel.UUID
	RestaurantID        kernel.UUID
	Items               []Item
	DeliveryFee         float64
	Tax                 float64
	Currency            string
	DeliveryAddress     string
	DeliveryLocation    kernel.GeoPoint
	RestaurantLocation  kernel.GeoPoint
	PaymentMethod       string
	Instructions        string
	RequestedDeliveryAt *time.Time
}

// NewOrder creates a new Order in pending status. It validates the line items
// (non-empty, positive quantities and prices), computes the subtotal from the
// items and the total as subtotal + deliveryFee + tax, and estimates the
// delivery distance and duration between the restaurant and the drop-off.
func NewOrder(id kernel.UUID, p NewOrderParams, now time.Time) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: "unpaid",
		version:       1,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(p.CustomerID),
		o.setRestaurantID(p.RestaurantID),
		o.setItems(p.Items),
		o.setCharges(p.DeliveryFee, p.Tax),
		o.setCurrency(p.Currency),
		o.setDeliveryAddress(p.DeliveryAddress),
		o.setLocations(p.DeliveryLocation, p.RestaurantLocation),
		o.setPaymentMethod(p.PaymentMethod),
	); err != nil {
		return nil, err
	}

	o.instructions = p.Instructions
	if p.RequestedDeliveryAt != nil {
		at := p.RequestedDeliveryAt.UTC()
		o.requestedDeliveryAt = &at
	}

	o.subtotal = 0
	for _, item := range o.items {
		o.subtotal += item.Subtotal()
	}
	o.total = o.subtotal + o.deliveryFee + o.tax

	distance, err := o.restaurantLocation.DistanceKm(o.deliveryLocation)
	if err != nil {
		return nil, err
	}
	o.estimatedDistanceKm = distance
	o.estimatedDurationMin = kernel.EstimateTravelMinutes(distance)

	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID                   kernel.UUID
	CustomerID           kernel.UUID
	RestaurantID         kernel.UUID
	DriverID             *kernel.UUID
	Items                []Item
	Subtotal             float64
	DeliveryFee          float64
	Tax                  float64
	Total                float64
	Currency             string
	Status               Status
	DeliveryAddress      string
	DeliveryLocation     kernel.GeoPoint
	RestaurantLocation   kernel.GeoPoint
	PaymentMethod        string
	PaymentStatus        string
	Instructions         string
	EstimatedDistanceKm  float64
	EstimatedDurationMin float64
	RequestedDeliveryAt  *time.Time
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// RestoreOrder reconstructs an Order from persistence. It revalidates the
// identifiers, the status and the money invariant so corrupted rows are
// caught at the boundary.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.CustomerID.Validate(),
		p.RestaurantID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if p.DriverID != nil {
		if err := p.DriverID.Validate(); err != nil {
			return nil, err
		}
	}

	if math.Abs(p.Total-(p.Subtotal+p.DeliveryFee+p.Tax)) > moneyEpsilon {
		return nil, errs.NewValueIsInvalidErrorWithCause("order total",
			fmt.Errorf("%v is not subtotal %v + delivery fee %v + tax %v",
				p.Total, p.Subtotal, p.DeliveryFee, p.Tax))
	}

	return &Order{
		id:                   p.ID,
		customerID:           p.CustomerID,
		restaurantID:         p.RestaurantID,
		driverID:             p.DriverID,
		items:                p.Items,
		subtotal:             p.Subtotal,
		deliveryFee:          p.DeliveryFee,
		tax:                  p.Tax,
		total:                p.Total,
		currency:             p.Currency,
		status:               p.Status,
		deliveryAddress:      p.DeliveryAddress,
		deliveryLocation:     p.DeliveryLocation,
		restaurantLocation:   p.RestaurantLocation,
		paymentMethod:        p.PaymentMethod,
		paymentStatus:        p.PaymentStatus,
		instructions:         p.Instructions,
		estimatedDistanceKm:  p.EstimatedDistanceKm,
		estimatedDurationMin: p.EstimatedDurationMin,
		requestedDeliveryAt:  p.RequestedDeliveryAt,
		version:              p.Version,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
		isConstructed:        true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// RestaurantID returns the fulfilling restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// DriverID returns the assigned driver's identifier, nil until a driver picks
// the order up.
func (o *Order) DriverID() *kernel.UUID { return o.driverID }

// Items returns a copy of the ordered line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Subtotal returns the sum of line item subtotals.
func (o *Order) Subtotal() float64 { return o.subtotal }

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() float64 { return o.deliveryFee }

// Tax returns the tax amount.
func (o *Order) Tax() float64 { return o.tax }

// Total returns subtotal + delivery fee + tax.
func (o *Order) Total() float64 { return o.total }

// Currency returns the order's currency code.
func (o *Order) Currency() string { return o.currency }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// DeliveryAddress returns the free-text drop-off address.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// DeliveryLocation returns the drop-off coordinates.
func (o *Order) DeliveryLocation() kernel.GeoPoint { return o.deliveryLocation }

// RestaurantLocation returns the pickup coordinates.
func (o *Order) RestaurantLocation() kernel.GeoPoint { return o.restaurantLocation }

// PaymentMethod returns how the customer pays.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// PaymentStatus returns the payment state reported by the surrounding
// application.
func (o *Order) PaymentStatus() string { return o.paymentStatus }

// Instructions returns the customer's special instructions.
func (o *Order) Instructions() string { return o.instructions }

// EstimatedDistanceKm returns the straight-line distance estimated at
// creation time.
func (o *Order) EstimatedDistanceKm() float64 { return o.estimatedDistanceKm }

// EstimatedDurationMin returns the travel-time estimate computed at creation.
func (o *Order) EstimatedDurationMin() float64 { return o.estimatedDurationMin }

// RequestedDeliveryAt returns the customer's requested delivery time, if any.
func (o *Order) RequestedDeliveryAt() *time.Time { return o.requestedDeliveryAt }

// Version returns the optimistic-lock counter as loaded from persistence.
func (o *Order) Version() int64 { return o.version }

// CreatedAt returns the order's creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation time.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// TransitionTo applies one validated status transition performed by actorID
// acting as role, and returns the history record of that transition.
//
// Driver identity is enforced here: the first driver to move the order into
// picked_up becomes its driver, and from then on any driver-role transition
// by a different driver fails with a conflict. The driver id, once set, is
// never overwritten.
func (o *Order) TransitionTo(newStatus Status, actorID kernel.UUID, role ActorRole, now time.Time) (StatusHistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return StatusHistoryEntry{}, err
	}
	if err := actorID.Validate(); err != nil {
		return StatusHistoryEntry{}, err
	}

	if err := o.status.CanTransition(newStatus, role); err != nil {
		return StatusHistoryEntry{}, err
	}

	if role == RoleDriver {
		if o.driverID != nil && !o.driverID.IsEqual(actorID) {
			return StatusHistoryEntry{}, errs.NewConflictError(
				"order " + o.id.String() + " is assigned to another driver")
		}
		if o.driverID == nil && (newStatus == StatusPickedUp || newStatus == StatusInTransit) {
			driverID := actorID
			o.driverID = &driverID
		}
	}

	o.status = newStatus
	o.updatedAt = now.UTC()

	return NewStatusHistoryEntry(o.id, newStatus, actorID, role, now), nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setCharges(deliveryFee, tax float64) error {
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidError("delivery fee")
	}
	if tax < 0 {
		return errs.NewValueIsInvalidError("tax")
	}

	o.deliveryFee = deliveryFee
	o.tax = tax
	return nil
}

func (o *Order) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}

	o.currency = currency
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}

	o.deliveryAddress = address
	return nil
}

func (o *Order) setLocations(delivery, restaurant kernel.GeoPoint) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	if err := restaurant.Validate(); err != nil {
		return err
	}

	o.deliveryLocation = delivery
	o.restaurantLocation = restaurant
	return nil
}

func (o *Order) setPaymentMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}

	o.paymentMethod = method
	return nil
}
