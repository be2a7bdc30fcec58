package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new order. The
// restaurant's pickup location is not part of the command; the handler loads
// it from the restaurant the order references.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.UUID
	restaurantID kernel.UUID

	items       []order.Item
	deliveryFee float64
	tax         float64
	currency    string

	deliveryAddress  string
	deliveryLocation kernel.GeoPoint

	paymentMethod       string
	instructions        string
	requestedDeliveryAt *time.Time

	guard guard.ConstructorGuard
}

// CreateOrderParams carries the caller-supplied attributes of the command.
type CreateOrderParams struct {
	CustomerID          kernel.UUID
	RestaurantID        kernel.UUID
	Items               []order.Item
	DeliveryFee         float64
	Tax                 float64
	Currency            string
	DeliveryAddress     string
	DeliveryLocation    kernel.GeoPoint
	PaymentMethod       string
	Instructions        string
	RequestedDeliveryAt *time.Time
}

// NewCreateOrderCommand creates a command to place a new order. Validates
// ids, the line items (non-empty, already item-level validated), the charges
// and the drop-off location.
func NewCreateOrderCommand(p CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(p.CustomerID),
		cmd.setRestaurantID(p.RestaurantID),
		cmd.setItems(p.Items),
		cmd.setCharges(p.DeliveryFee, p.Tax),
		cmd.setCurrency(p.Currency),
		cmd.setDelivery(p.DeliveryAddress, p.DeliveryLocation),
		cmd.setPaymentMethod(p.PaymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.instructions = p.Instructions
	cmd.requestedDeliveryAt = p.RequestedDeliveryAt

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// RestaurantID returns the fulfilling restaurant's identifier.
func (c CreateOrderCommand) RestaurantID() kernel.UUID { return c.restaurantID }

// Items returns the ordered line items.
func (c CreateOrderCommand) Items() []order.Item { return c.items }

// DeliveryFee returns the delivery fee.
func (c CreateOrderCommand) DeliveryFee() float64 { return c.deliveryFee }

// Tax returns the tax amount.
func (c CreateOrderCommand) Tax() float64 { return c.tax }

// Currency returns the order currency code.
func (c CreateOrderCommand) Currency() string { return c.currency }

// DeliveryAddress returns the free-text drop-off address.
func (c CreateOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

// DeliveryLocation returns the drop-off coordinates.
func (c CreateOrderCommand) DeliveryLocation() kernel.GeoPoint { return c.deliveryLocation }

// PaymentMethod returns how the customer pays.
func (c CreateOrderCommand) PaymentMethod() string { return c.paymentMethod }

// Instructions returns the customer's special instructions.
func (c CreateOrderCommand) Instructions() string { return c.instructions }

// RequestedDeliveryAt returns the requested delivery time, if any.
func (c CreateOrderCommand) RequestedDeliveryAt() *time.Time { return c.requestedDeliveryAt }

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}

	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}

	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setCharges(deliveryFee, tax float64) error {
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidError("delivery fee")
	}
	if tax < 0 {
		return errs.NewValueIsInvalidError("tax")
	}

	c.deliveryFee = deliveryFee
	c.tax = tax
	return nil
}

func (c *CreateOrderCommand) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}

	c.currency = currency
	return nil
}

func (c *CreateOrderCommand) setDelivery(address string, location kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	if err := location.Validate(); err != nil {
		return err
	}

	c.deliveryAddress = address
	c.deliveryLocation = location
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}

	c.paymentMethod = method
	return nil
}
