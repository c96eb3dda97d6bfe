package model

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a customer order. An order belongs either to a registered
// customer (UserID set) or to a guest (guest contact fields set), never both.
type Order struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	OrderNumber      string        `json:"orderNumber" db:"order_number"`
	UserID           *uuid.UUID    `json:"userId,omitempty" db:"user_id"`
	GuestName        *string       `json:"guestName,omitempty" db:"guest_name"`
	GuestEmail       *string       `json:"guestEmail,omitempty" db:"guest_email"`
	GuestPhone       *string       `json:"guestPhone,omitempty" db:"guest_phone"`
	Status           OrderStatus   `json:"status" db:"status"`
	PaymentStatus    PaymentStatus `json:"paymentStatus" db:"payment_status"`
	Subtotal         float64       `json:"subtotal" db:"subtotal"`
	Discount         float64       `json:"discount" db:"discount"`
	DeliveryCost     float64       `json:"deliveryCost" db:"delivery_cost"`
	Total            float64       `json:"total" db:"total"`
	DeliveryLocation string        `json:"deliveryLocation" db:"delivery_location"`
	ShippingAddress  string        `json:"shippingAddress" db:"shipping_address"`
	PromoCode        *string       `json:"promoCode,omitempty" db:"promo_code"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`
}

// ComputeTotal returns the total the order must carry:
// subtotal - discount + delivery cost.
func (o *Order) ComputeTotal() float64 {
	return o.Subtotal - o.Discount + o.DeliveryCost
}

// OrderItem represents a line item in an order. UnitPrice is a snapshot taken
// at purchase time; later catalogue price changes never alter it.
type OrderItem struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	OrderID   uuid.UUID  `json:"-" db:"order_id"`
	ProductID string     `json:"productId" db:"product_id"`
	VariantID *uuid.UUID `json:"variantId,omitempty" db:"variant_id"`
	Quantity  int        `json:"quantity" db:"quantity"`
	UnitPrice float64    `json:"unitPrice" db:"unit_price"`
	LineTotal float64    `json:"lineTotal" db:"line_total"`
}

// StatusHistory is one row of the append-only order status log. Rows are
// never updated or deleted. Status holds an OrderStatus value or the NOTE
// marker for operator annotations.
type StatusHistory struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	Status    string    `json:"status" db:"status"`
	Notes     string    `json:"notes" db:"notes"`
	Actor     string    `json:"actor" db:"actor"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	UserID           *uuid.UUID         `json:"userId,omitempty"`
	GuestName        *string            `json:"guestName,omitempty"`
	GuestEmail       *string            `json:"guestEmail,omitempty"`
	GuestPhone       *string            `json:"guestPhone,omitempty"`
	DeliveryLocation string             `json:"deliveryLocation"`
	ShippingAddress  string             `json:"shippingAddress"`
	DeliveryCost     float64            `json:"deliveryCost"`
	PromoCode        *string            `json:"promoCode,omitempty"`
	Items            []OrderItemRequest `json:"items"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID string     `json:"productId"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
	Quantity  int        `json:"quantity"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order   Order           `json:"order"`
	Items   []OrderItem     `json:"items"`
	History []StatusHistory `json:"history,omitempty"`
}

// TransitionRequest carries a requested order status change.
type TransitionRequest struct {
	Status OrderStatus `json:"status"`
	Notes  string      `json:"notes"`
	Actor  string      `json:"actor"`
}

// TransitionResult is returned by a successful transition: the updated order
// and the history row written with it.
type TransitionResult struct {
	Order   *Order         `json:"order"`
	History *StatusHistory `json:"historyEntry"`
}

// BulkTransitionRequest applies one status update across many orders.
type BulkTransitionRequest struct {
	OrderIDs []uuid.UUID       `json:"orderIds"`
	Update   TransitionRequest `json:"update"`
}

// BulkTransitionItem is the per-order outcome of a bulk transition. Exactly
// one of Result or Error is set.
type BulkTransitionItem struct {
	OrderID uuid.UUID         `json:"orderId"`
	Result  *TransitionResult `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}
