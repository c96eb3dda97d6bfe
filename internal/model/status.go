package model

// OrderStatus is the lifecycle stage of a purchase.
type OrderStatus string

const (
	OrderPending        OrderStatus = "PENDING"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderProcessing     OrderStatus = "PROCESSING"
	OrderShipped        OrderStatus = "SHIPPED"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
	OrderReturned       OrderStatus = "RETURNED"
)

// StatusNote marks a history row that is an operator annotation, not a
// transition. It is never written to Order.Status.
const StatusNote = "NOTE"

// orderStatusRank orders the forward chain PENDING..DELIVERED. CANCELLED and
// RETURNED sit outside the chain and are handled by CanTransition.
var orderStatusRank = map[OrderStatus]int{
	OrderPending:        0,
	OrderConfirmed:      1,
	OrderProcessing:     2,
	OrderShipped:        3,
	OrderOutForDelivery: 4,
	OrderDelivered:      5,
}

// Valid reports whether s is a recognised order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped,
		OrderOutForDelivery, OrderDelivered, OrderCancelled, OrderReturned:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == OrderCancelled || s == OrderReturned
}

// CanTransition reports whether an order may move from s to next through the
// public transition path. Forward jumps along the chain are allowed (an admin
// may move PENDING straight to PROCESSING); backward moves are not.
// CANCELLED is reachable from any pre-SHIPPED state. RETURNED is never
// reachable here: it is owned by the returns processor.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s.Terminal() {
		return false
	}
	if next == OrderReturned {
		return false
	}
	if next == OrderCancelled {
		return orderStatusRank[s] < orderStatusRank[OrderShipped]
	}
	return orderStatusRank[next] > orderStatusRank[s]
}

// PaymentStatus is the payment state carried on an order.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// DeliveryStatus is the lifecycle stage of the physical shipment, tracked
// separately from OrderStatus.
type DeliveryStatus string

const (
	DeliveryLabelGenerated DeliveryStatus = "LABEL_GENERATED"
	DeliveryInTransit      DeliveryStatus = "IN_TRANSIT"
	DeliveryShipped        DeliveryStatus = "SHIPPED"
	DeliveryOutForDelivery DeliveryStatus = "OUT_FOR_DELIVERY"
	DeliveryDelivered      DeliveryStatus = "DELIVERED"
)

// Valid reports whether s is a recognised delivery status.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryLabelGenerated, DeliveryInTransit, DeliveryShipped,
		DeliveryOutForDelivery, DeliveryDelivered:
		return true
	}
	return false
}

// deliveryStatusFor maps shipping-relevant order statuses to the delivery
// status written by the tracking cascade. The table is exhaustive over the
// statuses that cascade; anything else does not touch delivery tracking.
var deliveryStatusFor = map[OrderStatus]DeliveryStatus{
	OrderShipped:        DeliveryShipped,
	OrderOutForDelivery: DeliveryOutForDelivery,
	OrderDelivered:      DeliveryDelivered,
}

// DeliveryStatusFor returns the delivery status a transition to s cascades
// into, and whether s cascades at all.
func DeliveryStatusFor(s OrderStatus) (DeliveryStatus, bool) {
	ds, ok := deliveryStatusFor[s]
	return ds, ok
}

// ReturnStatus is the lifecycle stage of a return request.
type ReturnStatus string

const (
	ReturnRequested ReturnStatus = "REQUESTED"
	ReturnApproved  ReturnStatus = "APPROVED"
	ReturnRejected  ReturnStatus = "REJECTED"
	ReturnCompleted ReturnStatus = "COMPLETED"
)

// Valid reports whether s is a recognised return status.
func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnRequested, ReturnApproved, ReturnRejected, ReturnCompleted:
		return true
	}
	return false
}

// ReturnDecision is the decision applied when processing a return request.
type ReturnDecision string

const (
	DecisionApprove  ReturnDecision = "APPROVED"
	DecisionReject   ReturnDecision = "REJECTED"
	DecisionComplete ReturnDecision = "COMPLETED"
)

// Valid reports whether d is a recognised decision.
func (d ReturnDecision) Valid() bool {
	switch d {
	case DecisionApprove, DecisionReject, DecisionComplete:
		return true
	}
	return false
}

// Status returns the return status a decision resolves to.
func (d ReturnDecision) Status() ReturnStatus {
	return ReturnStatus(d)
}
