package model

import (
	"time"

	"github.com/google/uuid"
)

// ReturnRequest is a customer- or admin-initiated request to reverse part or
// all of a delivered order.
type ReturnRequest struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	OrderID     uuid.UUID    `json:"orderId" db:"order_id"`
	Status      ReturnStatus `json:"status" db:"status"`
	Reason      string       `json:"reason" db:"reason"`
	Description string       `json:"description" db:"description"`
	Items       []ReturnItem `json:"items"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}

// ReturnItem references one order line being returned.
type ReturnItem struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ReturnID      uuid.UUID `json:"-" db:"return_id"`
	OrderItemID   uuid.UUID `json:"orderItemId" db:"order_item_id"`
	Reason        string    `json:"reason" db:"reason"`
	ConditionCode string    `json:"conditionCode" db:"condition_code"`
}

// ReturnCreateRequest is the payload for opening a return request.
type ReturnCreateRequest struct {
	OrderID uuid.UUID           `json:"orderId"`
	Reason  string              `json:"reason"`
	Items   []ReturnItemRequest `json:"items"`
}

// ReturnItemRequest is a single item in a return request payload.
type ReturnItemRequest struct {
	OrderItemID   uuid.UUID `json:"orderItemId"`
	Reason        string    `json:"reason"`
	ConditionCode string    `json:"conditionCode"`
}

// ReturnProcessRequest carries a processing decision for a return request.
type ReturnProcessRequest struct {
	Decision ReturnDecision `json:"decision"`
	Notes    string         `json:"notes"`
}
