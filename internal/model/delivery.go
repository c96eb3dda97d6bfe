package model

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryTracking is the single tracking record an order may have. It is
// created on the first shipping-relevant event and updated thereafter.
// DeliveredAt is set exactly once, when Status first becomes DELIVERED, and
// never cleared.
type DeliveryTracking struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	OrderID     uuid.UUID      `json:"orderId" db:"order_id"`
	Status      DeliveryStatus `json:"status" db:"status"`
	Location    *string        `json:"location,omitempty" db:"location"`
	Notes       string         `json:"notes" db:"notes"`
	DeliveredAt *time.Time     `json:"deliveredAt,omitempty" db:"delivered_at"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// DeliveryUpdate is one row of the append-only delivery log. Every call to
// the tracker appends a row, including the one that creates the tracking
// record.
type DeliveryUpdate struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	TrackingID uuid.UUID      `json:"-" db:"tracking_id"`
	Status     DeliveryStatus `json:"status" db:"status"`
	Location   *string        `json:"location,omitempty" db:"location"`
	Notes      string         `json:"notes" db:"notes"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
}

// DeliveryUpsertRequest carries a delivery tracker update.
type DeliveryUpsertRequest struct {
	Status   DeliveryStatus `json:"status"`
	Location *string        `json:"location,omitempty"`
	Notes    string         `json:"notes"`
}

// ShippingLabel is the computed label artifact for an order. Generating it
// also upserts the delivery tracker to LABEL_GENERATED.
type ShippingLabel struct {
	OrderNumber    string      `json:"orderNumber"`
	TrackingNumber string      `json:"trackingNumber"`
	CustomerName   string      `json:"customerName"`
	Address        string      `json:"address"`
	Items          []LabelItem `json:"items"`
	TotalWeightKg  float64     `json:"totalWeightKg"`
	GeneratedAt    time.Time   `json:"generatedAt"`
}

// LabelItem is one order line on a shipping label.
type LabelItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	WeightKg  float64 `json:"weightKg"`
}
