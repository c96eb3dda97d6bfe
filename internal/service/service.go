package service

import (
	"context"

	"homewares/internal/model"

	"github.com/google/uuid"
)

// OrderService defines the order store's write and read path.
type OrderService interface {
	// Create creates a new order with items, computed totals and the
	// initial PENDING history row.
	Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order with its items. Returns (nil, nil) when
	// absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// History returns an order's status history, oldest first.
	History(ctx context.Context, id uuid.UUID) ([]model.StatusHistory, error)
}

// LifecycleService is the order state machine: it validates transitions,
// writes status and history atomically, cascades into delivery tracking for
// shipping-relevant statuses and emits notification events.
type LifecycleService interface {
	// Transition moves an order to a new status.
	Transition(ctx context.Context, orderID uuid.UUID, req *model.TransitionRequest) (*model.TransitionResult, error)

	// BulkTransition applies Transition to each order sequentially. One
	// failure never aborts the remaining orders; callers get a per-order
	// result list.
	BulkTransition(ctx context.Context, req *model.BulkTransitionRequest) []model.BulkTransitionItem

	// AddNote appends a NOTE history row without changing the order status.
	AddNote(ctx context.Context, orderID uuid.UUID, notes, actor string) (*model.StatusHistory, error)

	// GenerateShippingLabel computes the label artifact for an order and
	// upserts its delivery tracking to LABEL_GENERATED.
	GenerateShippingLabel(ctx context.Context, orderID uuid.UUID) (*model.ShippingLabel, error)

	// CompleteReturn forces an order to RETURNED. Only the returns
	// processor calls this; the public Transition path rejects RETURNED.
	CompleteReturn(ctx context.Context, orderID uuid.UUID, notes string) (*model.TransitionResult, error)
}

// DeliveryService maintains delivery tracking state and its append-only log.
type DeliveryService interface {
	// UpsertStatus creates or updates the tracking record for an order and
	// always appends a DeliveryUpdate row.
	UpsertStatus(ctx context.Context, orderID uuid.UUID, req *model.DeliveryUpsertRequest) (*model.DeliveryTracking, error)

	// GetByOrderID returns the tracking record and its log.
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.DeliveryTracking, []model.DeliveryUpdate, error)
}

// PaymentService reconciles externally-reported payments against orders.
type PaymentService interface {
	// Verify checks the most recent payment attempt for the order and flips
	// the order to PAID when it is COMPLETED. A missing or non-completed
	// payment reports verified=false without mutating the order.
	Verify(ctx context.Context, orderID uuid.UUID) (*model.VerifyResult, error)
}

// ReturnsService validates and transitions return requests.
type ReturnsService interface {
	// Create opens a return request against a delivered order.
	Create(ctx context.Context, req *model.ReturnCreateRequest) (*model.ReturnRequest, error)

	// Process applies a decision. Approval transitions the parent order to
	// RETURNED and restores stock per returned item, exactly once.
	Process(ctx context.Context, returnID uuid.UUID, req *model.ReturnProcessRequest) (*model.ReturnRequest, error)
}

// ReportService computes the four read-only reports.
type ReportService interface {
	Sales(ctx context.Context, r model.DateRange) (*model.SalesReport, error)
	Customers(ctx context.Context) (*model.CustomerReport, error)
	Inventory(ctx context.Context) (*model.InventoryReport, error)
	Financial(ctx context.Context, r model.DateRange) (*model.FinancialReport, error)

	// Report dispatches on kind. The range is ignored for the snapshot
	// reports.
	Report(ctx context.Context, kind model.ReportKind, r model.DateRange) (any, error)
}
