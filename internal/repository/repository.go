package repository

import (
	"context"
	"time"

	"homewares/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// ValidateProductsExist checks if all provided product IDs exist in the database.
	// Returns error if any product ID does not exist.
	ValidateProductsExist(ctx context.Context, ids []string) error

	// IncrementStock atomically adds amount to a product's stock counter.
	// The increment happens in SQL so concurrent callers serialise at the
	// store level.
	IncrementStock(ctx context.Context, id string, amount int) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order, its items and the initial history row
	// within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order, items []model.OrderItem, initial *model.StatusHistory) error

	// GetByID retrieves an order by its ID along with its items.
	// Returns (nil, nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// UpdateStatus writes the current-status pointer within the provided
	// transaction.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) error

	// InsertStatusHistory appends a history row within the provided
	// transaction. History rows are never updated or deleted.
	InsertStatusHistory(ctx context.Context, tx pgx.Tx, entry *model.StatusHistory) error

	// ListStatusHistory returns an order's history, oldest first.
	ListStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusHistory, error)

	// UpdatePaymentStatus writes the order-level payment status.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error
}

// DeliveryRepository defines the interface for delivery tracking data access.
type DeliveryRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetByOrderID retrieves the tracking record for an order.
	// Returns (nil, nil) when no tracking exists yet.
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.DeliveryTracking, error)

	// Create inserts a new tracking record within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, tracking *model.DeliveryTracking) error

	// Update writes the mutable tracking fields within the provided
	// transaction. DeliveredAt is only ever written, never cleared.
	Update(ctx context.Context, tx pgx.Tx, tracking *model.DeliveryTracking) error

	// InsertUpdate appends a delivery log row within the provided
	// transaction.
	InsertUpdate(ctx context.Context, tx pgx.Tx, update *model.DeliveryUpdate) error

	// ListUpdates returns the delivery log for a tracking record, oldest
	// first.
	ListUpdates(ctx context.Context, trackingID uuid.UUID) ([]model.DeliveryUpdate, error)
}

// PaymentRepository defines the interface for payment attempt data access.
type PaymentRepository interface {
	// Create records a payment attempt.
	Create(ctx context.Context, payment *model.Payment) error

	// LatestByOrderID returns the most recent payment attempt for an order,
	// or (nil, nil) when the order has none.
	LatestByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)

	// ListByOrderID returns all payment attempts for an order, newest first.
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.Payment, error)
}

// ReturnRepository defines the interface for return request data access.
type ReturnRepository interface {
	// Create inserts a return request with its items.
	Create(ctx context.Context, req *model.ReturnRequest) error

	// GetByID retrieves a return request with its items.
	// Returns (nil, nil) when the request does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error)

	// UpdateStatus writes a return request's status and description.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReturnStatus, description string) error

	// ClaimApproval conditionally flips a request to APPROVED, guarding the
	// approval cascade: the update only applies while the current status is
	// not already APPROVED. Reports whether this caller claimed it.
	ClaimApproval(ctx context.Context, id uuid.UUID, description string) (bool, error)
}

// CustomerRepository resolves registered customers for labels and
// notifications.
type CustomerRepository interface {
	// GetByID retrieves a customer. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
}

// ReportRepository exposes the read-only aggregate queries behind the
// reporting component. Nothing here mutates order, payment or delivery data.
type ReportRepository interface {
	SalesTotals(ctx context.Context, from, to time.Time) (count int, total, average float64, err error)
	TopProductsByRevenue(ctx context.Context, from, to time.Time, limit int) ([]model.ProductSales, error)
	SalesByLocation(ctx context.Context, from, to time.Time) ([]model.LocationSales, error)

	CustomerCounts(ctx context.Context, activeSince, newSince time.Time) (total, active, recent int, err error)
	TopCustomersBySpend(ctx context.Context, limit int) ([]model.CustomerSpend, error)
	NewCustomersByDay(ctx context.Context, since time.Time) ([]model.DayCount, error)

	StockTotals(ctx context.Context) (totalStock, activeProducts int, err error)
	LowStockProducts(ctx context.Context) ([]model.Product, error)
	TopSellingProducts(ctx context.Context, limit int) ([]model.ProductSales, error)
	SlowMovingProducts(ctx context.Context, since time.Time) ([]model.Product, error)

	RevenueAndShipping(ctx context.Context, from, to time.Time) (revenue, shipping float64, err error)
	PaymentMethodBreakdown(ctx context.Context, from, to time.Time) ([]model.MethodBreakdown, error)
}
