package service

import (
	"context"
	"time"

	"homewares/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order, items []model.OrderItem, initial *model.StatusHistory) error {
	args := m.Called(ctx, tx, order, items, initial)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	items, _ := args.Get(1).([]model.OrderItem)
	return args.Get(0).(*model.Order), items, args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) InsertStatusHistory(ctx context.Context, tx pgx.Tx, entry *model.StatusHistory) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockOrderRepository) ListStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusHistory, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusHistory), args.Error(1)
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ValidateProductsExist(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementStock(ctx context.Context, id string, amount int) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

// MockDeliveryRepository is a mock implementation of DeliveryRepository.
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeliveryRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.DeliveryTracking, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryTracking), args.Error(1)
}

func (m *MockDeliveryRepository) Create(ctx context.Context, tx pgx.Tx, tracking *model.DeliveryTracking) error {
	args := m.Called(ctx, tx, tracking)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, tx pgx.Tx, tracking *model.DeliveryTracking) error {
	args := m.Called(ctx, tx, tracking)
	return args.Error(0)
}

func (m *MockDeliveryRepository) InsertUpdate(ctx context.Context, tx pgx.Tx, update *model.DeliveryUpdate) error {
	args := m.Called(ctx, tx, update)
	return args.Error(0)
}

func (m *MockDeliveryRepository) ListUpdates(ctx context.Context, trackingID uuid.UUID) ([]model.DeliveryUpdate, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DeliveryUpdate), args.Error(1)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) LatestByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

// MockReturnRepository is a mock implementation of ReturnRepository.
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) Create(ctx context.Context, req *model.ReturnRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockReturnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReturnRequest), args.Error(1)
}

func (m *MockReturnRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReturnStatus, description string) error {
	args := m.Called(ctx, id, status, description)
	return args.Error(0)
}

func (m *MockReturnRepository) ClaimApproval(ctx context.Context, id uuid.UUID, description string) (bool, error) {
	args := m.Called(ctx, id, description)
	return args.Bool(0), args.Error(1)
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SalesTotals(ctx context.Context, from, to time.Time) (int, float64, float64, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Get(1).(float64), args.Get(2).(float64), args.Error(3)
}

func (m *MockReportRepository) TopProductsByRevenue(ctx context.Context, from, to time.Time, limit int) ([]model.ProductSales, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductSales), args.Error(1)
}

func (m *MockReportRepository) SalesByLocation(ctx context.Context, from, to time.Time) ([]model.LocationSales, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LocationSales), args.Error(1)
}

func (m *MockReportRepository) CustomerCounts(ctx context.Context, activeSince, newSince time.Time) (int, int, int, error) {
	args := m.Called(ctx, activeSince, newSince)
	return args.Int(0), args.Int(1), args.Int(2), args.Error(3)
}

func (m *MockReportRepository) TopCustomersBySpend(ctx context.Context, limit int) ([]model.CustomerSpend, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CustomerSpend), args.Error(1)
}

func (m *MockReportRepository) NewCustomersByDay(ctx context.Context, since time.Time) ([]model.DayCount, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DayCount), args.Error(1)
}

func (m *MockReportRepository) StockTotals(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockReportRepository) LowStockProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockReportRepository) TopSellingProducts(ctx context.Context, limit int) ([]model.ProductSales, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductSales), args.Error(1)
}

func (m *MockReportRepository) SlowMovingProducts(ctx context.Context, since time.Time) ([]model.Product, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockReportRepository) RevenueAndShipping(ctx context.Context, from, to time.Time) (float64, float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func (m *MockReportRepository) PaymentMethodBreakdown(ctx context.Context, from, to time.Time) ([]model.MethodBreakdown, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MethodBreakdown), args.Error(1)
}

// MockPromoValidator is a mock implementation of promo.Validator.
type MockPromoValidator struct {
	mock.Mock
}

func (m *MockPromoValidator) Validate(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockPromoValidator) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockDeliveryService is a mock implementation of DeliveryService.
type MockDeliveryService struct {
	mock.Mock
}

func (m *MockDeliveryService) UpsertStatus(ctx context.Context, orderID uuid.UUID, req *model.DeliveryUpsertRequest) (*model.DeliveryTracking, error) {
	args := m.Called(ctx, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeliveryTracking), args.Error(1)
}

func (m *MockDeliveryService) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.DeliveryTracking, []model.DeliveryUpdate, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	updates, _ := args.Get(1).([]model.DeliveryUpdate)
	return args.Get(0).(*model.DeliveryTracking), updates, args.Error(2)
}

// MockLifecycleService is a mock implementation of LifecycleService.
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) Transition(ctx context.Context, orderID uuid.UUID, req *model.TransitionRequest) (*model.TransitionResult, error) {
	args := m.Called(ctx, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransitionResult), args.Error(1)
}

func (m *MockLifecycleService) BulkTransition(ctx context.Context, req *model.BulkTransitionRequest) []model.BulkTransitionItem {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.BulkTransitionItem)
}

func (m *MockLifecycleService) AddNote(ctx context.Context, orderID uuid.UUID, notes, actor string) (*model.StatusHistory, error) {
	args := m.Called(ctx, orderID, notes, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StatusHistory), args.Error(1)
}

func (m *MockLifecycleService) GenerateShippingLabel(ctx context.Context, orderID uuid.UUID) (*model.ShippingLabel, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShippingLabel), args.Error(1)
}

func (m *MockLifecycleService) CompleteReturn(ctx context.Context, orderID uuid.UUID, notes string) (*model.TransitionResult, error) {
	args := m.Called(ctx, orderID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransitionResult), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
