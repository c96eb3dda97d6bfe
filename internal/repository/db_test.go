package repository

import (
	"context"
	"testing"
	"time"

	"homewares/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	createSchema(t, pool)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the full database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price DECIMAL(10,2) NOT NULL CHECK (price >= 0),
			category TEXT NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			low_stock_threshold INTEGER NOT NULL DEFAULT 5,
			weight_kg DECIMAL(8,3) NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS customers (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			user_id UUID,
			guest_name TEXT,
			guest_email TEXT,
			guest_phone TEXT,
			status TEXT NOT NULL,
			payment_status TEXT NOT NULL,
			subtotal DECIMAL(10,2) NOT NULL,
			discount DECIMAL(10,2) NOT NULL DEFAULT 0,
			delivery_cost DECIMAL(10,2) NOT NULL DEFAULT 0,
			total DECIMAL(10,2) NOT NULL,
			delivery_location TEXT NOT NULL,
			shipping_address TEXT NOT NULL,
			promo_code TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id TEXT NOT NULL,
			variant_id UUID,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price DECIMAL(10,2) NOT NULL,
			line_total DECIMAL(10,2) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS order_status_history (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			actor TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS delivery_tracking (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			location TEXT,
			notes TEXT NOT NULL DEFAULT '',
			delivered_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS delivery_updates (
			id UUID PRIMARY KEY,
			tracking_id UUID NOT NULL REFERENCES delivery_tracking(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			location TEXT,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			method TEXT NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			status TEXT NOT NULL,
			provider_ref TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS return_requests (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS return_items (
			id UUID PRIMARY KEY,
			return_id UUID NOT NULL REFERENCES return_requests(id) ON DELETE CASCADE,
			order_item_id UUID NOT NULL REFERENCES order_items(id),
			reason TEXT NOT NULL DEFAULT '',
			condition_code TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
		CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at);
		CREATE INDEX IF NOT EXISTS idx_payments_order ON payments(order_id, created_at DESC);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// seedProducts inserts test products into the database.
func seedProducts(t *testing.T, pool *pgxpool.Pool, products []model.Product) {
	ctx := context.Background()

	query := `
		INSERT INTO products (id, name, price, category, stock, low_stock_threshold, weight_kg, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, p := range products {
		_, err := pool.Exec(ctx, query, p.ID, p.Name, p.Price, p.Category, p.Stock, p.LowStockThreshold, p.WeightKg, p.Active, p.CreatedAt)
		require.NoError(t, err)
	}
}

// testOrder builds a guest order ready for seeding.
func testOrder(status model.OrderStatus) *model.Order {
	now := time.Now()
	name := "Jo Guest"
	email := "jo@example.com"
	phone := "+64-21-555-0100"

	return &model.Order{
		ID:               uuid.New(),
		OrderNumber:      "HW-20260830-" + uuid.NewString()[:8],
		GuestName:        &name,
		GuestEmail:       &email,
		GuestPhone:       &phone,
		Status:           status,
		PaymentStatus:    model.PaymentUnpaid,
		Subtotal:         1000,
		Discount:         100,
		DeliveryCost:     200,
		Total:            1100,
		DeliveryLocation: "Wellington",
		ShippingAddress:  "1 Cuba Street, Wellington",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// seedOrder inserts an order with one item and the initial history row.
func seedOrder(t *testing.T, pool *pgxpool.Pool, order *model.Order, items []model.OrderItem) {
	t.Helper()
	ctx := context.Background()

	repo := NewOrderRepository(pool, testLogger())
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	initial := &model.StatusHistory{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Status:    string(order.Status),
		Actor:     "seed",
		CreatedAt: order.CreatedAt,
	}
	require.NoError(t, repo.Create(ctx, tx, order, items, initial))
	require.NoError(t, tx.Commit(ctx))
}
