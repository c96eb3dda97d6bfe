package repository

import (
	"context"
	"testing"
	"time"

	"homewares/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_CreateAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewOrderRepository(pool, testLogger())

	order := testOrder(model.OrderPending)
	items := []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: "prod-1", Quantity: 2, UnitPrice: 300, LineTotal: 600},
		{ID: uuid.New(), OrderID: order.ID, ProductID: "prod-2", Quantity: 1, UnitPrice: 400, LineTotal: 400},
	}
	seedOrder(t, pool, order, items)

	got, gotItems, err := repo.GetByID(ctx, order.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, order.OrderNumber, got.OrderNumber)
	assert.Equal(t, model.OrderPending, got.Status)
	assert.Equal(t, model.PaymentUnpaid, got.PaymentStatus)
	assert.Equal(t, 1100.0, got.Total)
	require.NotNil(t, got.GuestEmail)
	assert.Equal(t, "jo@example.com", *got.GuestEmail)
	assert.Len(t, gotItems, 2)

	// The create wrote the initial history row.
	history, err := repo.ListStatusHistory(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, string(model.OrderPending), history[0].Status)
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, testLogger())

	order, items, err := repo.GetByID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Nil(t, items)
}

func TestOrderRepository_UpdateStatusAndHistory(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewOrderRepository(pool, testLogger())

	order := testOrder(model.OrderPending)
	seedOrder(t, pool, order, []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: "prod-1", Quantity: 1, UnitPrice: 300, LineTotal: 300},
	})

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, tx, order.ID, model.OrderConfirmed))
	require.NoError(t, repo.InsertStatusHistory(ctx, tx, &model.StatusHistory{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Status:    string(model.OrderConfirmed),
		Notes:     "payment checked",
		Actor:     "ops",
		CreatedAt: time.Now(),
	}))
	require.NoError(t, tx.Commit(ctx))

	got, _, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderConfirmed, got.Status)

	history, err := repo.ListStatusHistory(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Oldest first.
	assert.Equal(t, string(model.OrderPending), history[0].Status)
	assert.Equal(t, string(model.OrderConfirmed), history[1].Status)
	assert.Equal(t, "ops", history[1].Actor)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewOrderRepository(pool, testLogger())

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = repo.UpdateStatus(ctx, tx, uuid.New(), model.OrderConfirmed)

	assert.Equal(t, model.ErrOrderNotFound, err)
}

func TestOrderRepository_UpdatePaymentStatus(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewOrderRepository(pool, testLogger())

	order := testOrder(model.OrderPending)
	seedOrder(t, pool, order, []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: "prod-1", Quantity: 1, UnitPrice: 300, LineTotal: 300},
	})

	require.NoError(t, repo.UpdatePaymentStatus(ctx, order.ID, model.PaymentPaid))

	got, _, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, got.PaymentStatus)

	err = repo.UpdatePaymentStatus(ctx, uuid.New(), model.PaymentPaid)
	assert.Equal(t, model.ErrOrderNotFound, err)
}

func TestOrderRepository_CreateRollback(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewOrderRepository(pool, testLogger())

	order := testOrder(model.OrderPending)
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	initial := &model.StatusHistory{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Status:    string(model.OrderPending),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, tx, order, nil, initial))
	require.NoError(t, tx.Rollback(ctx))

	got, _, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
