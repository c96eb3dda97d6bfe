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

func TestDeliveryRepository_RoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewDeliveryRepository(pool, testLogger())

	order := testOrder(model.OrderShipped)
	seedOrder(t, pool, order, []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: "prod-1", Quantity: 1, UnitPrice: 300, LineTotal: 300},
	})

	// No tracking yet.
	got, err := repo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	now := time.Now()
	location := "Auckland depot"
	tracking := &model.DeliveryTracking{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Status:    model.DeliveryShipped,
		Location:  &location,
		Notes:     "left warehouse",
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx, tracking))
	require.NoError(t, repo.InsertUpdate(ctx, tx, &model.DeliveryUpdate{
		ID:         uuid.New(),
		TrackingID: tracking.ID,
		Status:     model.DeliveryShipped,
		Location:   &location,
		Notes:      "left warehouse",
		CreatedAt:  now,
	}))
	require.NoError(t, tx.Commit(ctx))

	got, err = repo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tracking.ID, got.ID)
	assert.Equal(t, model.DeliveryShipped, got.Status)
	require.NotNil(t, got.Location)
	assert.Equal(t, location, *got.Location)
	assert.Nil(t, got.DeliveredAt)
}

func TestDeliveryRepository_UpdateWritesDeliveredAt(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewDeliveryRepository(pool, testLogger())

	order := testOrder(model.OrderDelivered)
	seedOrder(t, pool, order, []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: "prod-1", Quantity: 1, UnitPrice: 300, LineTotal: 300},
	})

	now := time.Now()
	tracking := &model.DeliveryTracking{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Status:    model.DeliveryOutForDelivery,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx, tracking))
	require.NoError(t, tx.Commit(ctx))

	deliveredAt := time.Now()
	tracking.Status = model.DeliveryDelivered
	tracking.DeliveredAt = &deliveredAt
	tracking.UpdatedAt = deliveredAt

	tx, err = repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, tx, tracking))
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryDelivered, got.Status)
	require.NotNil(t, got.DeliveredAt)
	assert.WithinDuration(t, deliveredAt, *got.DeliveredAt, time.Second)
}

func TestDeliveryRepository_ListUpdates_OldestFirst(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewDeliveryRepository(pool, testLogger())

	order := testOrder(model.OrderShipped)
	seedOrder(t, pool, order, []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: "prod-1", Quantity: 1, UnitPrice: 300, LineTotal: 300},
	})

	base := time.Now().Add(-time.Hour)
	tracking := &model.DeliveryTracking{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Status:    model.DeliveryShipped,
		CreatedAt: base,
		UpdatedAt: base,
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx, tracking))

	statuses := []model.DeliveryStatus{model.DeliveryShipped, model.DeliveryOutForDelivery, model.DeliveryDelivered}
	for i, status := range statuses {
		require.NoError(t, repo.InsertUpdate(ctx, tx, &model.DeliveryUpdate{
			ID:         uuid.New(),
			TrackingID: tracking.ID,
			Status:     status,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, tx.Commit(ctx))

	updates, err := repo.ListUpdates(ctx, tracking.ID)

	require.NoError(t, err)
	require.Len(t, updates, 3)
	assert.Equal(t, model.DeliveryShipped, updates[0].Status)
	assert.Equal(t, model.DeliveryDelivered, updates[2].Status)
}
