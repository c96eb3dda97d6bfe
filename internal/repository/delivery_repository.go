package repository

import (
	"context"
	"fmt"

	"homewares/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// deliveryRepository implements the DeliveryRepository interface using
// PostgreSQL.
type deliveryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDeliveryRepository creates a new PostgreSQL-backed delivery repository.
func NewDeliveryRepository(pool *pgxpool.Pool, logger zerolog.Logger) DeliveryRepository {
	return &deliveryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "delivery").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *deliveryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// GetByOrderID retrieves the tracking record for an order.
func (r *deliveryRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.DeliveryTracking, error) {
	query := `
		SELECT id, order_id, status, location, notes, delivered_at, created_at, updated_at
		FROM delivery_tracking
		WHERE order_id = $1
	`

	var tracking model.DeliveryTracking
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&tracking.ID, &tracking.OrderID, &tracking.Status, &tracking.Location,
		&tracking.Notes, &tracking.DeliveredAt, &tracking.CreatedAt, &tracking.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query delivery tracking")
		return nil, fmt.Errorf("failed to query delivery tracking: %w", err)
	}

	return &tracking, nil
}

// Create inserts a new tracking record within the provided transaction.
func (r *deliveryRepository) Create(ctx context.Context, tx pgx.Tx, tracking *model.DeliveryTracking) error {
	query := `
		INSERT INTO delivery_tracking (id, order_id, status, location, notes, delivered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		tracking.ID, tracking.OrderID, tracking.Status, tracking.Location,
		tracking.Notes, tracking.DeliveredAt, tracking.CreatedAt, tracking.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", tracking.OrderID.String()).
			Msg("failed to create delivery tracking")
		return fmt.Errorf("failed to create delivery tracking: %w", err)
	}

	r.logger.Debug().
		Str("order_id", tracking.OrderID.String()).
		Str("status", string(tracking.Status)).
		Msg("delivery tracking created")

	return nil
}

// Update writes the mutable tracking fields within the provided transaction.
func (r *deliveryRepository) Update(ctx context.Context, tx pgx.Tx, tracking *model.DeliveryTracking) error {
	query := `
		UPDATE delivery_tracking
		SET status = $2, location = $3, notes = $4, delivered_at = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		tracking.ID, tracking.Status, tracking.Location, tracking.Notes,
		tracking.DeliveredAt, tracking.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("tracking_id", tracking.ID.String()).
			Msg("failed to update delivery tracking")
		return fmt.Errorf("failed to update delivery tracking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTrackingNotFound
	}

	return nil
}

// InsertUpdate appends a delivery log row within the provided transaction.
func (r *deliveryRepository) InsertUpdate(ctx context.Context, tx pgx.Tx, update *model.DeliveryUpdate) error {
	query := `
		INSERT INTO delivery_updates (id, tracking_id, status, location, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		update.ID, update.TrackingID, update.Status, update.Location, update.Notes, update.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("tracking_id", update.TrackingID.String()).
			Msg("failed to insert delivery update")
		return fmt.Errorf("failed to insert delivery update: %w", err)
	}

	return nil
}

// ListUpdates returns the delivery log for a tracking record, oldest first.
func (r *deliveryRepository) ListUpdates(ctx context.Context, trackingID uuid.UUID) ([]model.DeliveryUpdate, error) {
	query := `
		SELECT id, tracking_id, status, location, notes, created_at
		FROM delivery_updates
		WHERE tracking_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, trackingID)
	if err != nil {
		r.logger.Error().Err(err).Str("tracking_id", trackingID.String()).Msg("failed to query delivery updates")
		return nil, fmt.Errorf("failed to query delivery updates: %w", err)
	}
	defer rows.Close()

	var updates []model.DeliveryUpdate
	for rows.Next() {
		var u model.DeliveryUpdate
		if err := rows.Scan(&u.ID, &u.TrackingID, &u.Status, &u.Location, &u.Notes, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery update: %w", err)
		}
		updates = append(updates, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delivery updates: %w", err)
	}

	return updates, nil
}
