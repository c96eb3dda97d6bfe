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

// returnRepository implements the ReturnRepository interface using
// PostgreSQL.
type returnRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReturnRepository creates a new PostgreSQL-backed return repository.
func NewReturnRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReturnRepository {
	return &returnRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "return").Logger(),
	}
}

// Create inserts a return request with its items.
func (r *returnRepository) Create(ctx context.Context, req *model.ReturnRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	requestQuery := `
		INSERT INTO return_requests (id, order_id, status, reason, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, requestQuery,
		req.ID, req.OrderID, req.Status, req.Reason, req.Description, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", req.OrderID.String()).
			Msg("failed to create return request")
		return fmt.Errorf("failed to create return request: %w", err)
	}

	itemQuery := `
		INSERT INTO return_items (id, return_id, order_item_id, reason, condition_code)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, item := range req.Items {
		batch.Queue(itemQuery, item.ID, item.ReturnID, item.OrderItemID, item.Reason, item.ConditionCode)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < len(req.Items); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			r.logger.Error().
				Err(err).
				Str("return_id", req.ID.String()).
				Msg("failed to create return item")
			return fmt.Errorf("failed to create return item: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to create return items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit return request: %w", err)
	}

	r.logger.Debug().
		Str("return_id", req.ID.String()).
		Int("item_count", len(req.Items)).
		Msg("return request created")

	return nil
}

// GetByID retrieves a return request with its items.
func (r *returnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ReturnRequest, error) {
	requestQuery := `
		SELECT id, order_id, status, reason, description, created_at, updated_at
		FROM return_requests
		WHERE id = $1
	`

	var req model.ReturnRequest
	err := r.pool.QueryRow(ctx, requestQuery, id).Scan(
		&req.ID, &req.OrderID, &req.Status, &req.Reason, &req.Description, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("return_id", id.String()).Msg("return request not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("return_id", id.String()).Msg("failed to query return request")
		return nil, fmt.Errorf("failed to query return request: %w", err)
	}

	itemsQuery := `
		SELECT id, return_id, order_item_id, reason, condition_code
		FROM return_items
		WHERE return_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("return_id", id.String()).Msg("failed to query return items")
		return nil, fmt.Errorf("failed to query return items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.ReturnItem
		if err := rows.Scan(&item.ID, &item.ReturnID, &item.OrderItemID, &item.Reason, &item.ConditionCode); err != nil {
			return nil, fmt.Errorf("failed to scan return item: %w", err)
		}
		req.Items = append(req.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating return items: %w", err)
	}

	return &req, nil
}

// UpdateStatus writes a return request's status and description.
func (r *returnRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReturnStatus, description string) error {
	query := `
		UPDATE return_requests
		SET status = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, status, description)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("return_id", id.String()).
			Str("status", string(status)).
			Msg("failed to update return status")
		return fmt.Errorf("failed to update return status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReturnNotFound
	}

	return nil
}

// ClaimApproval conditionally flips a request to APPROVED. The WHERE clause
// is the idempotency guard: once a request is APPROVED no later caller can
// claim it again, so the stock-restore cascade runs at most once.
func (r *returnRepository) ClaimApproval(ctx context.Context, id uuid.UUID, description string) (bool, error) {
	query := `
		UPDATE return_requests
		SET status = $2, description = $3, updated_at = NOW()
		WHERE id = $1 AND status <> $2
	`

	tag, err := r.pool.Exec(ctx, query, id, model.ReturnApproved, description)
	if err != nil {
		r.logger.Error().Err(err).Str("return_id", id.String()).Msg("failed to claim return approval")
		return false, fmt.Errorf("failed to claim return approval: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
