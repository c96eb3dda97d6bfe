package repository

import (
	"context"
	"fmt"
	"time"

	"homewares/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reportRepository implements the ReportRepository interface using
// PostgreSQL. All queries are read-only aggregates; CANCELLED orders are
// excluded wherever order totals are summed.
type reportRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReportRepository creates a new PostgreSQL-backed report repository.
func NewReportRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "report").Logger(),
	}
}

// SalesTotals returns count, sum and average of non-cancelled order totals in
// the range.
func (r *reportRepository) SalesTotals(ctx context.Context, from, to time.Time) (int, float64, float64, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(AVG(total), 0)
		FROM orders
		WHERE status <> 'CANCELLED'
		  AND created_at >= $1 AND created_at < $2
	`

	var count int
	var total, average float64
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&count, &total, &average); err != nil {
		r.logger.Error().Err(err).Msg("failed to query sales totals")
		return 0, 0, 0, fmt.Errorf("failed to query sales totals: %w", err)
	}

	return count, total, average, nil
}

// TopProductsByRevenue returns the best products by summed line-item total.
func (r *reportRepository) TopProductsByRevenue(ctx context.Context, from, to time.Time, limit int) ([]model.ProductSales, error) {
	query := `
		SELECT oi.product_id, p.name, SUM(oi.quantity), SUM(oi.line_total)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status <> 'CANCELLED'
		  AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY oi.product_id, p.name
		ORDER BY SUM(oi.line_total) DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query top products")
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var out []model.ProductSales
	for rows.Next() {
		var ps model.ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.Name, &ps.Quantity, &ps.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan product sales: %w", err)
		}
		out = append(out, ps)
	}

	return out, rows.Err()
}

// SalesByLocation groups non-cancelled order totals by delivery location.
func (r *reportRepository) SalesByLocation(ctx context.Context, from, to time.Time) ([]model.LocationSales, error) {
	query := `
		SELECT delivery_location, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE status <> 'CANCELLED'
		  AND created_at >= $1 AND created_at < $2
		GROUP BY delivery_location
		ORDER BY SUM(total) DESC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query sales by location")
		return nil, fmt.Errorf("failed to query sales by location: %w", err)
	}
	defer rows.Close()

	var out []model.LocationSales
	for rows.Next() {
		var ls model.LocationSales
		if err := rows.Scan(&ls.Location, &ls.OrderCount, &ls.Total); err != nil {
			return nil, fmt.Errorf("failed to scan location sales: %w", err)
		}
		out = append(out, ls)
	}

	return out, rows.Err()
}

// CustomerCounts returns total customers, customers with an order since
// activeSince, and customers created since newSince.
func (r *reportRepository) CustomerCounts(ctx context.Context, activeSince, newSince time.Time) (int, int, int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(DISTINCT user_id) FROM orders WHERE user_id IS NOT NULL AND created_at >= $1),
			(SELECT COUNT(*) FROM customers WHERE created_at >= $2)
	`

	var total, active, recent int
	if err := r.pool.QueryRow(ctx, query, activeSince, newSince).Scan(&total, &active, &recent); err != nil {
		r.logger.Error().Err(err).Msg("failed to query customer counts")
		return 0, 0, 0, fmt.Errorf("failed to query customer counts: %w", err)
	}

	return total, active, recent, nil
}

// TopCustomersBySpend returns the top customers by lifetime spend on
// non-cancelled orders.
func (r *reportRepository) TopCustomersBySpend(ctx context.Context, limit int) ([]model.CustomerSpend, error) {
	query := `
		SELECT c.id, c.name, COUNT(o.id), COALESCE(SUM(o.total), 0)
		FROM customers c
		JOIN orders o ON o.user_id = c.id
		WHERE o.status <> 'CANCELLED'
		GROUP BY c.id, c.name
		ORDER BY SUM(o.total) DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query top customers")
		return nil, fmt.Errorf("failed to query top customers: %w", err)
	}
	defer rows.Close()

	var out []model.CustomerSpend
	for rows.Next() {
		var cs model.CustomerSpend
		if err := rows.Scan(&cs.CustomerID, &cs.Name, &cs.OrderCount, &cs.Spend); err != nil {
			return nil, fmt.Errorf("failed to scan customer spend: %w", err)
		}
		out = append(out, cs)
	}

	return out, rows.Err()
}

// NewCustomersByDay buckets new-customer counts by day since the given time.
func (r *reportRepository) NewCustomersByDay(ctx context.Context, since time.Time) ([]model.DayCount, error) {
	query := `
		SELECT date_trunc('day', created_at) AS day, COUNT(*)
		FROM customers
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query new customers by day")
		return nil, fmt.Errorf("failed to query new customers by day: %w", err)
	}
	defer rows.Close()

	var out []model.DayCount
	for rows.Next() {
		var dc model.DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan day count: %w", err)
		}
		out = append(out, dc)
	}

	return out, rows.Err()
}

// StockTotals returns aggregate stock and the count of active products.
func (r *reportRepository) StockTotals(ctx context.Context) (int, int, error) {
	query := `
		SELECT COALESCE(SUM(stock), 0), COUNT(*)
		FROM products
		WHERE active
	`

	var totalStock, activeProducts int
	if err := r.pool.QueryRow(ctx, query).Scan(&totalStock, &activeProducts); err != nil {
		r.logger.Error().Err(err).Msg("failed to query stock totals")
		return 0, 0, fmt.Errorf("failed to query stock totals: %w", err)
	}

	return totalStock, activeProducts, nil
}

// LowStockProducts returns active products at or below their own threshold.
func (r *reportRepository) LowStockProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, price, category, stock, low_stock_threshold, weight_kg, active, created_at
		FROM products
		WHERE active AND stock <= low_stock_threshold
		ORDER BY stock
	`

	return r.queryProducts(ctx, query)
}

// TopSellingProducts returns the best products by summed quantity across
// non-cancelled orders.
func (r *reportRepository) TopSellingProducts(ctx context.Context, limit int) ([]model.ProductSales, error) {
	query := `
		SELECT oi.product_id, p.name, SUM(oi.quantity), SUM(oi.line_total)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status <> 'CANCELLED'
		GROUP BY oi.product_id, p.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query top selling products")
		return nil, fmt.Errorf("failed to query top selling products: %w", err)
	}
	defer rows.Close()

	var out []model.ProductSales
	for rows.Next() {
		var ps model.ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.Name, &ps.Quantity, &ps.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan product sales: %w", err)
		}
		out = append(out, ps)
	}

	return out, rows.Err()
}

// SlowMovingProducts returns active products with no order lines since the
// given time.
func (r *reportRepository) SlowMovingProducts(ctx context.Context, since time.Time) ([]model.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.category, p.stock, p.low_stock_threshold, p.weight_kg, p.active, p.created_at
		FROM products p
		WHERE p.active
		  AND NOT EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE oi.product_id = p.id AND o.created_at >= $1
		  )
		ORDER BY p.name
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query slow moving products")
		return nil, fmt.Errorf("failed to query slow moving products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// RevenueAndShipping sums non-cancelled order totals and shipping costs in
// the range.
func (r *reportRepository) RevenueAndShipping(ctx context.Context, from, to time.Time) (float64, float64, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(delivery_cost), 0)
		FROM orders
		WHERE status <> 'CANCELLED'
		  AND created_at >= $1 AND created_at < $2
	`

	var revenue, shipping float64
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&revenue, &shipping); err != nil {
		r.logger.Error().Err(err).Msg("failed to query revenue and shipping")
		return 0, 0, fmt.Errorf("failed to query revenue and shipping: %w", err)
	}

	return revenue, shipping, nil
}

// PaymentMethodBreakdown groups completed payments in the range by method.
func (r *reportRepository) PaymentMethodBreakdown(ctx context.Context, from, to time.Time) ([]model.MethodBreakdown, error) {
	query := `
		SELECT method, COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments
		WHERE status = 'COMPLETED'
		  AND created_at >= $1 AND created_at < $2
		GROUP BY method
		ORDER BY SUM(amount) DESC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query payment method breakdown")
		return nil, fmt.Errorf("failed to query payment method breakdown: %w", err)
	}
	defer rows.Close()

	var out []model.MethodBreakdown
	for rows.Next() {
		var mb model.MethodBreakdown
		if err := rows.Scan(&mb.Method, &mb.Count, &mb.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan method breakdown: %w", err)
		}
		out = append(out, mb)
	}

	return out, rows.Err()
}

func (r *reportRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	var out []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Category, &p.Stock,
			&p.LowStockThreshold, &p.WeightKg, &p.Active, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, p)
	}

	return out, rows.Err()
}
