package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homewares/internal/cache"
	"homewares/internal/model"
	"homewares/internal/repository"

	"github.com/rs/zerolog"
)

const (
	topListLimit   = 10
	activeWindow   = 90 * 24 * time.Hour
	newWindow      = 30 * 24 * time.Hour
	slowMoveWindow = 30 * 24 * time.Hour
	reportCacheTTL = 5 * time.Minute
)

// reportService implements ReportService. Reports are read-only aggregates;
// results are cached briefly so dashboard polling does not hammer the store.
type reportService struct {
	reportRepo repository.ReportRepository
	cache      cache.Cache
	logger     zerolog.Logger
}

// NewReportService creates the reporting service.
func NewReportService(reportRepo repository.ReportRepository, c cache.Cache, logger zerolog.Logger) ReportService {
	if c == nil {
		c = cache.NewNoop()
	}
	return &reportService{
		reportRepo: reportRepo,
		cache:      c,
		logger:     logger.With().Str("service", "report").Logger(),
	}
}

// Report dispatches on kind.
func (s *reportService) Report(ctx context.Context, kind model.ReportKind, r model.DateRange) (any, error) {
	switch kind {
	case model.ReportSales:
		return s.Sales(ctx, r)
	case model.ReportCustomers:
		return s.Customers(ctx)
	case model.ReportInventory:
		return s.Inventory(ctx)
	case model.ReportFinancial:
		return s.Financial(ctx, r)
	default:
		return nil, model.ErrInvalidReportKind
	}
}

// Sales aggregates non-cancelled order totals over the range.
func (s *reportService) Sales(ctx context.Context, r model.DateRange) (*model.SalesReport, error) {
	r = normalizeRange(r)
	key := rangeCacheKey("report:sales", r)
	var cached model.SalesReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	count, total, average, err := s.reportRepo.SalesTotals(ctx, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sales totals: %w", err)
	}

	topProducts, err := s.reportRepo.TopProductsByRevenue(ctx, r.From, r.To, topListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top products: %w", err)
	}

	byLocation, err := s.reportRepo.SalesByLocation(ctx, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sales by location: %w", err)
	}

	report := &model.SalesReport{
		Range:        r,
		OrderCount:   count,
		TotalSales:   total,
		AverageOrder: average,
		TopProducts:  topProducts,
		ByLocation:   byLocation,
	}

	s.toCache(ctx, key, report)
	return report, nil
}

// Customers snapshots the customer base. A customer is active when they
// placed an order in the last 90 days; retention is active over total and 0
// when there are no customers at all.
func (s *reportService) Customers(ctx context.Context) (*model.CustomerReport, error) {
	key := "report:customers"
	var cached model.CustomerReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	now := time.Now()
	total, active, recent, err := s.reportRepo.CustomerCounts(ctx, now.Add(-activeWindow), now.Add(-newWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to compute customer counts: %w", err)
	}

	topCustomers, err := s.reportRepo.TopCustomersBySpend(ctx, topListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top customers: %w", err)
	}

	newByDay, err := s.reportRepo.NewCustomersByDay(ctx, now.Add(-newWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to compute new customers by day: %w", err)
	}

	report := &model.CustomerReport{
		TotalCustomers:  total,
		ActiveCustomers: active,
		NewLast30Days:   recent,
		TopCustomers:    topCustomers,
		NewByDay:        newByDay,
	}
	if total > 0 {
		report.RetentionRate = float64(active) / float64(total)
	}

	s.toCache(ctx, key, report)
	return report, nil
}

// Inventory snapshots stock levels.
func (s *reportService) Inventory(ctx context.Context) (*model.InventoryReport, error) {
	key := "report:inventory"
	var cached model.InventoryReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	totalStock, activeProducts, err := s.reportRepo.StockTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stock totals: %w", err)
	}

	lowStock, err := s.reportRepo.LowStockProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}

	topSelling, err := s.reportRepo.TopSellingProducts(ctx, topListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top selling products: %w", err)
	}

	slowMoving, err := s.reportRepo.SlowMovingProducts(ctx, time.Now().Add(-slowMoveWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to list slow moving products: %w", err)
	}

	report := &model.InventoryReport{
		TotalStock:     totalStock,
		ActiveProducts: activeProducts,
		LowStock:       lowStock,
		TopSelling:     topSelling,
		SlowMoving:     slowMoving,
	}

	s.toCache(ctx, key, report)
	return report, nil
}

// Financial derives profit and margin over the range. Margin is a
// percentage, 0 when revenue is 0, never a division by zero.
func (s *reportService) Financial(ctx context.Context, r model.DateRange) (*model.FinancialReport, error) {
	r = normalizeRange(r)
	key := rangeCacheKey("report:financial", r)
	var cached model.FinancialReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	revenue, shipping, err := s.reportRepo.RevenueAndShipping(ctx, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}

	byMethod, err := s.reportRepo.PaymentMethodBreakdown(ctx, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("failed to compute payment breakdown: %w", err)
	}

	report := &model.FinancialReport{
		Range:    r,
		Revenue:  revenue,
		Expenses: shipping,
		Profit:   revenue - shipping,
		ByMethod: byMethod,
	}
	if revenue > 0 {
		report.Margin = report.Profit / report.Revenue * 100
	}

	s.toCache(ctx, key, report)
	return report, nil
}

// fromCache fills dst from the cache. Cache failures are logged and treated
// as misses.
func (s *reportService) fromCache(ctx context.Context, key string, dst any) bool {
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("report cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("report cache payload invalid")
		return false
	}
	return true
}

// toCache stores a report. Failures are logged, never surfaced.
func (s *reportService) toCache(ctx context.Context, key string, report any) {
	payload, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("report cache encode failed")
		return
	}
	if err := s.cache.Set(ctx, key, payload, reportCacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}

// normalizeRange fills an open upper bound. Range queries are half-open on
// [From, To), so a zero To would match nothing.
func normalizeRange(r model.DateRange) model.DateRange {
	if r.To.IsZero() {
		r.To = time.Now()
	}
	return r
}

func rangeCacheKey(prefix string, r model.DateRange) string {
	return fmt.Sprintf("%s:%d:%d", prefix, r.From.Unix(), r.To.Unix())
}
