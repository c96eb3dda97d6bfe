package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportKind selects one of the four read-only reports.
type ReportKind string

const (
	ReportSales     ReportKind = "sales"
	ReportCustomers ReportKind = "customers"
	ReportInventory ReportKind = "inventory"
	ReportFinancial ReportKind = "financial"
)

// Valid reports whether k is a recognised report kind.
func (k ReportKind) Valid() bool {
	switch k {
	case ReportSales, ReportCustomers, ReportInventory, ReportFinancial:
		return true
	}
	return false
}

// DateRange bounds the sales and financial reports. Zero values mean
// unbounded on that side.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SalesReport aggregates order totals over a range, excluding CANCELLED
// orders.
type SalesReport struct {
	Range        DateRange       `json:"range"`
	OrderCount   int             `json:"orderCount"`
	TotalSales   float64         `json:"totalSales"`
	AverageOrder float64         `json:"averageOrder"`
	TopProducts  []ProductSales  `json:"topProducts"`
	ByLocation   []LocationSales `json:"byLocation"`
}

// ProductSales is one product's contribution to sales.
type ProductSales struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// LocationSales groups order totals by delivery location.
type LocationSales struct {
	Location   string  `json:"location"`
	OrderCount int     `json:"orderCount"`
	Total      float64 `json:"total"`
}

// CustomerReport is a point-in-time snapshot of the customer base.
type CustomerReport struct {
	TotalCustomers  int             `json:"totalCustomers"`
	ActiveCustomers int             `json:"activeCustomers"`
	NewLast30Days   int             `json:"newLast30Days"`
	TopCustomers    []CustomerSpend `json:"topCustomers"`
	NewByDay        []DayCount      `json:"newByDay"`
	RetentionRate   float64         `json:"retentionRate"`
}

// CustomerSpend is one customer's lifetime spend.
type CustomerSpend struct {
	CustomerID uuid.UUID `json:"customerId"`
	Name       string    `json:"name"`
	OrderCount int       `json:"orderCount"`
	Spend      float64   `json:"spend"`
}

// DayCount is a day-bucketed count.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// InventoryReport is a point-in-time snapshot of stock.
type InventoryReport struct {
	TotalStock     int            `json:"totalStock"`
	ActiveProducts int            `json:"activeProducts"`
	LowStock       []Product      `json:"lowStock"`
	TopSelling     []ProductSales `json:"topSelling"`
	SlowMoving     []Product      `json:"slowMoving"`
}

// FinancialReport derives profit and margin from order totals and shipping
// costs over a range. Margin is a percentage of revenue, 0 when revenue is 0.
type FinancialReport struct {
	Range    DateRange         `json:"range"`
	Revenue  float64           `json:"revenue"`
	Expenses float64           `json:"expenses"`
	Profit   float64           `json:"profit"`
	Margin   float64           `json:"margin"`
	ByMethod []MethodBreakdown `json:"byMethod"`
}

// MethodBreakdown groups completed payments by method.
type MethodBreakdown struct {
	Method PaymentMethod `json:"method"`
	Count  int           `json:"count"`
	Amount float64       `json:"amount"`
}
