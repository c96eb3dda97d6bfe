package model

import "time"

// Product represents a household-goods product in the catalogue. Stock is
// mutated only through atomic increments at the store level.
type Product struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Price             float64   `json:"price" db:"price"`
	Category          string    `json:"category" db:"category"`
	Stock             int       `json:"stock" db:"stock"`
	LowStockThreshold int       `json:"lowStockThreshold" db:"low_stock_threshold"`
	WeightKg          float64   `json:"weightKg" db:"weight_kg"`
	Active            bool      `json:"active" db:"active"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}
