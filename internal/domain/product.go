package domain

import "time"

// Product represents a stocked item. Price is held in cents.
type Product struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Quantity   int       `json:"quantity" db:"quantity"`
	PriceCents int64     `json:"price_cents" db:"price_cents"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
