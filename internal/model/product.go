package model

import (
	"encoding/json"
	"time"
)

// Product is a shop item (workshops, retreat packages, goods).  Prices are
// stored in euro cents.
type Product struct {
	ID                  uint64          `json:"id"`
	Name                string          `json:"name"`
	Slug                string          `json:"slug"`
	Description         *string         `json:"description"`
	LongDescription     *string         `json:"long_description"`
	PriceCents          int64           `json:"price_cents"`
	CompareAtPriceCents *int64          `json:"compare_at_price_cents"`
	Category            string          `json:"category"`
	StockQuantity       int             `json:"stock_quantity"`
	TrackInventory      bool            `json:"track_inventory"`
	Metadata            json.RawMessage `json:"metadata"`
	Published           bool            `json:"published"`
	Featured            bool            `json:"featured"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Service is a bookable offering shown in the booking form.
type Service struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	DurationMinutes *int      `json:"duration_minutes"`
	PriceCents      *int64    `json:"price_cents"`
	MaxGuests       int       `json:"max_guests"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}
