package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/types"
)

// DigitalProduct holds the subscription/one-time/add-on pricing blocks.
type DigitalProduct struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     uuid.UUID           `gorm:"column:product_id;type:uuid;not null;uniqueIndex"`
	BasePrice     decimal.Decimal     `gorm:"column:base_price;type:numeric(12,2);not null;default:0"`
	PricingConfig types.PricingConfig `gorm:"column:pricing_config;type:jsonb"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
