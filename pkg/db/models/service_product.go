package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/frogody/isyncso-backend/pkg/enums"
	"github.com/frogody/isyncso-backend/pkg/types"
)

// ServiceProduct holds the service billing model and its config blocks.
// When PricingModel is hybrid, several blocks may be enabled at once.
type ServiceProduct struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     uuid.UUID           `gorm:"column:product_id;type:uuid;not null;uniqueIndex"`
	PricingModel  enums.PricingModel  `gorm:"column:pricing_model;not null"`
	PricingConfig types.PricingConfig `gorm:"column:pricing_config;type:jsonb"`
	ServiceType   *string             `gorm:"column:service_type"`
	SLA           types.JSONMap       `gorm:"column:sla;type:jsonb"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
