package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/enums"
)

// Invoice owns its line items. Subtotal is recomputed from the line items
// inside the same transaction that mutates them.
type Invoice struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID uuid.UUID           `gorm:"column:company_id;type:uuid;not null"`
	Currency  string              `gorm:"column:currency;not null;default:EUR"`
	Status    enums.InvoiceStatus `gorm:"column:status;not null;default:draft"`
	Subtotal  decimal.Decimal     `gorm:"column:subtotal;type:numeric(14,2);not null;default:0"`
	LineItems []InvoiceLineItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
