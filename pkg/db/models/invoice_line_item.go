package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/enums"
	"github.com/frogody/isyncso-backend/pkg/types"
)

// InvoiceLineItem is one confirmed product selection, immutable once written.
// Quantity is numeric because hourly work may bill fractional hours.
type InvoiceLineItem struct {
	ID                  uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceID           uuid.UUID            `gorm:"column:invoice_id;type:uuid;not null;index"`
	ProductID           uuid.UUID            `gorm:"column:product_id;type:uuid;not null"`
	ProductType         enums.ProductType    `gorm:"column:product_type;not null"`
	Name                string               `gorm:"column:name;not null"`
	Description         string               `gorm:"column:description;not null;default:''"`
	SKU                 *string              `gorm:"column:sku"`
	Quantity            decimal.Decimal      `gorm:"column:quantity;type:numeric(10,2);not null;default:1"`
	UnitPrice           decimal.Decimal      `gorm:"column:unit_price;type:numeric(12,2);not null;default:0"`
	IsSubscription      bool                 `gorm:"column:is_subscription;not null;default:false"`
	PlanID              *string              `gorm:"column:plan_id"`
	PlanName            *string              `gorm:"column:plan_name"`
	BillingCycle        *enums.BillingCycle  `gorm:"column:billing_cycle"`
	AddOns              types.LineItemAddOns `gorm:"column:add_ons;type:jsonb"`
	ServicePricingModel *enums.PricingModel  `gorm:"column:service_pricing_model"`
	MilestoneID         *string              `gorm:"column:milestone_id"`
	ProjectItemID       *string              `gorm:"column:project_item_id"`
	CreatedAt           time.Time            `gorm:"column:created_at;autoCreateTime"`
}
