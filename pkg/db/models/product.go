package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/enums"
)

// Product is the canonical catalog entry. Pricing details live on the
// type-specific record (DigitalProduct, PhysicalProduct or ServiceProduct);
// Price is the flat fallback used when no detail record exists.
type Product struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID        uuid.UUID           `gorm:"column:company_id;type:uuid;not null"`
	Type             enums.ProductType   `gorm:"column:type;not null"`
	Status           enums.ProductStatus `gorm:"column:status;not null;default:draft"`
	Name             string              `gorm:"column:name;not null"`
	SKU              *string             `gorm:"column:sku"`
	ShortDescription *string             `gorm:"column:short_description"`
	Price            decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	Digital          *DigitalProduct     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Physical         *PhysicalProduct    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Service          *ServiceProduct     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
