package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/internal/pricing"
	"github.com/frogody/isyncso-backend/pkg/db/models"
	"github.com/frogody/isyncso-backend/pkg/enums"
	"github.com/frogody/isyncso-backend/pkg/types"
)

// ProductSummary is the list-view projection of a catalog entry.
type ProductSummary struct {
	ID               uuid.UUID           `json:"id"`
	CompanyID        uuid.UUID           `json:"company_id"`
	Type             enums.ProductType   `json:"type"`
	Status           enums.ProductStatus `json:"status"`
	Name             string              `json:"name"`
	SKU              string              `json:"sku,omitempty"`
	ShortDescription string              `json:"short_description,omitempty"`
	Price            decimal.Decimal     `json:"price"`
	CreatedAt        time.Time           `json:"created_at"`
}

// ProductDetail is the full projection used by the detail endpoint: the
// product plus its normalized pricing configuration and everything a
// selection dialog needs to decide what to offer.
type ProductDetail struct {
	ProductSummary
	PricingModel    enums.PricingModel   `json:"pricing_model,omitempty"`
	BasePrice       decimal.Decimal      `json:"base_price"`
	PricingConfig   types.PricingConfig  `json:"pricing_config"`
	AvailableModels []enums.PricingModel `json:"available_models,omitempty"`
	RequiresOptions bool                 `json:"requires_options"`
	Warnings        []string             `json:"warnings,omitempty"`
}

func toSummary(product models.Product) ProductSummary {
	summary := ProductSummary{
		ID:        product.ID,
		CompanyID: product.CompanyID,
		Type:      product.Type,
		Status:    product.Status,
		Name:      product.Name,
		Price:     product.Price,
		CreatedAt: product.CreatedAt,
	}
	if product.SKU != nil {
		summary.SKU = *product.SKU
	}
	if product.ShortDescription != nil {
		summary.ShortDescription = *product.ShortDescription
	}
	return summary
}

// toEngineInputs projects a persisted product into the engine's value types.
// A missing detail record yields zero Details, which the engine treats as a
// config with every model disabled.
func toEngineInputs(product *models.Product) (pricing.ProductInfo, pricing.Details) {
	info := pricing.ProductInfo{
		ID:    product.ID,
		Type:  product.Type,
		Name:  product.Name,
		Price: product.Price,
	}
	if product.SKU != nil {
		info.SKU = *product.SKU
	}
	if product.ShortDescription != nil {
		info.ShortDescription = *product.ShortDescription
	}

	var details pricing.Details
	switch {
	case product.Type == enums.ProductTypeDigital && product.Digital != nil:
		details.BasePrice = product.Digital.BasePrice
		details.Config = pricing.Normalize(product.Digital.PricingConfig)
	case product.Type == enums.ProductTypePhysical && product.Physical != nil:
		details.BasePrice = product.Physical.BasePrice
		details.Config = pricing.Normalize(types.PricingConfig{})
	case product.Type == enums.ProductTypeService && product.Service != nil:
		details.PricingModel = product.Service.PricingModel
		details.Config = pricing.Normalize(product.Service.PricingConfig)
	default:
		details.Config = pricing.Normalize(types.PricingConfig{})
	}
	return info, details
}
