package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/enums"
	"github.com/frogody/isyncso-backend/pkg/types"
)

// ProductInfo is the catalog snapshot the engine prices against.
type ProductInfo struct {
	ID               uuid.UUID
	Type             enums.ProductType
	Name             string
	SKU              string
	ShortDescription string
	Price            decimal.Decimal
}

// Details carries the type-specific pricing record. Config must be the
// normalized form (see Normalize); a zero Details reads as a product with
// every pricing model disabled.
type Details struct {
	PricingModel enums.PricingModel
	BasePrice    decimal.Decimal
	Config       types.PricingConfig
}

// Selection is the transient user choice the engine resolves. All references
// into the config are by ID; amounts are always re-read from the config so a
// stale client price can never be billed.
type Selection struct {
	Type          enums.SelectionType
	PlanID        string
	BillingCycle  enums.BillingCycle
	OneTimeItemID string
	AddOnIDs      []string
	Service       ServiceSelection
}

// ServiceSelection narrows the choice for service products. Model may be
// empty, in which case the product's initial model applies.
type ServiceSelection struct {
	Model          enums.PricingModel
	Hours          decimal.Decimal
	ProjectItemIDs []string
	MilestoneIDs   []string
}

// LineItem is the authoritative priced record for one confirmed selection.
type LineItem struct {
	ProductID           uuid.UUID             `json:"product_id"`
	ProductType         enums.ProductType     `json:"product_type"`
	Name                string                `json:"name"`
	Description         string                `json:"description"`
	SKU                 string                `json:"sku,omitempty"`
	Quantity            decimal.Decimal       `json:"quantity"`
	UnitPrice           decimal.Decimal       `json:"unit_price"`
	IsSubscription      bool                  `json:"is_subscription"`
	PlanID              *string               `json:"plan_id,omitempty"`
	PlanName            *string               `json:"plan_name,omitempty"`
	BillingCycle        *enums.BillingCycle   `json:"billing_cycle,omitempty"`
	AddOns              []types.LineItemAddOn `json:"add_ons"`
	ServicePricingModel *enums.PricingModel   `json:"service_pricing_model,omitempty"`
	MilestoneID         *string               `json:"milestone_id,omitempty"`
	ProjectItemID       *string               `json:"project_item_id,omitempty"`
}

// Quote is the live preview for an in-progress selection. Total is always
// UnitPrice*Quantity plus the add-on sum of the line item the same selection
// would resolve to.
type Quote struct {
	UnitPrice       decimal.Decimal      `json:"unit_price"`
	Quantity        decimal.Decimal      `json:"quantity"`
	AddOnsTotal     decimal.Decimal      `json:"add_ons_total"`
	Total           decimal.Decimal      `json:"total"`
	Label           string               `json:"label"`
	IsSubscription  bool                 `json:"is_subscription"`
	BillingCycle    *enums.BillingCycle  `json:"billing_cycle,omitempty"`
	AvailableModels []enums.PricingModel `json:"available_models,omitempty"`
	ActiveModel     *enums.PricingModel  `json:"active_model,omitempty"`
	CanConfirm      bool                 `json:"can_confirm"`
	Warnings        []string             `json:"warnings,omitempty"`
}
