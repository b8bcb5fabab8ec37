package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/enums"
	"github.com/frogody/isyncso-backend/pkg/types"
)

var oneHundred = decimal.NewFromInt(100)

// Normalize returns a config with no nil slices and no negative amounts.
// All defaulting lives here; resolvers assume fully-populated blocks and
// contain no defaulting logic of their own.
func Normalize(cfg types.PricingConfig) types.PricingConfig {
	out := cfg

	if out.Subscriptions.Plans == nil {
		out.Subscriptions.Plans = []types.SubscriptionPlan{}
	}
	for i := range out.Subscriptions.Plans {
		plan := &out.Subscriptions.Plans[i]
		plan.Pricing.Monthly.Amount = nonNegative(plan.Pricing.Monthly.Amount)
		plan.Pricing.Yearly.Amount = nonNegative(plan.Pricing.Yearly.Amount)
	}

	if out.OneTime.Items == nil {
		out.OneTime.Items = []types.OneTimeItem{}
	}
	for i := range out.OneTime.Items {
		out.OneTime.Items[i].Amount = nonNegative(out.OneTime.Items[i].Amount)
	}

	if out.AddOns.Items == nil {
		out.AddOns.Items = []types.AddOnItem{}
	}
	for i := range out.AddOns.Items {
		item := &out.AddOns.Items[i]
		item.Pricing.Monthly.Amount = nonNegative(item.Pricing.Monthly.Amount)
		item.Pricing.OneTime.Amount = nonNegative(item.Pricing.OneTime.Amount)
		if _, err := enums.ParseAddOnPricingType(item.PricingType); err != nil {
			item.PricingType = enums.AddOnPricingTypeOneTime.String()
		}
	}

	out.Hourly.Rate = nonNegative(out.Hourly.Rate)
	out.Hourly.MinHours = nonNegative(out.Hourly.MinHours)
	out.Hourly.BillingIncrement = nonNegative(out.Hourly.BillingIncrement)

	out.Retainer.MonthlyFee = nonNegative(out.Retainer.MonthlyFee)
	out.Retainer.IncludedHours = nonNegative(out.Retainer.IncludedHours)
	out.Retainer.OverageRate = nonNegative(out.Retainer.OverageRate)

	if out.Project.Items == nil {
		out.Project.Items = []types.ProjectItem{}
	}
	for i := range out.Project.Items {
		out.Project.Items[i].Price = nonNegative(out.Project.Items[i].Price)
		out.Project.Items[i].EstHours = nonNegative(out.Project.Items[i].EstHours)
	}

	if out.Milestones.Items == nil {
		out.Milestones.Items = []types.MilestoneItem{}
	}
	for i := range out.Milestones.Items {
		out.Milestones.Items[i].Amount = nonNegative(out.Milestones.Items[i].Amount)
	}

	out.SuccessFee.BaseFee = nonNegative(out.SuccessFee.BaseFee)
	out.SuccessFee.SuccessPercentage = nonNegative(out.SuccessFee.SuccessPercentage)

	return out
}

// ConfigWarnings reports soft invariant violations in a config. Warnings are
// data-entry quality signals and never block resolution or confirmation.
func ConfigWarnings(cfg types.PricingConfig) []string {
	warnings := []string{}

	pctSum := decimal.Zero
	for _, item := range cfg.Milestones.Items {
		if item.IsPercentage {
			pctSum = pctSum.Add(item.Amount)
		}
	}
	if pctSum.GreaterThan(oneHundred) {
		warnings = append(warnings, fmt.Sprintf("milestone percentages sum to %s%%, exceeding 100%%", pctSum.String()))
	}

	return warnings
}

// RequiresOptions reports whether a selection dialog is needed before the
// product can be priced. Digital products need one only when subscription or
// one-time options are offered; service products always configure a model;
// physical products never do.
func RequiresOptions(productType enums.ProductType, details Details) bool {
	switch productType {
	case enums.ProductTypeDigital:
		return details.Config.Subscriptions.Enabled || details.Config.OneTime.Enabled
	case enums.ProductTypeService:
		return true
	default:
		return false
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
