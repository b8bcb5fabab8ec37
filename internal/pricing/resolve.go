package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/enums"
	pkgerrors "github.com/frogody/isyncso-backend/pkg/errors"
	"github.com/frogody/isyncso-backend/pkg/types"
)

// Resolve turns a product, its normalized pricing details and a selection
// into the authoritative line item. It is deterministic and never panics on
// structurally valid input; the only errors are selection references that do
// not exist in the config.
func Resolve(product ProductInfo, details Details, sel Selection) (LineItem, error) {
	item, _, err := resolve(product, details, sel)
	return item, err
}

// resolve is the single shared pricing path. Preview reuses it so the live
// total can never drift from what confirmation would persist.
func resolve(product ProductInfo, details Details, sel Selection) (LineItem, string, error) {
	item := LineItem{
		ProductID:   product.ID,
		ProductType: product.Type,
		Name:        product.Name,
		SKU:         product.SKU,
		Quantity:    decimal.NewFromInt(1),
		AddOns:      []types.LineItemAddOn{},
	}

	switch product.Type {
	case enums.ProductTypeService:
		label, err := resolveService(&item, details, sel.Service)
		return item, label, err
	case enums.ProductTypeDigital:
		label, err := resolveDigital(&item, product, details, sel)
		return item, label, err
	default:
		label := resolveSimple(&item, product, details)
		return item, label, nil
	}
}

func resolveService(item *LineItem, details Details, sel ServiceSelection) (string, error) {
	available := AvailableModels(details)

	model := sel.Model
	if model == "" {
		model = InitialModel(details)
	}

	// Nothing selectable: still a valid zero-priced line item. The caller
	// blocks confirmation via Quote.CanConfirm.
	if model == "" {
		item.UnitPrice = decimal.Zero
		return "No pricing available", nil
	}

	if !containsModel(available, model) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("pricing model %q is not offered by this product", model))
	}

	res, err := resolveServiceModel(model, details.Config, sel)
	if err != nil {
		return "", err
	}

	item.UnitPrice = res.UnitPrice
	item.Quantity = res.Quantity
	item.IsSubscription = res.IsSubscription
	item.BillingCycle = res.BillingCycle
	item.ServicePricingModel = &res.Model
	item.MilestoneID = res.MilestoneID
	item.ProjectItemID = res.ProjectItemID
	item.Description = fmt.Sprintf("%s - %s", item.Name, res.Detail)
	return res.Label, nil
}

func resolveDigital(item *LineItem, product ProductInfo, details Details, sel Selection) (string, error) {
	var label string

	switch sel.Type {
	case enums.SelectionTypeSubscription:
		if !details.Config.Subscriptions.Enabled {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "subscription plans are not offered for this product")
		}
		plan, err := pickPlan(details.Config.Subscriptions.Plans, sel.PlanID)
		if err != nil {
			return "", err
		}
		cycle := sel.BillingCycle
		if cycle == "" {
			cycle = enums.BillingCycleMonthly
		}
		if !cycle.IsValid() {
			return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown billing cycle %q", cycle))
		}
		amount := plan.Pricing.Monthly.Amount
		if cycle == enums.BillingCycleYearly {
			amount = plan.Pricing.Yearly.Amount
		}
		planID, planName := plan.ID, plan.Name
		item.UnitPrice = amount
		item.IsSubscription = true
		item.PlanID = &planID
		item.PlanName = &planName
		item.BillingCycle = &cycle
		item.Description = fmt.Sprintf("%s - %s (%s)", product.Name, plan.Name, cycle)
		label = fmt.Sprintf("%s (%s)", plan.Name, cycle)

	case enums.SelectionTypeOneTime:
		if !details.Config.OneTime.Enabled {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "one-time purchases are not offered for this product")
		}
		oneTime, err := pickOneTimeItem(details.Config.OneTime.Items, sel.OneTimeItemID)
		if err != nil {
			return "", err
		}
		item.UnitPrice = oneTime.Amount
		item.Description = fmt.Sprintf("%s - %s", product.Name, oneTime.Name)
		label = oneTime.Name

	default:
		label = resolveSimple(item, product, details)
	}

	if len(sel.AddOnIDs) > 0 && !details.Config.AddOns.Enabled {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "add-ons are not offered for this product")
	}
	addOns, err := pickAddOns(details.Config.AddOns.Items, sel.AddOnIDs)
	if err != nil {
		return "", err
	}
	item.AddOns = addOns
	return label, nil
}

// resolveSimple is the no-options path: flat base price, quantity 1, no
// subscription flags.
func resolveSimple(item *LineItem, product ProductInfo, details Details) string {
	price := details.BasePrice
	if price.IsZero() {
		price = product.Price
	}
	item.UnitPrice = price
	item.Description = product.ShortDescription
	return "Standard price"
}

func pickPlan(plans []types.SubscriptionPlan, planID string) (types.SubscriptionPlan, error) {
	if len(plans) == 0 {
		return types.SubscriptionPlan{}, pkgerrors.New(pkgerrors.CodeValidation, "no subscription plans configured")
	}
	if planID == "" {
		return plans[0], nil
	}
	for _, plan := range plans {
		if plan.ID == planID {
			return plan, nil
		}
	}
	return types.SubscriptionPlan{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown subscription plan %q", planID))
}

func pickOneTimeItem(items []types.OneTimeItem, itemID string) (types.OneTimeItem, error) {
	if len(items) == 0 {
		return types.OneTimeItem{}, pkgerrors.New(pkgerrors.CodeValidation, "no one-time items configured")
	}
	if itemID == "" {
		return items[0], nil
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return types.OneTimeItem{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown one-time item %q", itemID))
}

// pickAddOns maps selected add-on IDs to embedded line item entries. A
// subscription-type add-on bills its monthly amount, anything else the
// one-time amount.
func pickAddOns(items []types.AddOnItem, ids []string) ([]types.LineItemAddOn, error) {
	selected := make([]types.LineItemAddOn, 0, len(ids))
	if len(ids) == 0 {
		return selected, nil
	}

	byID := make(map[string]types.AddOnItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown add-on %q", id))
		}
		isSubscription := item.PricingType == enums.AddOnPricingTypeSubscription.String()
		price := item.Pricing.OneTime.Amount
		if isSubscription {
			price = item.Pricing.Monthly.Amount
		}
		selected = append(selected, types.LineItemAddOn{
			AddOnID:        item.ID,
			Name:           item.Name,
			UnitPrice:      price,
			IsSubscription: isSubscription,
		})
	}
	return selected, nil
}

func containsModel(models []enums.PricingModel, model enums.PricingModel) bool {
	for _, candidate := range models {
		if candidate == model {
			return true
		}
	}
	return false
}
