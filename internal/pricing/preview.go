package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/enums"
)

// Preview computes the live quote for an in-progress selection. It is built
// directly on the resolver, so for any selection the preview total equals
// UnitPrice*Quantity plus the add-on sum of the line item Resolve would
// persist.
func Preview(product ProductInfo, details Details, sel Selection) (Quote, error) {
	item, label, err := resolve(product, details, sel)
	if err != nil {
		return Quote{}, err
	}

	addOnsTotal := decimal.Zero
	for _, addOn := range item.AddOns {
		addOnsTotal = addOnsTotal.Add(addOn.UnitPrice)
	}

	quote := Quote{
		UnitPrice:      item.UnitPrice,
		Quantity:       item.Quantity,
		AddOnsTotal:    addOnsTotal,
		Total:          item.UnitPrice.Mul(item.Quantity).Add(addOnsTotal),
		Label:          label,
		IsSubscription: item.IsSubscription,
		BillingCycle:   item.BillingCycle,
		ActiveModel:    item.ServicePricingModel,
		CanConfirm:     true,
		Warnings:       ConfigWarnings(details.Config),
	}

	if product.Type == enums.ProductTypeService {
		quote.AvailableModels = AvailableModels(details)
		if len(quote.AvailableModels) == 0 {
			quote.CanConfirm = false
		}
	}

	return quote, nil
}
