package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/enums"
	pkgerrors "github.com/frogody/isyncso-backend/pkg/errors"
	"github.com/frogody/isyncso-backend/pkg/types"
)

// serviceResolution is the output of one model resolver: everything needed
// to populate the service fields of a line item plus the price label.
type serviceResolution struct {
	Model          enums.PricingModel
	UnitPrice      decimal.Decimal
	Quantity       decimal.Decimal
	IsSubscription bool
	BillingCycle   *enums.BillingCycle
	Label          string
	Detail         string
	MilestoneID    *string
	ProjectItemID  *string
}

func resolveServiceModel(model enums.PricingModel, cfg types.PricingConfig, sel ServiceSelection) (serviceResolution, error) {
	switch model {
	case enums.PricingModelHourly:
		return resolveHourly(cfg.Hourly, sel.Hours), nil
	case enums.PricingModelRetainer:
		return resolveRetainer(cfg.Retainer), nil
	case enums.PricingModelProject:
		return resolveProject(cfg.Project, sel.ProjectItemIDs)
	case enums.PricingModelMilestone:
		return resolveMilestones(cfg.Milestones, sel.MilestoneIDs)
	case enums.PricingModelSuccessFee:
		return resolveSuccessFee(cfg.SuccessFee), nil
	default:
		return serviceResolution{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown pricing model %q", model))
	}
}

// resolveHourly bills rate times hours. Hours default to 1 and are floored
// at the configured minimum.
func resolveHourly(block types.HourlyBlock, hours decimal.Decimal) serviceResolution {
	quantity := hours
	if quantity.LessThanOrEqual(decimal.Zero) {
		quantity = decimal.NewFromInt(1)
	}
	if block.MinHours.IsPositive() && quantity.LessThan(block.MinHours) {
		quantity = block.MinHours
	}
	return serviceResolution{
		Model:     enums.PricingModelHourly,
		UnitPrice: block.Rate,
		Quantity:  quantity,
		Label:     fmt.Sprintf("%s/hour", block.Rate.String()),
		Detail:    fmt.Sprintf("Hourly (%s hours)", quantity.String()),
	}
}

// resolveRetainer bills the flat monthly fee. Included hours and overage
// rate never enter the price.
func resolveRetainer(block types.RetainerBlock) serviceResolution {
	cycle := enums.BillingCycleMonthly
	return serviceResolution{
		Model:          enums.PricingModelRetainer,
		UnitPrice:      block.MonthlyFee,
		Quantity:       decimal.NewFromInt(1),
		IsSubscription: true,
		BillingCycle:   &cycle,
		Label:          "Monthly retainer",
		Detail:         "Monthly retainer",
	}
}

// resolveProject sums prices over the selected subset, or over all items
// when nothing was selected explicitly. The provenance ID is only set when
// exactly one item was picked.
func resolveProject(block types.ProjectBlock, selectedIDs []string) (serviceResolution, error) {
	res := serviceResolution{
		Model:    enums.PricingModelProject,
		Quantity: decimal.NewFromInt(1),
	}

	if len(selectedIDs) == 0 {
		total := decimal.Zero
		for _, item := range block.Items {
			total = total.Add(item.Price)
		}
		res.UnitPrice = total
		res.Label = "Full Project"
		res.Detail = "Full Project"
		return res, nil
	}

	selected, err := pickProjectItems(block.Items, selectedIDs)
	if err != nil {
		return serviceResolution{}, err
	}

	total := decimal.Zero
	for _, item := range selected {
		total = total.Add(item.Price)
	}
	res.UnitPrice = total
	if len(selected) == 1 {
		id := selected[0].ID
		res.ProjectItemID = &id
		res.Label = selected[0].Name
		res.Detail = selected[0].Name
	} else {
		res.Label = "Selected project items"
		res.Detail = "Selected project items"
	}
	return res, nil
}

// resolveMilestones applies the same subset-or-all rule as resolveProject,
// summing milestone amounts.
func resolveMilestones(block types.MilestonesBlock, selectedIDs []string) (serviceResolution, error) {
	res := serviceResolution{
		Model:    enums.PricingModelMilestone,
		Quantity: decimal.NewFromInt(1),
	}

	if len(selectedIDs) == 0 {
		total := decimal.Zero
		for _, item := range block.Items {
			total = total.Add(item.Amount)
		}
		res.UnitPrice = total
		res.Label = "All Milestones"
		res.Detail = "All Milestones"
		return res, nil
	}

	selected, err := pickMilestones(block.Items, selectedIDs)
	if err != nil {
		return serviceResolution{}, err
	}

	total := decimal.Zero
	for _, item := range selected {
		total = total.Add(item.Amount)
	}
	res.UnitPrice = total
	if len(selected) == 1 {
		id := selected[0].ID
		res.MilestoneID = &id
		res.Label = selected[0].Name
		res.Detail = selected[0].Name
	} else {
		res.Label = "Selected milestones"
		res.Detail = "Selected milestones"
	}
	return res, nil
}

// resolveSuccessFee bills the base fee only. The percentage is surfaced in
// the label and never multiplied into the price; no metric value exists at
// selection time.
func resolveSuccessFee(block types.SuccessFeeBlock) serviceResolution {
	label := "Base fee"
	if block.SuccessPercentage.IsPositive() {
		label = fmt.Sprintf("Base fee +%s%% success fee", block.SuccessPercentage.String())
	}
	return serviceResolution{
		Model:     enums.PricingModelSuccessFee,
		UnitPrice: block.BaseFee,
		Quantity:  decimal.NewFromInt(1),
		Label:     label,
		Detail:    label,
	}
}

func pickProjectItems(items []types.ProjectItem, ids []string) ([]types.ProjectItem, error) {
	byID := make(map[string]types.ProjectItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	selected := make([]types.ProjectItem, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown project item %q", id))
		}
		selected = append(selected, item)
	}
	return selected, nil
}

func pickMilestones(items []types.MilestoneItem, ids []string) ([]types.MilestoneItem, error) {
	byID := make(map[string]types.MilestoneItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	selected := make([]types.MilestoneItem, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown milestone %q", id))
		}
		selected = append(selected, item)
	}
	return selected, nil
}
