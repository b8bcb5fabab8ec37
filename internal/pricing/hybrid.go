package pricing

import (
	"github.com/frogody/isyncso-backend/pkg/enums"
	"github.com/frogody/isyncso-backend/pkg/types"
)

// AvailableModels computes which service models a product actually offers.
// Hybrid products test their sub-blocks in the fixed priority order; a
// concrete model is offered only when its own block is enabled. A missing
// detail record (empty PricingModel) offers nothing.
func AvailableModels(details Details) []enums.PricingModel {
	switch {
	case details.PricingModel == enums.PricingModelHybrid:
		available := []enums.PricingModel{}
		for _, model := range enums.HybridModelOrder {
			if blockEnabled(details.Config, model) {
				available = append(available, model)
			}
		}
		return available
	case details.PricingModel.IsConcrete():
		if blockEnabled(details.Config, details.PricingModel) {
			return []enums.PricingModel{details.PricingModel}
		}
		return []enums.PricingModel{}
	default:
		return []enums.PricingModel{}
	}
}

// InitialModel returns the first available model, or empty when none is
// selectable. Switching the active model is a selection change only and
// never mutates configuration.
func InitialModel(details Details) enums.PricingModel {
	available := AvailableModels(details)
	if len(available) == 0 {
		return ""
	}
	return available[0]
}

func blockEnabled(cfg types.PricingConfig, model enums.PricingModel) bool {
	switch model {
	case enums.PricingModelHourly:
		return cfg.Hourly.Enabled
	case enums.PricingModelRetainer:
		return cfg.Retainer.Enabled
	case enums.PricingModelProject:
		return cfg.Project.Enabled
	case enums.PricingModelMilestone:
		return cfg.Milestones.Enabled
	case enums.PricingModelSuccessFee:
		return cfg.SuccessFee.Enabled
	default:
		return false
	}
}
