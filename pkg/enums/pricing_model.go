package enums

import "fmt"

// PricingModel names one service billing strategy. Hybrid is a meta-model
// that lets several concrete models coexist on one product.
type PricingModel string

const (
	PricingModelHourly     PricingModel = "hourly"
	PricingModelRetainer   PricingModel = "retainer"
	PricingModelProject    PricingModel = "project"
	PricingModelMilestone  PricingModel = "milestone"
	PricingModelSuccessFee PricingModel = "success_fee"
	PricingModelHybrid     PricingModel = "hybrid"
)

var validPricingModels = []PricingModel{
	PricingModelHourly,
	PricingModelRetainer,
	PricingModelProject,
	PricingModelMilestone,
	PricingModelSuccessFee,
	PricingModelHybrid,
}

// HybridModelOrder is the fixed priority in which hybrid products test their
// sub-models for availability.
var HybridModelOrder = []PricingModel{
	PricingModelHourly,
	PricingModelRetainer,
	PricingModelProject,
	PricingModelMilestone,
	PricingModelSuccessFee,
}

// String implements fmt.Stringer.
func (p PricingModel) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PricingModel.
func (p PricingModel) IsValid() bool {
	for _, candidate := range validPricingModels {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsConcrete reports whether the model resolves a price on its own.
func (p PricingModel) IsConcrete() bool {
	return p.IsValid() && p != PricingModelHybrid
}

// ParsePricingModel converts raw input into a PricingModel.
func ParsePricingModel(value string) (PricingModel, error) {
	for _, candidate := range validPricingModels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing model %q", value)
}
