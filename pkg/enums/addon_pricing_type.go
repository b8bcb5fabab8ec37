package enums

import "fmt"

// AddOnPricingType says whether an add-on recurs or is charged once.
type AddOnPricingType string

const (
	AddOnPricingTypeSubscription AddOnPricingType = "subscription"
	AddOnPricingTypeOneTime      AddOnPricingType = "one_time"
)

var validAddOnPricingTypes = []AddOnPricingType{
	AddOnPricingTypeSubscription,
	AddOnPricingTypeOneTime,
}

// String implements fmt.Stringer.
func (a AddOnPricingType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AddOnPricingType.
func (a AddOnPricingType) IsValid() bool {
	for _, candidate := range validAddOnPricingTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAddOnPricingType converts raw input into an AddOnPricingType.
func ParseAddOnPricingType(value string) (AddOnPricingType, error) {
	for _, candidate := range validAddOnPricingTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid add-on pricing type %q", value)
}
