package enums

import "fmt"

// SelectionType is the branch the user took in the pricing dialog.
type SelectionType string

const (
	SelectionTypeSubscription SelectionType = "subscription"
	SelectionTypeOneTime      SelectionType = "one_time"
	SelectionTypeServiceModel SelectionType = "service_model"
)

var validSelectionTypes = []SelectionType{
	SelectionTypeSubscription,
	SelectionTypeOneTime,
	SelectionTypeServiceModel,
}

// String implements fmt.Stringer.
func (s SelectionType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SelectionType.
func (s SelectionType) IsValid() bool {
	for _, candidate := range validSelectionTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSelectionType converts raw input into a SelectionType.
func ParseSelectionType(value string) (SelectionType, error) {
	for _, candidate := range validSelectionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid selection type %q", value)
}
