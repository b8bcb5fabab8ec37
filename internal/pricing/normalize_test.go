package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/enums"
	"github.com/frogody/isyncso-backend/pkg/types"
)

func TestNormalizeFillsSlicesAndClampsNegatives(t *testing.T) {
	t.Parallel()

	cfg := Normalize(types.PricingConfig{
		Hourly: types.HourlyBlock{Enabled: true, Rate: decimal.NewFromInt(-10), MinHours: decimal.NewFromInt(-2)},
		Subscriptions: types.SubscriptionsBlock{Enabled: true, Plans: []types.SubscriptionPlan{
			{ID: "p1", Name: "Basic", Pricing: types.PlanPricing{
				Monthly: types.CyclePrice{Amount: decimal.NewFromInt(-5)},
				Yearly:  types.CyclePrice{Amount: decimal.NewFromInt(50)},
			}},
		}},
	})

	if cfg.OneTime.Items == nil || cfg.AddOns.Items == nil || cfg.Project.Items == nil || cfg.Milestones.Items == nil {
		t.Fatal("expected nil item slices to be replaced with empty slices")
	}
	if !cfg.Hourly.Rate.IsZero() || !cfg.Hourly.MinHours.IsZero() {
		t.Fatalf("expected negative hourly fields clamped to zero, got rate=%s min=%s", cfg.Hourly.Rate, cfg.Hourly.MinHours)
	}
	if !cfg.Subscriptions.Plans[0].Pricing.Monthly.Amount.IsZero() {
		t.Fatal("expected negative plan amount clamped to zero")
	}
	if !cfg.Subscriptions.Plans[0].Pricing.Yearly.Amount.Equal(decimal.NewFromInt(50)) {
		t.Fatal("expected positive plan amount untouched")
	}
}

func TestNormalizeDefaultsUnknownAddOnPricingType(t *testing.T) {
	t.Parallel()

	cfg := Normalize(types.PricingConfig{
		AddOns: types.AddOnsBlock{Enabled: true, Items: []types.AddOnItem{
			{ID: "a1", Name: "Support", PricingType: "weird"},
		}},
	})

	if got := cfg.AddOns.Items[0].PricingType; got != enums.AddOnPricingTypeOneTime.String() {
		t.Fatalf("expected unknown pricing type defaulted to one_time, got %q", got)
	}
}

func TestConfigWarningsMilestonePercentages(t *testing.T) {
	t.Parallel()

	cfg := types.PricingConfig{Milestones: types.MilestonesBlock{Enabled: true, Items: []types.MilestoneItem{
		{ID: "m1", Amount: decimal.NewFromInt(40), IsPercentage: false},
		{ID: "m2", Amount: decimal.NewFromInt(30), IsPercentage: true},
		{ID: "m3", Amount: decimal.NewFromInt(80), IsPercentage: true},
	}}}

	warnings := ConfigWarnings(cfg)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning for 110%% milestone sum, got %v", warnings)
	}

	cfg.Milestones.Items[2].Amount = decimal.NewFromInt(70)
	if warnings := ConfigWarnings(cfg); len(warnings) != 0 {
		t.Fatalf("expected no warning at exactly 100%%, got %v", warnings)
	}
}

func TestRequiresOptions(t *testing.T) {
	t.Parallel()

	digitalWithOptions := Details{Config: Normalize(types.PricingConfig{
		OneTime: types.OneTimeBlock{Enabled: true},
	})}
	if !RequiresOptions(enums.ProductTypeDigital, digitalWithOptions) {
		t.Fatal("digital product with one-time options should require the dialog")
	}

	if RequiresOptions(enums.ProductTypeDigital, Details{}) {
		t.Fatal("digital product without options should bypass the dialog")
	}
	if !RequiresOptions(enums.ProductTypeService, Details{}) {
		t.Fatal("service products always configure a model")
	}
	if RequiresOptions(enums.ProductTypePhysical, Details{}) {
		t.Fatal("physical products never require options")
	}
}
