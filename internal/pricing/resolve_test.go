package pricing

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/pkg/enums"
	pkgerrors "github.com/frogody/isyncso-backend/pkg/errors"
	"github.com/frogody/isyncso-backend/pkg/types"
)

func serviceProduct() ProductInfo {
	return ProductInfo{ID: uuid.New(), Type: enums.ProductTypeService, Name: "Consulting"}
}

func digitalProduct() ProductInfo {
	return ProductInfo{ID: uuid.New(), Type: enums.ProductTypeDigital, Name: "Platform", SKU: "PLT-1"}
}

func TestResolveHourly(t *testing.T) {
	t.Parallel()

	details := Details{
		PricingModel: enums.PricingModelHourly,
		Config: Normalize(types.PricingConfig{Hourly: types.HourlyBlock{
			Enabled: true,
			Rate:    decimal.NewFromInt(50),
		}}),
	}

	item, err := Resolve(serviceProduct(), details, Selection{Service: ServiceSelection{Hours: decimal.NewFromInt(3)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(50)) || !item.Quantity.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected 50 x 3, got %s x %s", item.UnitPrice, item.Quantity)
	}
	if total := item.UnitPrice.Mul(item.Quantity); !total.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected total 150, got %s", total)
	}
	if item.ServicePricingModel == nil || *item.ServicePricingModel != enums.PricingModelHourly {
		t.Fatalf("expected hourly provenance, got %v", item.ServicePricingModel)
	}
}

func TestResolveHourlyDefaultsAndMinHours(t *testing.T) {
	t.Parallel()

	details := Details{
		PricingModel: enums.PricingModelHourly,
		Config: Normalize(types.PricingConfig{Hourly: types.HourlyBlock{
			Enabled:  true,
			Rate:     decimal.NewFromInt(80),
			MinHours: decimal.NewFromInt(2),
		}}),
	}

	// Unspecified hours default to 1, then get floored at the minimum.
	item, err := Resolve(serviceProduct(), details, Selection{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.Quantity.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected quantity floored at 2, got %s", item.Quantity)
	}

	item, err = Resolve(serviceProduct(), details, Selection{Service: ServiceSelection{Hours: decimal.NewFromInt(5)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.Quantity.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected quantity 5 above the minimum, got %s", item.Quantity)
	}
}

func TestResolveRetainer(t *testing.T) {
	t.Parallel()

	details := Details{
		PricingModel: enums.PricingModelRetainer,
		Config: Normalize(types.PricingConfig{Retainer: types.RetainerBlock{
			Enabled:       true,
			MonthlyFee:    decimal.NewFromInt(2500),
			IncludedHours: decimal.NewFromInt(40),
			OverageRate:   decimal.NewFromInt(90),
		}}),
	}

	item, err := Resolve(serviceProduct(), details, Selection{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected flat monthly fee 2500, got %s", item.UnitPrice)
	}
	if !item.IsSubscription {
		t.Fatal("retainer line items are subscriptions")
	}
	if item.BillingCycle == nil || *item.BillingCycle != enums.BillingCycleMonthly {
		t.Fatalf("expected monthly billing cycle, got %v", item.BillingCycle)
	}
}

func TestResolveProjectFallbackAndSingle(t *testing.T) {
	t.Parallel()

	details := Details{
		PricingModel: enums.PricingModelProject,
		Config: Normalize(types.PricingConfig{Project: types.ProjectBlock{
			Enabled: true,
			Items: []types.ProjectItem{
				{ID: "pi-1", Name: "Discovery", Price: decimal.NewFromInt(100)},
				{ID: "pi-2", Name: "Build", Price: decimal.NewFromInt(50)},
			},
		}}),
	}

	item, err := Resolve(serviceProduct(), details, Selection{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected full project sum 150, got %s", item.UnitPrice)
	}
	if item.Description != "Consulting - Full Project" {
		t.Fatalf("expected full project description, got %q", item.Description)
	}
	if item.ProjectItemID != nil {
		t.Fatal("fallback mode must not set project item provenance")
	}

	item, err = Resolve(serviceProduct(), details, Selection{Service: ServiceSelection{ProjectItemIDs: []string{"pi-1"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected selected item price 100, got %s", item.UnitPrice)
	}
	if item.ProjectItemID == nil || *item.ProjectItemID != "pi-1" {
		t.Fatalf("expected project item provenance pi-1, got %v", item.ProjectItemID)
	}
}

func TestResolveProjectMultiSelectionHasNoProvenance(t *testing.T) {
	t.Parallel()

	details := Details{
		PricingModel: enums.PricingModelProject,
		Config: Normalize(types.PricingConfig{Project: types.ProjectBlock{
			Enabled: true,
			Items: []types.ProjectItem{
				{ID: "pi-1", Name: "Discovery", Price: decimal.NewFromInt(100)},
				{ID: "pi-2", Name: "Build", Price: decimal.NewFromInt(50)},
				{ID: "pi-3", Name: "Launch", Price: decimal.NewFromInt(25)},
			},
		}}),
	}

	item, err := Resolve(serviceProduct(), details, Selection{Service: ServiceSelection{ProjectItemIDs: []string{"pi-1", "pi-3"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("expected subset sum 125, got %s", item.UnitPrice)
	}
	if item.ProjectItemID != nil {
		t.Fatal("multi selection must not set single-item provenance")
	}
}

func TestResolveMilestones(t *testing.T) {
	t.Parallel()

	details := Details{
		PricingModel: enums.PricingModelMilestone,
		Config: Normalize(types.PricingConfig{Milestones: types.MilestonesBlock{
			Enabled: true,
			Items: []types.MilestoneItem{
				{ID: "m1", Name: "Kickoff", Amount: decimal.NewFromInt(40), IsPercentage: false},
				{ID: "m2", Name: "Midway", Amount: decimal.NewFromInt(30), IsPercentage: true},
				{ID: "m3", Name: "Delivery", Amount: decimal.NewFromInt(80), IsPercentage: true},
			},
		}}),
	}

	// The fixed amount stays isolated from the percentage entries.
	item, err := Resolve(serviceProduct(), details, Selection{Service: ServiceSelection{MilestoneIDs: []string{"m1"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected fixed milestone amount 40, got %s", item.UnitPrice)
	}
	if item.MilestoneID == nil || *item.MilestoneID != "m1" {
		t.Fatalf("expected milestone provenance m1, got %v", item.MilestoneID)
	}

	item, err = Resolve(serviceProduct(), details, Selection{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Description != "Consulting - All Milestones" {
		t.Fatalf("expected all-milestones description, got %q", item.Description)
	}
	if item.MilestoneID != nil {
		t.Fatal("fallback mode must not set milestone provenance")
	}
}

func TestResolveSuccessFee(t *testing.T) {
	t.Parallel()

	details := Details{
		PricingModel: enums.PricingModelSuccessFee,
		Config: Normalize(types.PricingConfig{SuccessFee: types.SuccessFeeBlock{
			Enabled:           true,
			BaseFee:           decimal.NewFromInt(1000),
			SuccessPercentage: decimal.NewFromInt(12),
		}}),
	}

	item, err := Resolve(serviceProduct(), details, Selection{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected base fee only, got %s", item.UnitPrice)
	}
	if item.Description != "Consulting - Base fee +12% success fee" {
		t.Fatalf("expected success fee mention in description, got %q", item.Description)
	}
}

func TestResolveHybridEmpty(t *testing.T) {
	t.Parallel()

	details := Details{
		PricingModel: enums.PricingModelHybrid,
		Config:       Normalize(types.PricingConfig{}),
	}

	item, err := Resolve(serviceProduct(), details, Selection{})
	if err != nil {
		t.Fatalf("expected a valid zero line item, got error: %v", err)
	}
	if !item.UnitPrice.IsZero() {
		t.Fatalf("expected zero unit price, got %s", item.UnitPrice)
	}
	if item.ServicePricingModel != nil {
		t.Fatalf("expected no active model, got %v", item.ServicePricingModel)
	}
}

func TestResolveHybridRejectsUnofferedModel(t *testing.T) {
	t.Parallel()

	details := Details{
		PricingModel: enums.PricingModelHybrid,
		Config:       Normalize(types.PricingConfig{Hourly: types.HourlyBlock{Enabled: true, Rate: decimal.NewFromInt(50)}}),
	}

	_, err := Resolve(serviceProduct(), details, Selection{Service: ServiceSelection{Model: enums.PricingModelRetainer}})
	if err == nil {
		t.Fatal("expected error for model outside the available set")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestResolveSubscriptionCycleSwitch(t *testing.T) {
	t.Parallel()

	details := Details{Config: Normalize(types.PricingConfig{
		Subscriptions: types.SubscriptionsBlock{Enabled: true, Plans: []types.SubscriptionPlan{
			{ID: "plan-pro", Name: "Pro", Pricing: types.PlanPricing{
				Monthly: types.CyclePrice{Amount: decimal.NewFromInt(20)},
				Yearly:  types.CyclePrice{Amount: decimal.NewFromInt(200)},
			}},
		}},
	})}
	product := digitalProduct()

	monthly, err := Resolve(product, details, Selection{
		Type:         enums.SelectionTypeSubscription,
		PlanID:       "plan-pro",
		BillingCycle: enums.BillingCycleMonthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	yearly, err := Resolve(product, details, Selection{
		Type:         enums.SelectionTypeSubscription,
		PlanID:       "plan-pro",
		BillingCycle: enums.BillingCycleYearly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !monthly.UnitPrice.Equal(decimal.NewFromInt(20)) || !yearly.UnitPrice.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected 20 -> 200 on cycle switch, got %s -> %s", monthly.UnitPrice, yearly.UnitPrice)
	}
	if *monthly.BillingCycle != enums.BillingCycleMonthly || *yearly.BillingCycle != enums.BillingCycleYearly {
		t.Fatal("billing cycle must follow the selection")
	}

	// Only price, cycle and the cycle-bearing description may differ.
	monthly.UnitPrice, yearly.UnitPrice = decimal.Zero, decimal.Zero
	monthly.BillingCycle, yearly.BillingCycle = nil, nil
	monthly.Description, yearly.Description = "", ""
	if !reflect.DeepEqual(monthly, yearly) {
		t.Fatalf("unexpected field drift between cycles: %+v vs %+v", monthly, yearly)
	}
}

func TestResolveOneTimeItem(t *testing.T) {
	t.Parallel()

	details := Details{Config: Normalize(types.PricingConfig{
		OneTime: types.OneTimeBlock{Enabled: true, Items: []types.OneTimeItem{
			{ID: "ot-1", Name: "Setup", Amount: decimal.NewFromInt(499)},
		}},
	})}

	item, err := Resolve(digitalProduct(), details, Selection{Type: enums.SelectionTypeOneTime, OneTimeItemID: "ot-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(499)) {
		t.Fatalf("expected one-time amount 499, got %s", item.UnitPrice)
	}
	if item.IsSubscription || item.PlanID != nil {
		t.Fatal("one-time items carry no subscription fields")
	}
	if item.Description != "Platform - Setup" {
		t.Fatalf("unexpected description %q", item.Description)
	}
}

func TestResolveAddOnAggregation(t *testing.T) {
	t.Parallel()

	details := Details{Config: Normalize(types.PricingConfig{
		OneTime: types.OneTimeBlock{Enabled: true, Items: []types.OneTimeItem{
			{ID: "ot-1", Name: "Setup", Amount: decimal.NewFromInt(100)},
		}},
		AddOns: types.AddOnsBlock{Enabled: true, Items: []types.AddOnItem{
			{ID: "ao-1", Name: "Priority support", PricingType: "subscription", Pricing: types.AddOnPricing{
				Monthly: types.CyclePrice{Amount: decimal.NewFromInt(5)},
			}},
			{ID: "ao-2", Name: "Onboarding", PricingType: "one_time", Pricing: types.AddOnPricing{
				OneTime: types.CyclePrice{Amount: decimal.NewFromInt(15)},
			}},
		}},
	})}

	item, err := Resolve(digitalProduct(), details, Selection{
		Type:          enums.SelectionTypeOneTime,
		OneTimeItemID: "ot-1",
		AddOnIDs:      []string{"ao-1", "ao-2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(item.AddOns) != 2 {
		t.Fatalf("expected two embedded add-ons, got %d", len(item.AddOns))
	}
	if !item.AddOns[0].UnitPrice.Equal(decimal.NewFromInt(5)) || !item.AddOns[0].IsSubscription {
		t.Fatalf("expected subscription add-on at 5/mo, got %+v", item.AddOns[0])
	}
	if !item.AddOns[1].UnitPrice.Equal(decimal.NewFromInt(15)) || item.AddOns[1].IsSubscription {
		t.Fatalf("expected one-time add-on at 15, got %+v", item.AddOns[1])
	}
}

func TestResolveSimpleFallback(t *testing.T) {
	t.Parallel()

	product := digitalProduct()
	product.Price = decimal.NewFromInt(75)
	product.ShortDescription = "All-in-one platform"

	// No options offered and no base price recorded: the product price wins.
	item, err := Resolve(product, Details{Config: Normalize(types.PricingConfig{})}, Selection{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected fallback to product price 75, got %s", item.UnitPrice)
	}
	if !item.Quantity.Equal(decimal.NewFromInt(1)) || item.IsSubscription {
		t.Fatal("simple line items are quantity 1 without subscription flags")
	}
	if item.Description != "All-in-one platform" {
		t.Fatalf("unexpected description %q", item.Description)
	}

	// A recorded base price takes precedence over the product price.
	item, err = Resolve(product, Details{BasePrice: decimal.NewFromInt(60), Config: Normalize(types.PricingConfig{})}, Selection{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected base price 60, got %s", item.UnitPrice)
	}
}

func TestResolveUnknownReferences(t *testing.T) {
	t.Parallel()

	details := Details{Config: Normalize(types.PricingConfig{
		Subscriptions: types.SubscriptionsBlock{Enabled: true, Plans: []types.SubscriptionPlan{
			{ID: "plan-1", Name: "Basic"},
		}},
		AddOns: types.AddOnsBlock{Enabled: true},
	})}

	cases := []struct {
		name string
		sel  Selection
	}{
		{name: "unknown plan", sel: Selection{Type: enums.SelectionTypeSubscription, PlanID: "nope"}},
		{name: "unknown add-on", sel: Selection{Type: enums.SelectionTypeSubscription, PlanID: "plan-1", AddOnIDs: []string{"nope"}}},
		{name: "one-time without items", sel: Selection{Type: enums.SelectionTypeOneTime, OneTimeItemID: "nope"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Resolve(digitalProduct(), details, tc.sel)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("unexpected error code: %v", err)
			}
		})
	}
}

func TestResolveDisabledBlocksNotOffered(t *testing.T) {
	t.Parallel()

	// Blocks keep their configured entries but are switched off; selecting
	// into them must fail the same way an unoffered service model does.
	details := Details{Config: Normalize(types.PricingConfig{
		Subscriptions: types.SubscriptionsBlock{Enabled: false, Plans: []types.SubscriptionPlan{
			{ID: "plan-1", Name: "Pro", Pricing: types.PlanPricing{
				Monthly: types.CyclePrice{Amount: decimal.NewFromInt(20)},
			}},
		}},
		OneTime: types.OneTimeBlock{Enabled: false, Items: []types.OneTimeItem{
			{ID: "ot-1", Name: "Setup", Amount: decimal.NewFromInt(100)},
		}},
		AddOns: types.AddOnsBlock{Enabled: false, Items: []types.AddOnItem{
			{ID: "ao-1", Name: "Support", PricingType: "one_time", Pricing: types.AddOnPricing{
				OneTime: types.CyclePrice{Amount: decimal.NewFromInt(15)},
			}},
		}},
	})}

	cases := []struct {
		name string
		sel  Selection
	}{
		{name: "disabled subscriptions", sel: Selection{Type: enums.SelectionTypeSubscription, PlanID: "plan-1"}},
		{name: "disabled one-time", sel: Selection{Type: enums.SelectionTypeOneTime, OneTimeItemID: "ot-1"}},
		{name: "disabled add-ons", sel: Selection{AddOnIDs: []string{"ao-1"}}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Resolve(digitalProduct(), details, tc.sel)
			if err == nil {
				t.Fatal("expected disabled block to be rejected")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("unexpected error code: %v", err)
			}
		})
	}

	// The simple fallback stays reachable when no disabled block is selected.
	item, err := Resolve(digitalProduct(), details, Selection{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(item.AddOns) != 0 {
		t.Fatalf("expected no add-ons embedded, got %d", len(item.AddOns))
	}
}

func TestResolveDeterminism(t *testing.T) {
	t.Parallel()

	details := Details{
		PricingModel: enums.PricingModelHybrid,
		Config: Normalize(types.PricingConfig{
			Hourly:  types.HourlyBlock{Enabled: true, Rate: decimal.NewFromInt(120), MinHours: decimal.NewFromInt(2)},
			Project: types.ProjectBlock{Enabled: true, Items: []types.ProjectItem{{ID: "pi-1", Name: "Phase 1", Price: decimal.NewFromInt(900)}}},
		}),
	}
	product := serviceProduct()
	sel := Selection{Service: ServiceSelection{Model: enums.PricingModelProject, ProjectItemIDs: []string{"pi-1"}}}

	first, err := Resolve(product, details, sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Resolve(product, details, sel)
		if err != nil {
			t.Fatalf("unexpected error on repeat %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("resolution drifted on repeat %d: %+v vs %+v", i, first, again)
		}
	}
}
