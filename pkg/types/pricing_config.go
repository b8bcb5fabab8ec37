package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PricingConfig is the per-product pricing configuration persisted as JSONB.
// Each block is independently enabled. An absent block unmarshals to its zero
// value, which reads as disabled, so a missing or empty column behaves the
// same as a config with every model switched off.
type PricingConfig struct {
	Subscriptions SubscriptionsBlock `json:"subscriptions,omitempty"`
	OneTime       OneTimeBlock       `json:"one_time,omitempty"`
	AddOns        AddOnsBlock        `json:"add_ons,omitempty"`
	Hourly        HourlyBlock        `json:"hourly,omitempty"`
	Retainer      RetainerBlock      `json:"retainer,omitempty"`
	Project       ProjectBlock       `json:"project,omitempty"`
	Milestones    MilestonesBlock    `json:"milestones,omitempty"`
	SuccessFee    SuccessFeeBlock    `json:"success_fee,omitempty"`
}

// SubscriptionsBlock offers recurring plans with per-cycle amounts.
type SubscriptionsBlock struct {
	Enabled bool               `json:"enabled"`
	Plans   []SubscriptionPlan `json:"plans,omitempty"`
}

type SubscriptionPlan struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	IsPopular bool        `json:"is_popular,omitempty"`
	Pricing   PlanPricing `json:"pricing"`
}

type PlanPricing struct {
	Monthly CyclePrice `json:"monthly"`
	Yearly  CyclePrice `json:"yearly"`
}

type CyclePrice struct {
	Amount decimal.Decimal `json:"amount"`
}

// OneTimeBlock offers single-purchase items.
type OneTimeBlock struct {
	Enabled bool          `json:"enabled"`
	Items   []OneTimeItem `json:"items,omitempty"`
}

type OneTimeItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// AddOnsBlock offers optional supplements attached to the parent line item.
type AddOnsBlock struct {
	Enabled bool        `json:"enabled"`
	Items   []AddOnItem `json:"items,omitempty"`
}

type AddOnItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	PricingType string       `json:"pricing_type"`
	Pricing     AddOnPricing `json:"pricing"`
}

type AddOnPricing struct {
	Monthly CyclePrice `json:"monthly,omitempty"`
	OneTime CyclePrice `json:"one_time,omitempty"`
}

// HourlyBlock bills rate times hours.
type HourlyBlock struct {
	Enabled          bool            `json:"enabled"`
	Rate             decimal.Decimal `json:"rate"`
	MinHours         decimal.Decimal `json:"min_hours"`
	BillingIncrement decimal.Decimal `json:"billing_increment,omitempty"`
}

// RetainerBlock bills a flat monthly fee. IncludedHours and OverageRate are
// informational and never enter the price.
type RetainerBlock struct {
	Enabled       bool            `json:"enabled"`
	MonthlyFee    decimal.Decimal `json:"monthly_fee"`
	IncludedHours decimal.Decimal `json:"included_hours,omitempty"`
	OverageRate   decimal.Decimal `json:"overage_rate,omitempty"`
}

// ProjectBlock bills a fixed fee, itemized into deliverables.
type ProjectBlock struct {
	Enabled bool          `json:"enabled"`
	Items   []ProjectItem `json:"items,omitempty"`
}

type ProjectItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	EstHours decimal.Decimal `json:"est_hours,omitempty"`
}

// MilestonesBlock bills per milestone, each either a fixed amount or a
// percentage of some externally agreed total.
type MilestonesBlock struct {
	Enabled bool            `json:"enabled"`
	Items   []MilestoneItem `json:"items,omitempty"`
}

type MilestoneItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	IsPercentage bool            `json:"is_percentage,omitempty"`
}

// SuccessFeeBlock bills a base fee up front. The percentage is descriptive
// and is surfaced in the price label, never multiplied into the price.
type SuccessFeeBlock struct {
	Enabled           bool            `json:"enabled"`
	BaseFee           decimal.Decimal `json:"base_fee"`
	SuccessPercentage decimal.Decimal `json:"success_percentage,omitempty"`
	Metric            string          `json:"metric,omitempty"`
}

// Value implements driver.Valuer for JSONB storage.
func (c PricingConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB storage.
func (c *PricingConfig) Scan(value interface{}) error {
	if value == nil {
		*c = PricingConfig{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported pricing config source type %T", value)
	}
}
