package controllers

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/frogody/isyncso-backend/internal/pricing"
	"github.com/frogody/isyncso-backend/pkg/enums"
	pkgerrors "github.com/frogody/isyncso-backend/pkg/errors"
)

// selectionRequest is the wire form of a pricing selection. Everything is a
// reference by ID; amounts come from the persisted config, never the client.
type selectionRequest struct {
	Type          string                   `json:"type,omitempty" validate:"omitempty,oneof=subscription one_time service_model"`
	PlanID        string                   `json:"plan_id,omitempty"`
	BillingCycle  string                   `json:"billing_cycle,omitempty" validate:"omitempty,oneof=monthly yearly"`
	OneTimeItemID string                   `json:"one_time_item_id,omitempty"`
	AddOnIDs      []string                 `json:"add_on_ids,omitempty"`
	Service       *serviceSelectionRequest `json:"service,omitempty"`
}

type serviceSelectionRequest struct {
	Model          string          `json:"model,omitempty" validate:"omitempty,oneof=hourly retainer project milestone success_fee"`
	Hours          decimal.Decimal `json:"hours,omitempty"`
	ProjectItemIDs []string        `json:"project_item_ids,omitempty"`
	MilestoneIDs   []string        `json:"milestone_ids,omitempty"`
}

func (r selectionRequest) toSelection() (pricing.Selection, error) {
	sel := pricing.Selection{
		PlanID:        strings.TrimSpace(r.PlanID),
		OneTimeItemID: strings.TrimSpace(r.OneTimeItemID),
		AddOnIDs:      r.AddOnIDs,
	}

	if r.Type != "" {
		parsed, err := enums.ParseSelectionType(r.Type)
		if err != nil {
			return pricing.Selection{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid selection type")
		}
		sel.Type = parsed
	}

	if r.BillingCycle != "" {
		parsed, err := enums.ParseBillingCycle(r.BillingCycle)
		if err != nil {
			return pricing.Selection{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid billing cycle")
		}
		sel.BillingCycle = parsed
	}

	if r.Service != nil {
		service := pricing.ServiceSelection{
			Hours:          r.Service.Hours,
			ProjectItemIDs: r.Service.ProjectItemIDs,
			MilestoneIDs:   r.Service.MilestoneIDs,
		}
		if r.Service.Model != "" {
			parsed, err := enums.ParsePricingModel(r.Service.Model)
			if err != nil {
				return pricing.Selection{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pricing model")
			}
			service.Model = parsed
		}
		sel.Service = service
	}

	return sel, nil
}
