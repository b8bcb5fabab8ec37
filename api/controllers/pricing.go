package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frogody/isyncso-backend/api/responses"
	"github.com/frogody/isyncso-backend/api/validators"
	"github.com/frogody/isyncso-backend/internal/catalog"
	"github.com/frogody/isyncso-backend/internal/pricing"
	pkgerrors "github.com/frogody/isyncso-backend/pkg/errors"
	"github.com/frogody/isyncso-backend/pkg/logger"
	"github.com/frogody/isyncso-backend/pkg/metrics"
)

type quoteRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Selection selectionRequest `json:"selection"`
}

// Quote previews a selection against a product's persisted pricing config.
// The quote is computed by the same resolution path that builds invoice line
// items, so a previewed total always matches the confirmed one.
func Quote(svc catalog.Service, pricingMetrics *metrics.PricingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(strings.TrimSpace(payload.ProductID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		sel, err := payload.Selection.toSelection()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		info, details, err := svc.EngineInputs(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start := time.Now()
		quote, err := pricing.Preview(info, details, sel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pricingMetrics.ObserveQuoteDuration(info.Type.String(), time.Since(start))

		model := ""
		if quote.ActiveModel != nil {
			model = quote.ActiveModel.String()
		}
		pricingMetrics.IncQuote(info.Type.String(), model)

		responses.WriteSuccess(w, quote)
	}
}
