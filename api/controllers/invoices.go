package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/frogody/isyncso-backend/api/responses"
	"github.com/frogody/isyncso-backend/api/validators"
	invoicesvc "github.com/frogody/isyncso-backend/internal/invoices"
	pkgerrors "github.com/frogody/isyncso-backend/pkg/errors"
	"github.com/frogody/isyncso-backend/pkg/logger"
)

type createInvoiceRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Currency  string `json:"currency,omitempty" validate:"omitempty,len=3"`
}

type addLineItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Selection selectionRequest `json:"selection"`
}

// CreateInvoice opens an empty draft invoice for a company.
func CreateInvoice(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		var payload createInvoiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, err := uuid.Parse(strings.TrimSpace(payload.CompanyID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid company id"))
			return
		}

		invoice, err := svc.CreateInvoice(r.Context(), invoicesvc.CreateInvoiceInput{
			CompanyID: companyID,
			Currency:  strings.ToUpper(strings.TrimSpace(payload.Currency)),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}

// GetInvoice loads an invoice with its line items.
func GetInvoice(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		invoiceID, err := validators.UUIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.GetInvoice(r.Context(), invoiceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

// AddLineItem resolves a selection and appends the priced line to a draft
// invoice.
func AddLineItem(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		invoiceID, err := validators.UUIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addLineItemRequest
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

		item, err := svc.AddLineItem(r.Context(), invoiceID, productID, sel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}
