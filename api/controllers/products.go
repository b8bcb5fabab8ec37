package controllers

import (
	"net/http"
	"strings"

	"github.com/frogody/isyncso-backend/api/responses"
	"github.com/frogody/isyncso-backend/api/validators"
	"github.com/frogody/isyncso-backend/internal/catalog"
	"github.com/frogody/isyncso-backend/pkg/enums"
	pkgerrors "github.com/frogody/isyncso-backend/pkg/errors"
	"github.com/frogody/isyncso-backend/pkg/logger"
	"github.com/frogody/isyncso-backend/pkg/pagination"
)

// ListProducts pages through a company's catalog with optional type, status
// and text filters.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		companyID, err := validators.UUIDQuery(r, "company_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.IntQuery(r, "limit")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.ListProductsInput{
			CompanyID: companyID,
			Query:     strings.TrimSpace(r.URL.Query().Get("q")),
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		}

		if raw := r.URL.Query().Get("type"); raw != "" {
			parsed, err := enums.ParseProductType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type"))
				return
			}
			input.Type = &parsed
		}
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := enums.ParseProductStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &parsed
		}

		products, meta, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMeta(w, products, meta)
	}
}

// GetProduct returns a product with its normalized pricing detail, the
// models it can be priced under and any config warnings.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}
