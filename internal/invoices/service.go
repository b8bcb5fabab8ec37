package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frogody/isyncso-backend/internal/pricing"
	"github.com/frogody/isyncso-backend/pkg/db/models"
	"github.com/frogody/isyncso-backend/pkg/enums"
	pkgerrors "github.com/frogody/isyncso-backend/pkg/errors"
	"github.com/frogody/isyncso-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type engineLoader interface {
	EngineInputs(ctx context.Context, id uuid.UUID) (pricing.ProductInfo, pricing.Details, error)
}

// Service exposes invoice operations.
type Service interface {
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	AddLineItem(ctx context.Context, invoiceID, productID uuid.UUID, sel pricing.Selection) (*models.InvoiceLineItem, error)
}

type service struct {
	repo            InvoiceRepository
	tx              txRunner
	catalog         engineLoader
	pricingMetrics  *metrics.PricingMetrics
	defaultCurrency string
}

// NewService builds an invoice service backed by the provided stack.
func NewService(repo InvoiceRepository, tx txRunner, catalog engineLoader, pricingMetrics *metrics.PricingMetrics, defaultCurrency string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if defaultCurrency == "" {
		defaultCurrency = "EUR"
	}
	return &service{
		repo:            repo,
		tx:              tx,
		catalog:         catalog,
		pricingMetrics:  pricingMetrics,
		defaultCurrency: defaultCurrency,
	}, nil
}

// CreateInvoiceInput captures the payload to open a draft invoice.
type CreateInvoiceInput struct {
	CompanyID uuid.UUID
	Currency  string
}

// CreateInvoice opens an empty draft invoice.
func (s *service) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error) {
	if input.CompanyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}
	currency := input.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	invoice := &models.Invoice{
		CompanyID: input.CompanyID,
		Currency:  currency,
		Status:    enums.InvoiceStatusDraft,
		Subtotal:  decimal.Zero,
	}
	created, err := s.repo.Create(ctx, invoice)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating invoice")
	}
	return created, nil
}

// GetInvoice loads an invoice with its line items.
func (s *service) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id is required")
	}
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading invoice")
	}
	return invoice, nil
}

// AddLineItem resolves the selection against the product's persisted config
// and appends the resulting line item atomically. The quote and the
// persisted record come from the same resolution path, so the preview a
// caller saw can never differ from what gets billed.
func (s *service) AddLineItem(ctx context.Context, invoiceID, productID uuid.UUID, sel pricing.Selection) (*models.InvoiceLineItem, error) {
	if invoiceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id is required")
	}

	info, details, err := s.catalog.EngineInputs(ctx, productID)
	if err != nil {
		return nil, err
	}

	quote, err := pricing.Preview(info, details, sel)
	if err != nil {
		return nil, err
	}
	if !quote.CanConfirm {
		s.pricingMetrics.IncRejection("no_available_model")
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no pricing model is selectable for this product")
	}

	resolved, err := pricing.Resolve(info, details, sel)
	if err != nil {
		return nil, err
	}

	record := toRecord(invoiceID, resolved)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		invoice, err := repo.FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "locking invoice")
		}
		if invoice.Status != enums.InvoiceStatusDraft {
			s.pricingMetrics.IncRejection("invoice_not_draft")
			return pkgerrors.New(pkgerrors.CodeStateConflict, "line items can only be added to draft invoices")
		}

		if _, err := repo.InsertLineItem(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inserting line item")
		}

		subtotal := invoice.Subtotal.Add(lineTotal(record))
		if err := repo.UpdateSubtotal(ctx, invoiceID, subtotal); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating invoice subtotal")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.pricingMetrics.IncConfirmation(resolved.ProductType.String())
	return record, nil
}

func toRecord(invoiceID uuid.UUID, item pricing.LineItem) *models.InvoiceLineItem {
	record := &models.InvoiceLineItem{
		InvoiceID:           invoiceID,
		ProductID:           item.ProductID,
		ProductType:         item.ProductType,
		Name:                item.Name,
		Description:         item.Description,
		Quantity:            item.Quantity,
		UnitPrice:           item.UnitPrice,
		IsSubscription:      item.IsSubscription,
		PlanID:              item.PlanID,
		PlanName:            item.PlanName,
		BillingCycle:        item.BillingCycle,
		AddOns:              item.AddOns,
		ServicePricingModel: item.ServicePricingModel,
		MilestoneID:         item.MilestoneID,
		ProjectItemID:       item.ProjectItemID,
	}
	if item.SKU != "" {
		sku := item.SKU
		record.SKU = &sku
	}
	return record
}

// lineTotal is the billed amount of one line: unit price times quantity plus
// the embedded add-on prices.
func lineTotal(record *models.InvoiceLineItem) decimal.Decimal {
	total := record.UnitPrice.Mul(record.Quantity)
	for _, addOn := range record.AddOns {
		total = total.Add(addOn.UnitPrice)
	}
	return total
}
