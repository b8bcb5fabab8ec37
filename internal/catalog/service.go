package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frogody/isyncso-backend/internal/pricing"
	"github.com/frogody/isyncso-backend/pkg/db/models"
	"github.com/frogody/isyncso-backend/pkg/enums"
	pkgerrors "github.com/frogody/isyncso-backend/pkg/errors"
	"github.com/frogody/isyncso-backend/pkg/pagination"
	"github.com/frogody/isyncso-backend/pkg/types"
)

type productRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, error)
}

// Service exposes catalog read operations.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) ([]ProductSummary, types.PageMeta, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error)
	EngineInputs(ctx context.Context, id uuid.UUID) (pricing.ProductInfo, pricing.Details, error)
}

type service struct {
	repo productRepo
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo productRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListProducts pages through a company's selectable catalog.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductSummary, types.PageMeta, error) {
	if input.CompanyID == uuid.Nil {
		return nil, types.PageMeta{}, pkgerrors.New(pkgerrors.CodeValidation, "company id is required")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	products, err := s.repo.ListProducts(ctx, input)
	if err != nil {
		return nil, types.PageMeta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	meta := types.PageMeta{Limit: limit}
	if len(products) > limit {
		products = products[:limit]
		meta.HasMore = true
		last := products[len(products)-1]
		meta.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, toSummary(product))
	}
	return summaries, meta, nil
}

// GetProduct loads a product with its normalized pricing detail.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetail, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	info, details := toEngineInputs(product)
	detail := &ProductDetail{
		ProductSummary:  toSummary(*product),
		PricingModel:    details.PricingModel,
		BasePrice:       details.BasePrice,
		PricingConfig:   details.Config,
		RequiresOptions: pricing.RequiresOptions(info.Type, details),
		Warnings:        pricing.ConfigWarnings(details.Config),
	}
	if info.Type == enums.ProductTypeService {
		detail.AvailableModels = pricing.AvailableModels(details)
	}
	return detail, nil
}

// EngineInputs loads a product and projects it into the pricing engine's
// value types. Archived products are not priceable.
func (s *service) EngineInputs(ctx context.Context, id uuid.UUID) (pricing.ProductInfo, pricing.Details, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return pricing.ProductInfo{}, pricing.Details{}, err
	}
	if product.Status == enums.ProductStatusArchived {
		return pricing.ProductInfo{}, pricing.Details{}, pkgerrors.New(pkgerrors.CodeValidation, "archived products cannot be priced")
	}
	info, details := toEngineInputs(product)
	return info, details, nil
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}
