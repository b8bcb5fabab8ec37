package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frogody/isyncso-backend/pkg/db/models"
	"github.com/frogody/isyncso-backend/pkg/enums"
	"github.com/frogody/isyncso-backend/pkg/pagination"
)

// ListProductsInput captures the filter and pagination knobs of the catalog
// browse endpoint.
type ListProductsInput struct {
	CompanyID  uuid.UUID
	Query      string
	Type       *enums.ProductType
	Status     *enums.ProductStatus
	Pagination pagination.Params
}

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a product with its type-specific pricing detail.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Digital").
		Preload("Physical").
		Preload("Service").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts pages through a company's catalog newest-first. Archived
// products are hidden unless the caller filters for them explicitly.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("company_id = ?", input.CompanyID)

	if input.Status != nil {
		query = query.Where("status = ?", *input.Status)
	} else {
		query = query.Where("status <> ?", enums.ProductStatusArchived)
	}
	if input.Type != nil {
		query = query.Where("type = ?", *input.Type)
	}
	if input.Query != "" {
		pattern := "%" + input.Query + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var products []models.Product
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(input.Pagination.Limit)).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
