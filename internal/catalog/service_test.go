package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frogody/isyncso-backend/pkg/db/models"
	"github.com/frogody/isyncso-backend/pkg/enums"
	pkgerrors "github.com/frogody/isyncso-backend/pkg/errors"
	"github.com/frogody/isyncso-backend/pkg/pagination"
	"github.com/frogody/isyncso-backend/pkg/types"
)

type stubRepo struct {
	product  *models.Product
	products []models.Product
	findErr  error
	listErr  error
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.product, nil
}

func (s *stubRepo) ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.products, nil
}

func newTestService(t *testing.T, repo productRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestListProductsRequiresCompany(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{})
	_, _, err := svc.ListProducts(context.Background(), ListProductsInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListProductsPagination(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	products := make([]models.Product, 3)
	for i := range products {
		products[i] = models.Product{
			ID:        uuid.New(),
			CompanyID: uuid.New(),
			Type:      enums.ProductTypeDigital,
			Name:      "Product",
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		}
	}

	svc := newTestService(t, &stubRepo{products: products})
	got, meta, err := svc.ListProducts(context.Background(), ListProductsInput{
		CompanyID:  uuid.New(),
		Pagination: pagination.Params{Limit: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected buffered row trimmed, got %d rows", len(got))
	}
	if !meta.HasMore || meta.NextCursor == "" {
		t.Fatalf("expected next page metadata, got %+v", meta)
	}

	cursor, err := pagination.ParseCursor(meta.NextCursor)
	if err != nil {
		t.Fatalf("cursor should round-trip: %v", err)
	}
	if cursor.ID != products[1].ID {
		t.Fatal("cursor should point at the last returned row")
	}
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{findErr: gorm.ErrRecordNotFound})
	_, err := svc.GetProduct(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetProductServiceDetail(t *testing.T) {
	t.Parallel()

	product := &models.Product{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Type:      enums.ProductTypeService,
		Status:    enums.ProductStatusPublished,
		Name:      "Consulting",
		Service: &models.ServiceProduct{
			PricingModel: enums.PricingModelHybrid,
			PricingConfig: types.PricingConfig{
				Hourly: types.HourlyBlock{Enabled: true, Rate: decimal.NewFromInt(50)},
				Milestones: types.MilestonesBlock{Enabled: true, Items: []types.MilestoneItem{
					{ID: "m1", Amount: decimal.NewFromInt(60), IsPercentage: true},
					{ID: "m2", Amount: decimal.NewFromInt(50), IsPercentage: true},
				}},
			},
		},
	}

	svc := newTestService(t, &stubRepo{product: product})
	detail, err := svc.GetProduct(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !detail.RequiresOptions {
		t.Fatal("service products require the options dialog")
	}
	if len(detail.AvailableModels) != 2 ||
		detail.AvailableModels[0] != enums.PricingModelHourly ||
		detail.AvailableModels[1] != enums.PricingModelMilestone {
		t.Fatalf("unexpected available models %v", detail.AvailableModels)
	}
	if len(detail.Warnings) != 1 {
		t.Fatalf("expected milestone percentage warning, got %v", detail.Warnings)
	}
}

func TestEngineInputsRejectsArchived(t *testing.T) {
	t.Parallel()

	product := &models.Product{
		ID:     uuid.New(),
		Type:   enums.ProductTypeDigital,
		Status: enums.ProductStatusArchived,
		Name:   "Legacy",
	}

	svc := newTestService(t, &stubRepo{product: product})
	_, _, err := svc.EngineInputs(context.Background(), product.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for archived product, got %v", err)
	}
}

func TestEngineInputsMissingDetailDisablesModels(t *testing.T) {
	t.Parallel()

	product := &models.Product{
		ID:     uuid.New(),
		Type:   enums.ProductTypeDigital,
		Status: enums.ProductStatusDraft,
		Name:   "Bare",
		Price:  decimal.NewFromInt(30),
	}

	svc := newTestService(t, &stubRepo{product: product})
	info, details, err := svc.EngineInputs(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Config.Subscriptions.Enabled || details.Config.OneTime.Enabled {
		t.Fatal("missing detail record must read as all models disabled")
	}
	if !info.Price.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected fallback price carried, got %s", info.Price)
	}
}
