package usecase

import (
	"context"
	"time"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
	"github.com/bigmomma/inventario-erp/internal/domain/units"

	"github.com/shopspring/decimal"
)

// ProductUseCase gestión de productos terminados.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create registra un producto. shelfLifeDays define el vencimiento de sus lotes;
// por defecto 3 días (panificados frescos).
func (uc *ProductUseCase) Create(ctx context.Context, tenantID, name, unit string, shelfLifeDays int) (*entity.Product, error) {
	if name == "" || unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if shelfLifeDays <= 0 {
		shelfLifeDays = 3
	}
	_, baseUnit := units.ToBase(decimal.Zero, unit)
	product := &entity.Product{
		TenantID:      tenantID,
		Name:          name,
		Unit:          baseUnit,
		ShelfLifeDays: shelfLifeDays,
		Active:        true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// List productos del tenant.
func (uc *ProductUseCase) List(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	return uc.productRepo.ListByTenant(ctx, tenantID)
}

// Get producto por id, validando pertenencia al tenant.
func (uc *ProductUseCase) Get(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}
