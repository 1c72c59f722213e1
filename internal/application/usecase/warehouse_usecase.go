package usecase

import (
	"context"
	"time"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

// WarehouseUseCase gestión de sucursales y ubicaciones con límites por plan.
type WarehouseUseCase struct {
	tenantRepo    repository.TenantRepository
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.LocationRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(
	tenantRepo repository.TenantRepository,
	warehouseRepo repository.WarehouseRepository,
	locationRepo repository.LocationRepository,
) *WarehouseUseCase {
	return &WarehouseUseCase{
		tenantRepo:    tenantRepo,
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
	}
}

// CreateWarehouse crea una sucursal si el plan lo permite (chequeo solo al crear).
// La primera sucursal del tenant queda como principal.
func (uc *WarehouseUseCase) CreateWarehouse(ctx context.Context, tenantID, name, address string) (*entity.Warehouse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.warehouseRepo.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckPlanAllowance(tenant, domain.ResourceWarehouse, existing); err != nil {
		return nil, err
	}

	warehouse := &entity.Warehouse{
		TenantID:  tenantID,
		Name:      name,
		Address:   address,
		IsPrimary: existing == 0,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uc.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// ListWarehouses sucursales del tenant.
func (uc *WarehouseUseCase) ListWarehouses(ctx context.Context, tenantID string) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.ListByTenant(ctx, tenantID)
}

// CreateLocation crea una ubicación dentro de una sucursal si el plan lo permite.
func (uc *WarehouseUseCase) CreateLocation(ctx context.Context, tenantID, warehouseID, name string) (*entity.Location, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if warehouse.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.locationRepo.CountByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckPlanAllowance(tenant, domain.ResourceLocation, existing); err != nil {
		return nil, err
	}

	location := &entity.Location{
		WarehouseID: warehouseID,
		Name:        name,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := uc.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// ListLocations ubicaciones de una sucursal.
func (uc *WarehouseUseCase) ListLocations(ctx context.Context, warehouseID string) ([]*entity.Location, error) {
	return uc.locationRepo.ListByWarehouse(ctx, warehouseID)
}
