package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
	"github.com/bigmomma/inventario-erp/internal/domain/units"
)

// MaterialUseCase gestión de materias primas. El stock NO se fija aquí: entra y sale
// solo a través del ledger.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
	balanceRepo  repository.StockBalanceRepository
	locationRepo repository.LocationRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	materialRepo repository.MaterialRepository,
	balanceRepo repository.StockBalanceRepository,
	locationRepo repository.LocationRepository,
) *MaterialUseCase {
	return &MaterialUseCase{
		materialRepo: materialRepo,
		balanceRepo:  balanceRepo,
		locationRepo: locationRepo,
	}
}

// Create registra una materia prima. La unidad capturada se normaliza a unidad base
// (g→kg, ml→l) una sola vez, aquí.
func (uc *MaterialUseCase) Create(ctx context.Context, tenantID, name, unit string) (*entity.Material, error) {
	if name == "" || unit == "" {
		return nil, domain.ErrInvalidInput
	}
	_, baseUnit := units.ToBase(decimal.Zero, unit)
	material := &entity.Material{
		TenantID:  tenantID,
		Name:      name,
		Unit:      baseUnit,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uc.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// List materias primas del tenant.
func (uc *MaterialUseCase) List(ctx context.Context, tenantID string) ([]*entity.Material, error) {
	return uc.materialRepo.ListByTenant(ctx, tenantID)
}

// Get materia prima por id, validando pertenencia al tenant.
func (uc *MaterialUseCase) Get(ctx context.Context, tenantID, id string) (*entity.Material, error) {
	material, err := uc.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if material.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return material, nil
}

// SetReorderMin fija el mínimo de reposición de un material en una ubicación.
// El mínimo capturado en sub-unidad se normaliza a base igual que las cantidades.
func (uc *MaterialUseCase) SetReorderMin(ctx context.Context, tenantID, locationID, materialID string, min decimal.Decimal, inputUnit string) error {
	if min.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if _, err := uc.Get(ctx, tenantID, materialID); err != nil {
		return err
	}
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	if inputUnit != "" {
		min, _ = units.ToBase(min, inputUnit)
	}
	return uc.balanceRepo.SetReorderMin(ctx, locationID, materialID, min)
}
