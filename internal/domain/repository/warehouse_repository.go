package repository

import (
	"context"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para sucursales.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Warehouse, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
}

// LocationRepository define el puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Location, error)
	CountByWarehouse(ctx context.Context, warehouseID string) (int, error)
	// FirstActive devuelve la primera ubicación activa de la sucursal por nombre,
	// o nil si no hay ninguna (destino de producción).
	FirstActive(ctx context.Context, warehouseID string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
}
