package repository

import (
	"context"
	"time"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// ProductionOrderRepository puerto de persistencia para órdenes de producción.
type ProductionOrderRepository interface {
	Create(ctx context.Context, order *entity.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error)
	// GetByIDForUpdate bloquea la orden: dos ejecuciones concurrentes de la misma
	// orden se serializan y la segunda ve el estado CONSUMIDA.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error)
	MarkConsumed(ctx context.Context, id string) error
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.ProductionOrder, error)
}

// ProductBatchRepository puerto de persistencia para lotes de producto terminado.
type ProductBatchRepository interface {
	Create(ctx context.Context, batch *entity.ProductBatch) error
	GetByID(ctx context.Context, id string) (*entity.ProductBatch, error)
	// CountByProductAndDate lotes ya emitidos del producto ese día (secuencia del código).
	CountByProductAndDate(ctx context.Context, productID string, date time.Time) (int, error)

	// ListSellable lotes vendibles del producto en la sucursal (no vencidos a la fecha
	// today y con saldo), en orden FEFO: vencimiento ascendente, creación ascendente.
	ListSellable(ctx context.Context, productID, warehouseID string, today time.Time) ([]*entity.ProductBatch, error)
	// ListSellableForUpdate igual que ListSellable pero bloqueando cada lote (FOR UPDATE).
	ListSellableForUpdate(ctx context.Context, productID, warehouseID string, today time.Time) ([]*entity.ProductBatch, error)
	// UpdateAvailable persiste el saldo de un lote previamente bloqueado.
	UpdateAvailable(ctx context.Context, batch *entity.ProductBatch) error

	// Reportes de vencimiento.
	ListNearExpiry(ctx context.Context, tenantID string, today time.Time, withinDays int) ([]*entity.ProductBatch, error)
	ListExpired(ctx context.Context, tenantID string, today time.Time) ([]*entity.ProductBatch, error)
}
