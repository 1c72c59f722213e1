package repository

import (
	"context"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// SalesOrderRepository puerto de persistencia para ventas y sus líneas.
type SalesOrderRepository interface {
	Create(ctx context.Context, sale *entity.SalesOrder, lines []entity.SalesOrderLine) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	// GetByIDForUpdate bloquea la venta: confirmaciones concurrentes se serializan.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	GetLines(ctx context.Context, saleID string) ([]entity.SalesOrderLine, error)
	MarkConfirmed(ctx context.Context, id string) error
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.SalesOrder, error)
}

// SalesConsumptionRepository puerto para la auditoría de consumo por lote.
// Solo Create y lectura: las filas jamás se editan ni borran.
type SalesConsumptionRepository interface {
	Create(ctx context.Context, consumption *entity.SalesConsumption) error
	ListBySale(ctx context.Context, saleID string) ([]*entity.SalesConsumption, error)
}
