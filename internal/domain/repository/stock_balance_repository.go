package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// BalanceRow fila de reporte de balance con nombres resueltos (ubicación y material).
type BalanceRow struct {
	LocationID   string
	LocationName string
	MaterialID   string
	MaterialName string
	Unit         string
	Quantity     decimal.Decimal
	ReorderMin   decimal.Decimal
	UpdatedAt    time.Time
}

// MaterialTotal agregado de stock de un material a través de las ubicaciones de una sucursal.
type MaterialTotal struct {
	MaterialID   string
	MaterialName string
	Unit         string
	Quantity     decimal.Decimal
	ReorderMin   decimal.Decimal
}

// StockBalanceRepository puerto para la vista materializada (ubicación, material) → balance.
// Solo el ledger la muta, siempre dentro de una transacción que también escribe el
// movimiento justificante; por eso las variantes ForUpdate (bloqueo pesimista de fila).
type StockBalanceRepository interface {
	// Get devuelve el balance, o uno en cero si el par aún no existe.
	Get(ctx context.Context, locationID, materialID string) (*entity.StockBalance, error)
	// GetForUpdate garantiza la existencia de la fila y la bloquea (SELECT FOR UPDATE).
	// Serializa las escrituras concurrentes sobre el mismo par.
	GetForUpdate(ctx context.Context, locationID, materialID string) (*entity.StockBalance, error)
	// UpdateQuantity persiste la cantidad de una fila previamente bloqueada.
	UpdateQuantity(ctx context.Context, balance *entity.StockBalance) error
	SetReorderMin(ctx context.Context, locationID, materialID string, min decimal.Decimal) error

	// SumByMaterial suma el balance del material sobre todas las ubicaciones de la sucursal.
	SumByMaterial(ctx context.Context, materialID, warehouseID string) (decimal.Decimal, error)
	// ListWithStockForUpdate balances con cantidad > 0 del material en la sucursal,
	// ordenados por nombre de ubicación y bloqueados para el consumo de producción.
	ListWithStockForUpdate(ctx context.Context, materialID, warehouseID string) ([]*entity.StockBalance, error)

	// Reportes de solo lectura.
	ListByWarehouse(ctx context.Context, warehouseID string) ([]BalanceRow, error)
	AggregateByWarehouse(ctx context.Context, warehouseID string) ([]MaterialTotal, error)
	ListBelowReorderMin(ctx context.Context, warehouseID string) ([]BalanceRow, error)
}
