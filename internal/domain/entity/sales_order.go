package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. CONFIRMADA es terminal.
const (
	SaleDraft     = "BORRADOR"
	SaleConfirmed = "CONFIRMADA"
)

// SalesOrder venta de productos terminados de una sucursal. Al confirmarse consume
// lotes bajo política FEFO (primero el que vence primero) y deja auditoría por lote.
type SalesOrder struct {
	ID          string
	TenantID    string
	WarehouseID string
	Date        time.Time
	Status      string // BORRADOR o CONFIRMADA
	Note        string
	CreatedBy   string
	CreatedAt   time.Time
}

// SalesOrderLine línea de venta: producto y cantidad solicitada.
type SalesOrderLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
}
