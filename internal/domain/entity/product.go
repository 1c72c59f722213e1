package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bigmomma/inventario-erp/internal/domain/units"
)

// Product representa un producto terminado (pan, torta…). Su stock vive en lotes
// (ProductBatch), nunca como campo propio.
type Product struct {
	ID            string
	TenantID      string
	Name          string // único por tenant
	Unit          string // unidad base (kg, unidad…)
	ShelfLifeDays int    // vida útil desde la producción; define el vencimiento del lote
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FormatQty formatea una cantidad en la unidad del producto.
func (p *Product) FormatQty(qty decimal.Decimal) string {
	return units.Format(qty, p.Unit)
}
