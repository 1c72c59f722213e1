package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bigmomma/inventario-erp/internal/domain/units"
)

// Material representa una materia prima (harina, levadura, etc.).
// No tiene campo de stock: el stock es derivado, vive en StockBalance por ubicación.
type Material struct {
	ID        string
	TenantID  string
	Name      string // único por tenant
	Unit      string // unidad base de almacenamiento (kg, l, unidad…)
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FormatQty formatea una cantidad en la unidad del material (1.5 kg, 350 g, …).
func (m *Material) FormatQty(qty decimal.Decimal) string {
	return units.Format(qty, m.Unit)
}
