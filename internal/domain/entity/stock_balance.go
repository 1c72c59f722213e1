package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance stock actual de una materia prima en una ubicación (clave: ubicación+material).
// Es una vista materializada del ledger: su valor DEBE ser siempre la suma con signo de los
// movimientos de ese par. Solo el ledger lo muta, siempre dentro de la misma transacción
// que escribe el movimiento que lo justifica.
type StockBalance struct {
	LocationID string
	MaterialID string
	Quantity   decimal.Decimal
	ReorderMin decimal.Decimal // mínimo de reposición por ubicación
	UpdatedAt  time.Time
}

// BelowReorderMin indica si el balance cayó por debajo de su mínimo de reposición.
func (b *StockBalance) BelowReorderMin() bool {
	return b.ReorderMin.GreaterThan(decimal.Zero) && b.Quantity.LessThan(b.ReorderMin)
}
