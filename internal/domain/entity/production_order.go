package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de producción. CONSUMIDA es terminal.
const (
	OrderDraft    = "BORRADOR"
	OrderConsumed = "CONSUMIDA"
)

// ProductionOrder orden de producción: producir Batches lotes de una receta en una
// sucursal. Al ejecutarse consume materias primas del ledger y emite un ProductBatch.
type ProductionOrder struct {
	ID          string
	ProductID   string
	RecipeID    string
	WarehouseID string
	Batches     decimal.Decimal // multiplicador de lotes (admite fracciones)
	Date        time.Time       // fecha de producción
	Status      string          // BORRADOR o CONSUMIDA
	Note        string
	CreatedBy   string
	CreatedAt   time.Time
}

// TotalUnits unidades totales a producir: rendimiento de la receta × lotes.
func (o *ProductionOrder) TotalUnits(recipe *Recipe) decimal.Decimal {
	return recipe.YieldPerBatch.Mul(o.Batches)
}
