package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe receta versionada de un producto. (producto, nombre, versión) es único.
type Recipe struct {
	ID            string
	ProductID     string
	Name          string
	Version       int
	YieldPerBatch decimal.Decimal // unidades de producto que rinde un lote de producción
	Description   string
	Active        bool
	CreatedAt     time.Time
}

// RecipeLine línea de receta: cuánta materia prima consume UN lote de producción.
// La cantidad se guarda siempre en la unidad base del material; la conversión
// (g→kg, ml→l) ocurre una sola vez al capturar el dato, nunca después.
type RecipeLine struct {
	ID         string
	RecipeID   string
	MaterialID string
	Quantity   decimal.Decimal
}

// TotalFor cantidad total de la línea para un multiplicador de lotes dado.
func (l *RecipeLine) TotalFor(batches decimal.Decimal) decimal.Decimal {
	return l.Quantity.Mul(batches)
}
