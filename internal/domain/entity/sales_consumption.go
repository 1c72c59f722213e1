package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesConsumption auditoría inmutable de consumo: qué lote satisfizo cuánto de qué
// línea de venta. Una línea genera varias filas si necesitó más de un lote.
// Se crea solo dentro de la confirmación de la venta y nunca se edita ni borra.
type SalesConsumption struct {
	ID        string
	SaleID    string
	LineID    string
	BatchID   string
	Quantity  decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
}
