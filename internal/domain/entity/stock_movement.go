package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex de materias primas.
const (
	MovementReceipt     = "INGRESO"
	MovementConsumption = "CONSUMO"
	MovementAdjustPos   = "AJUSTE_POS"
	MovementAdjustNeg   = "AJUSTE_NEG"
	MovementShrinkage   = "MERMA"
)

// ValidMovementKind reporta si kind es uno de los tipos conocidos.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementReceipt, MovementConsumption, MovementAdjustPos, MovementAdjustNeg, MovementShrinkage:
		return true
	}
	return false
}

// StockMovement entrada del ledger de materias primas. Quantity siempre se guarda en
// positivo; el signo lo aporta el tipo (ver SignedQuantity). El ledger es lógicamente
// append-only: enmendar o retirar una entrada revierte primero su efecto sobre el balance.
type StockMovement struct {
	ID         string
	MaterialID string
	LocationID string
	Kind       string // ver constantes Movement*
	Quantity   decimal.Decimal
	OccurredAt time.Time
	Note       string
	CreatedBy  string
	CreatedAt  time.Time
}

// SignedQuantity cantidad con signo: positiva para INGRESO/AJUSTE_POS, negativa para el resto.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	switch m.Kind {
	case MovementReceipt, MovementAdjustPos:
		return m.Quantity
	default:
		return m.Quantity.Neg()
	}
}
