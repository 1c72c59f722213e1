package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest alta de movimiento en el kardex. Quantity viene en la unidad
// de captura (Unit); el handler la normaliza a la unidad base del material.
type RecordMovementRequest struct {
	MaterialID  string          `json:"material_id" validate:"required,uuid4"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid4"`
	LocationID  string          `json:"location_id" validate:"required,uuid4"`
	Kind        string          `json:"kind" validate:"required,oneof=INGRESO CONSUMO AJUSTE_POS AJUSTE_NEG MERMA"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Unit        string          `json:"unit"` // unidad de captura; vacía = ya en base
	Note        string          `json:"note" validate:"max=250"`
}

// AmendMovementRequest enmienda de un movimiento existente.
type AmendMovementRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
	Kind     string          `json:"kind" validate:"omitempty,oneof=INGRESO CONSUMO AJUSTE_POS AJUSTE_NEG MERMA"`
}

// MovementResponse entrada del kardex.
type MovementResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	LocationID string          `json:"location_id"`
	Kind       string          `json:"kind"`
	Quantity   decimal.Decimal `json:"quantity"`
	OccurredAt time.Time       `json:"occurred_at"`
	Note       string          `json:"note,omitempty"`
	CreatedBy  string          `json:"created_by,omitempty"`
}
