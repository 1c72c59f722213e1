package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionOrderRequest alta de orden de producción en borrador.
type CreateProductionOrderRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid4"`
	RecipeID    string          `json:"recipe_id" validate:"required,uuid4"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid4"`
	Batches     decimal.Decimal `json:"batches" validate:"required"`
	Note        string          `json:"note" validate:"max=250"`
}

// ProductionOrderResponse orden de producción.
type ProductionOrderResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	RecipeID    string          `json:"recipe_id"`
	WarehouseID string          `json:"warehouse_id"`
	Batches     decimal.Decimal `json:"batches"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
	Note        string          `json:"note,omitempty"`
}

// BatchResponse lote de producto terminado; Status derivado a la fecha de consulta.
type BatchResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Code         string          `json:"code"`
	LocationID   string          `json:"location_id"`
	ProducedAt   time.Time       `json:"produced_at"`
	ExpiresAt    time.Time       `json:"expires_at"`
	InitialQty   decimal.Decimal `json:"initial_qty"`
	AvailableQty decimal.Decimal `json:"available_qty"`
	Status       string          `json:"status"`
	DaysLeft     int             `json:"days_left"`
}
