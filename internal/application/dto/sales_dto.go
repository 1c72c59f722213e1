package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta a crear.
type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateSaleRequest alta de venta en borrador con sus líneas.
type CreateSaleRequest struct {
	WarehouseID string            `json:"warehouse_id" validate:"required,uuid4"`
	Lines       []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
	Note        string            `json:"note" validate:"max=200"`
}

// SaleResponse venta.
type SaleResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Note        string    `json:"note,omitempty"`
}

// ConsumptionResponse fila de auditoría: qué lote cubrió cuánto de qué línea.
type ConsumptionResponse struct {
	SaleID   string          `json:"sale_id"`
	LineID   string          `json:"line_id"`
	BatchID  string          `json:"batch_id"`
	Quantity decimal.Decimal `json:"quantity"`
}
