package dto

import "github.com/shopspring/decimal"

// ErrorResponse respuesta de error estándar de la API. Shortfalls va poblado solo
// en errores de stock insuficiente: el core entrega datos itemizados y la capa de
// presentación decide cómo mostrarlos.
type ErrorResponse struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Shortfalls []ShortfallDTO `json:"shortfalls,omitempty"`
}

// ShortfallDTO faltante itemizado: qué ítem, cuánto se pidió, cuánto hay.
type ShortfallDTO struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
}
