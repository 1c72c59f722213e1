package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de un lote según los días que le quedan. No se persisten:
// son función pura de (fecha de vencimiento, hoy), así nunca quedan obsoletos
// cuando pasa el tiempo sin escrituras.
const (
	BatchOK         = "OK"
	BatchNearExpiry = "POR_VENCER" // ≤ 1 día: destinar a pan rallado u oferta
	BatchExpired    = "VENCIDO"
)

// ProductBatch lote fechado de producto terminado. Lo crea únicamente la ejecución de
// una orden de producción; AvailableQty solo decrece, y solo por consumo de ventas.
type ProductBatch struct {
	ID           string
	ProductID    string
	OrderID      string // orden de producción que lo emitió
	LocationID   string // ubicación que recibió la producción
	Code         string // único global: {product_id}-{YYYYMMDD}-{seq:03d}
	ProducedAt   time.Time
	ExpiresAt    time.Time // fecha (sin hora): producción + vida útil del producto
	InitialQty   decimal.Decimal
	AvailableQty decimal.Decimal
	CreatedBy    string
	CreatedAt    time.Time
}

// DaysLeft días hasta el vencimiento respecto de today (negativo si ya venció).
func (b *ProductBatch) DaysLeft(today time.Time) int {
	expiry := time.Date(b.ExpiresAt.Year(), b.ExpiresAt.Month(), b.ExpiresAt.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(day).Hours() / 24)
}

// Status estado derivado del lote a la fecha today.
func (b *ProductBatch) Status(today time.Time) string {
	d := b.DaysLeft(today)
	switch {
	case d < 0:
		return BatchExpired
	case d <= 1:
		return BatchNearExpiry
	default:
		return BatchOK
	}
}

// Sellable reporta si el lote puede venderse a la fecha today (OK o por vencer, con saldo).
func (b *ProductBatch) Sellable(today time.Time) bool {
	return b.Status(today) != BatchExpired && b.AvailableQty.GreaterThan(decimal.Zero)
}

// BatchCode arma el código de lote: {product_id}-{YYYYMMDD}-{seq:03d}.
// La secuencia está acotada a (tenant, producto, fecha de producción).
func BatchCode(productID string, producedAt time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", productID, producedAt.Format("20060102"), seq)
}
