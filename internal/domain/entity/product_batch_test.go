package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func batchExpiring(expiresAt time.Time, qty string) *entity.ProductBatch {
	return &entity.ProductBatch{
		ID:           "lote-1",
		ProductID:    "pan-frances",
		ExpiresAt:    expiresAt,
		AvailableQty: decimal.RequireFromString(qty),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DaysLeft
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysLeft_IgnoraLaHoraDelDia(t *testing.T) {
	b := batchExpiring(date(2024, time.January, 10), "5")

	// consulta a las 23:59 del día 8: siguen faltando 2 días
	hoy := time.Date(2024, time.January, 8, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 2, b.DaysLeft(hoy))
}

func TestDaysLeft_NegativoSiVencio(t *testing.T) {
	b := batchExpiring(date(2024, time.January, 5), "5")
	assert.Equal(t, -3, b.DaysLeft(date(2024, time.January, 8)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Status — derivado, nunca persistido
// ──────────────────────────────────────────────────────────────────────────────

func TestStatus_LimitesExactos(t *testing.T) {
	b := batchExpiring(date(2024, time.March, 10), "5")

	// a 2+ días es OK; a 1 día o el día del vencimiento, POR_VENCER; después, VENCIDO
	casos := []struct {
		hoy    time.Time
		quiere string
	}{
		{date(2024, time.March, 7), entity.BatchOK},
		{date(2024, time.March, 8), entity.BatchOK},
		{date(2024, time.March, 9), entity.BatchNearExpiry},
		{date(2024, time.March, 10), entity.BatchNearExpiry},
		{date(2024, time.March, 11), entity.BatchExpired},
	}
	for _, c := range casos {
		assert.Equal(t, c.quiere, b.Status(c.hoy), "estado para hoy=%s", c.hoy.Format("2006-01-02"))
	}
}

func TestStatus_MismoLoteCambiaConElTiempo(t *testing.T) {
	// el estado se recalcula en cada consulta sin que nadie escriba el lote
	b := batchExpiring(date(2024, time.June, 1), "5")
	assert.Equal(t, entity.BatchOK, b.Status(date(2024, time.May, 28)))
	assert.Equal(t, entity.BatchNearExpiry, b.Status(date(2024, time.May, 31)))
	assert.Equal(t, entity.BatchExpired, b.Status(date(2024, time.June, 2)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Sellable
// ──────────────────────────────────────────────────────────────────────────────

func TestSellable_VencidoNoSeVende(t *testing.T) {
	b := batchExpiring(date(2024, time.January, 5), "5")
	assert.False(t, b.Sellable(date(2024, time.January, 6)))
}

func TestSellable_PorVencerSiSeVende(t *testing.T) {
	b := batchExpiring(date(2024, time.January, 5), "5")
	assert.True(t, b.Sellable(date(2024, time.January, 5)), "el día del vencimiento todavía se vende")
}

func TestSellable_SinSaldoNoSeVende(t *testing.T) {
	b := batchExpiring(date(2024, time.January, 10), "0")
	assert.False(t, b.Sellable(date(2024, time.January, 2)))
}

// ──────────────────────────────────────────────────────────────────────────────
// BatchCode
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchCode_Formato(t *testing.T) {
	code := entity.BatchCode("pan-frances", date(2024, time.March, 5), 1)
	assert.Equal(t, "pan-frances-20240305-001", code)
}

func TestBatchCode_SecuenciaConRelleno(t *testing.T) {
	assert.Equal(t, "torta-20241231-012", entity.BatchCode("torta", date(2024, time.December, 31), 12))
	assert.Equal(t, "torta-20241231-123", entity.BatchCode("torta", date(2024, time.December, 31), 123))
}
