package usecase

import (
	"context"
	"time"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

// ReportUseCase consultas de solo lectura para los colaboradores de reporting:
// vencimientos de lotes y movimientos. Los reportes de balances viven en el ledger.
type ReportUseCase struct {
	batchRepo      repository.ProductBatchRepository
	nearExpiryDays int
	now            func() time.Time
}

// NewReportUseCase construye el caso de uso. nearExpiryDays es el umbral por defecto
// del reporte de lotes por vencer (configurable vía STOCK_NEAR_EXPIRY_DAYS).
func NewReportUseCase(batchRepo repository.ProductBatchRepository, nearExpiryDays int) *ReportUseCase {
	if nearExpiryDays <= 0 {
		nearExpiryDays = 1
	}
	return &ReportUseCase{
		batchRepo:      batchRepo,
		nearExpiryDays: nearExpiryDays,
		now:            time.Now,
	}
}

// NearExpiryBatches lotes con saldo que vencen dentro de withinDays días (0 = umbral
// por defecto). El estado de cada lote se deriva a la fecha de consulta, nunca se lee
// de un campo persistido.
func (uc *ReportUseCase) NearExpiryBatches(ctx context.Context, tenantID string, withinDays int) ([]*entity.ProductBatch, error) {
	if withinDays <= 0 {
		withinDays = uc.nearExpiryDays
	}
	return uc.batchRepo.ListNearExpiry(ctx, tenantID, uc.now(), withinDays)
}

// ExpiredBatches lotes ya vencidos con saldo remanente (merma pendiente de decisión).
func (uc *ReportUseCase) ExpiredBatches(ctx context.Context, tenantID string) ([]*entity.ProductBatch, error) {
	return uc.batchRepo.ListExpired(ctx, tenantID, uc.now())
}
