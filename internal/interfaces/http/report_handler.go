package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
	"github.com/bigmomma/inventario-erp/internal/application/usecase"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// ReportHandler expone los reportes de vencimiento de lotes. El estado de cada lote
// se deriva a la fecha de la consulta, nunca se lee de la base.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// NearExpiry lotes con saldo que vencen dentro de within_days días (default configurable).
func (h *ReportHandler) NearExpiry(c *fiber.Ctx) error {
	list, err := h.uc.NearExpiryBatches(c.Context(), GetTenantID(c), c.QueryInt("within_days"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "batches": batchResponses(list)})
}

// Expired lotes vencidos con saldo remanente (candidatos a merma).
func (h *ReportHandler) Expired(c *fiber.Ctx) error {
	list, err := h.uc.ExpiredBatches(c.Context(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "batches": batchResponses(list)})
}

func batchResponses(list []*entity.ProductBatch) []dto.BatchResponse {
	now := time.Now()
	out := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, batchResponse(b, now))
	}
	return out
}
