package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
	"github.com/bigmomma/inventario-erp/internal/application/ledger"
)

// StockHandler expone las vistas de solo lectura del stock de materias primas.
type StockHandler struct {
	ledger *ledger.StockLedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.StockLedgerUseCase) *StockHandler {
	return &StockHandler{ledger: uc}
}

// Balance balance de un par (ubicación, material); cero si aún no hay movimientos.
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	materialID := c.Query("material_id")
	if locationID == "" || materialID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id y material_id requeridos"})
	}
	b, err := h.ledger.Balance(c.Context(), locationID, materialID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"location_id": b.LocationID,
		"material_id": b.MaterialID,
		"quantity":    b.Quantity,
		"reorder_min": b.ReorderMin,
		"updated_at":  b.UpdatedAt,
	})
}

// ByWarehouse balances de la sucursal desglosados por ubicación y material.
func (h *StockHandler) ByWarehouse(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouseID")
	rows, err := h.ledger.BalancesByWarehouse(c.Context(), warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "balances": rows})
}

// Summary stock total por material a través de las ubicaciones de la sucursal.
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouseID")
	totals, err := h.ledger.AggregateByWarehouse(c.Context(), warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(totals), "materials": totals})
}

// BelowReorderMin balances bajo su mínimo de reposición, mayor déficit primero.
func (h *StockHandler) BelowReorderMin(c *fiber.Ctx) error {
	warehouseID := c.Params("warehouseID")
	rows, err := h.ledger.BelowReorderMin(c.Context(), warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "balances": rows})
}
