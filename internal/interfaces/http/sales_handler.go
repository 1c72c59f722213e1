package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
	"github.com/bigmomma/inventario-erp/internal/application/sales"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// SalesHandler maneja las peticiones HTTP de ventas.
type SalesHandler struct {
	uc *sales.SalesUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.SalesUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Create crea una venta en BORRADOR con sus líneas. No toca lotes.
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	lines := make([]sales.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, sales.LineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	sale, err := h.uc.Create(c.Context(), sales.CreateInput{
		TenantID:    GetTenantID(c),
		WarehouseID: in.WarehouseID,
		Lines:       lines,
		Note:        in.Note,
		ActorID:     GetActorID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saleResponse(sale))
}

// Check chequea que los lotes vendibles alcancen para todas las líneas, sin consumir.
func (h *SalesHandler) Check(c *fiber.Ctx) error {
	if err := h.uc.Check(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock suficiente"})
}

// Confirm confirma la venta consumiendo lotes en orden FEFO, todo o nada.
// Reconfirmar una venta CONFIRMADA es un no-op.
func (h *SalesHandler) Confirm(c *fiber.Ctx) error {
	if err := h.uc.Confirm(c.Context(), c.Params("id"), GetActorID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta confirmada"})
}

// Consumptions auditoría de consumo por lote de una venta confirmada.
func (h *SalesHandler) Consumptions(c *fiber.Ctx) error {
	list, err := h.uc.Consumptions(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ConsumptionResponse, 0, len(list))
	for _, cons := range list {
		out = append(out, dto.ConsumptionResponse{
			SaleID:   cons.SaleID,
			LineID:   cons.LineID,
			BatchID:  cons.BatchID,
			Quantity: cons.Quantity,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "consumptions": out})
}

// GetByID obtiene una venta por ID.
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(saleResponse(sale))
}

// List ventas de una sucursal, más reciente primero.
func (h *SalesHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("warehouse_id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, saleResponse(s))
	}
	return c.JSON(fiber.Map{"total": len(out), "sales": out})
}

func saleResponse(s *entity.SalesOrder) dto.SaleResponse {
	return dto.SaleResponse{
		ID:          s.ID,
		WarehouseID: s.WarehouseID,
		Date:        s.Date,
		Status:      s.Status,
		Note:        s.Note,
	}
}
