package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
	"github.com/bigmomma/inventario-erp/internal/application/production"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// ProductionHandler maneja las peticiones HTTP de órdenes de producción.
type ProductionHandler struct {
	uc *production.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create crea una orden en BORRADOR. No toca stock.
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	order, err := h.uc.Create(c.Context(), production.CreateInput{
		ProductID:   in.ProductID,
		RecipeID:    in.RecipeID,
		WarehouseID: in.WarehouseID,
		Batches:     in.Batches,
		Note:        in.Note,
		ActorID:     GetActorID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orderResponse(order))
}

// Validate chequea suficiencia de materias primas sin consumir nada.
// Devuelve 409 con los faltantes itemizados cuando no alcanza.
func (h *ProductionHandler) Validate(c *fiber.Ctx) error {
	if err := h.uc.Validate(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock suficiente"})
}

// Execute ejecuta la orden: consume materias primas y emite el lote, todo o nada.
// Reejecutar una orden CONSUMIDA es un no-op sin lote nuevo.
func (h *ProductionHandler) Execute(c *fiber.Ctx) error {
	batch, err := h.uc.Execute(c.Context(), c.Params("id"), GetActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	if batch == nil {
		return c.JSON(fiber.Map{"message": "orden ya consumida"})
	}
	return c.Status(fiber.StatusCreated).JSON(batchResponse(batch, time.Now()))
}

// GetByID obtiene una orden por ID.
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(orderResponse(order))
}

// List órdenes de una sucursal, más reciente primero.
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("warehouse_id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, orderResponse(o))
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}

func orderResponse(o *entity.ProductionOrder) dto.ProductionOrderResponse {
	return dto.ProductionOrderResponse{
		ID:          o.ID,
		ProductID:   o.ProductID,
		RecipeID:    o.RecipeID,
		WarehouseID: o.WarehouseID,
		Batches:     o.Batches,
		Date:        o.Date,
		Status:      o.Status,
		Note:        o.Note,
	}
}

func batchResponse(b *entity.ProductBatch, today time.Time) dto.BatchResponse {
	return dto.BatchResponse{
		ID:           b.ID,
		ProductID:    b.ProductID,
		Code:         b.Code,
		LocationID:   b.LocationID,
		ProducedAt:   b.ProducedAt,
		ExpiresAt:    b.ExpiresAt,
		InitialQty:   b.InitialQty,
		AvailableQty: b.AvailableQty,
		Status:       b.Status(today),
		DaysLeft:     b.DaysLeft(today),
	}
}
