package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
	"github.com/bigmomma/inventario-erp/internal/application/usecase"
)

// WarehouseHandler maneja las peticiones HTTP de sucursales y ubicaciones.
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create crea una sucursal, sujeta al límite del plan del tenant.
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	warehouse, err := h.uc.CreateWarehouse(c.Context(), GetTenantID(c), in.Name, in.Address)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(warehouse)
}

// List sucursales del tenant.
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListWarehouses(c.Context(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "warehouses": list})
}

// CreateLocation crea una ubicación dentro de una sucursal, sujeta al plan.
func (h *WarehouseHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	location, err := h.uc.CreateLocation(c.Context(), GetTenantID(c), in.WarehouseID, in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

// ListLocations ubicaciones de una sucursal.
func (h *WarehouseHandler) ListLocations(c *fiber.Ctx) error {
	list, err := h.uc.ListLocations(c.Context(), c.Params("warehouseID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "locations": list})
}
