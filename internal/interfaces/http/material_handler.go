package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
	"github.com/bigmomma/inventario-erp/internal/application/usecase"
)

// MaterialHandler maneja las peticiones HTTP de materias primas.
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create registra una materia prima; la unidad se normaliza a base (g→kg, ml→l).
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	material, err := h.uc.Create(c.Context(), GetTenantID(c), in.Name, in.Unit)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(material)
}

// List materias primas del tenant.
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "materials": list})
}

// GetByID obtiene una materia prima del tenant.
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	material, err := h.uc.Get(c.Context(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(material)
}

// SetReorderMin fija el mínimo de reposición del material en una ubicación.
func (h *MaterialHandler) SetReorderMin(c *fiber.Ctx) error {
	var in dto.SetReorderMinRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	if err := h.uc.SetReorderMin(c.Context(), GetTenantID(c), in.LocationID, c.Params("id"), in.Min, in.Unit); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "mínimo de reposición actualizado"})
}
