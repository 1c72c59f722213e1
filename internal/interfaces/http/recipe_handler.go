package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
	"github.com/bigmomma/inventario-erp/internal/application/usecase"
)

// RecipeHandler maneja las peticiones HTTP de recetas.
type RecipeHandler struct {
	uc *usecase.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *usecase.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// Create crea una receta con sus líneas; la versión se asigna sola y las cantidades
// se normalizan a la unidad base de cada material.
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	lines := make([]usecase.RecipeLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, usecase.RecipeLineInput{
			MaterialID: l.MaterialID,
			Quantity:   l.Quantity,
			Unit:       l.Unit,
		})
	}
	recipe, err := h.uc.Create(c.Context(), usecase.CreateInput{
		TenantID:      GetTenantID(c),
		ProductID:     in.ProductID,
		Name:          in.Name,
		YieldPerBatch: in.YieldPerBatch,
		Description:   in.Description,
		Lines:         lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// GetByID obtiene una receta con sus líneas.
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	recipe, lines, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"recipe": recipe, "lines": lines})
}

// ListByProduct recetas de un producto, más reciente primero.
func (h *RecipeHandler) ListByProduct(c *fiber.Ctx) error {
	list, err := h.uc.ListByProduct(c.Context(), c.Params("productID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "recipes": list})
}
