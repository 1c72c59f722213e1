package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
	"github.com/bigmomma/inventario-erp/internal/application/usecase"
)

// TenantHandler maneja las peticiones HTTP de empresas/suscripciones.
type TenantHandler struct {
	uc *usecase.TenantUseCase
}

// NewTenantHandler construye el handler.
func NewTenantHandler(uc *usecase.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Create registra una empresa nueva (plan esencial por defecto, estado trialing).
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	tenant, err := h.uc.Create(c.Context(), in.Name, in.Plan)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// Me devuelve el tenant de la petición.
func (h *TenantHandler) Me(c *fiber.Ctx) error {
	tenant, err := h.uc.Get(c.Context(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(tenant)
}

// ChangePlan cambia el plan de suscripción. Solo gobierna creaciones futuras:
// sucursales y ubicaciones existentes no se tocan.
func (h *TenantHandler) ChangePlan(c *fiber.Ctx) error {
	var in struct {
		Plan string `json:"plan" validate:"required,oneof=esencial trazabilidad multi_sucursal"`
	}
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	if err := h.uc.ChangePlan(c.Context(), GetTenantID(c), in.Plan); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "plan actualizado"})
}

// CompleteOnboarding marca el onboarding del tenant como completado.
func (h *TenantHandler) CompleteOnboarding(c *fiber.Ctx) error {
	if err := h.uc.CompleteOnboarding(c.Context(), GetTenantID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "onboarding completado"})
}
