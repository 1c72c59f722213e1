package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
	"github.com/bigmomma/inventario-erp/internal/domain"
)

var validate = validator.New()

// parseAndValidate decodifica el cuerpo JSON y valida los tags del DTO.
func parseAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errors.New("cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		return err
	}
	return nil
}

// writeError traduce errores de dominio a respuestas HTTP. Los faltantes de stock
// viajan itemizados para que el cliente pueda mostrarlos uno a uno.
func writeError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		shortfalls := make([]dto.ShortfallDTO, 0, len(insufficient.Items))
		for _, it := range insufficient.Items {
			shortfalls = append(shortfalls, dto.ShortfallDTO{
				ItemID:    it.ItemID,
				ItemName:  it.ItemName,
				Required:  it.Required,
				Available: it.Available,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente", Shortfalls: shortfalls,
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidMovement):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_MOVEMENT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrPlanLimit):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PLAN_LIMIT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrNoDestination):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_DESTINATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrBusy):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "BUSY", Message: "recurso ocupado, reintente"})
	case errors.Is(err, domain.ErrConsistency):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONSISTENCY", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
