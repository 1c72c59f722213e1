package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
)

// Locals keys para TenantID y ActorID en Fiber.
const (
	LocalTenantID = "tenant_id"
	LocalActorID  = "actor_id"
)

// Headers que inyecta el gateway upstream una vez autenticada la petición.
// Este servicio no valida credenciales: confía en su perímetro.
const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderUserID   = "X-User-ID"
)

// TenantMiddleware extrae el tenant y el actor de los headers del gateway y los
// deja en c.Locals. Sin tenant no hay petición válida: todo el inventario cuelga de él.
func TenantMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := c.Get(HeaderTenantID)
		if tenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "MISSING_TENANT", Message: "header " + HeaderTenantID + " requerido",
			})
		}
		c.Locals(LocalTenantID, tenantID)
		c.Locals(LocalActorID, c.Get(HeaderUserID))
		return c.Next()
	}
}

// GetTenantID devuelve el TenantID del contexto (después del middleware de tenant).
func GetTenantID(c *fiber.Ctx) string {
	v := c.Locals(LocalTenantID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetActorID devuelve el ActorID del contexto; puede ser vacío.
func GetActorID(c *fiber.Ctx) string {
	v := c.Locals(LocalActorID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
