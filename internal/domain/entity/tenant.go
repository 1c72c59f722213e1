package entity

import "time"

// Planes de suscripción disponibles. Gobiernan cuántas sucursales y ubicaciones
// puede crear el tenant (ver domain.CanCreate).
const (
	PlanEssential      = "esencial"       // PYME: 1 sucursal, 1 ubicación
	PlanTraceability   = "trazabilidad"   // Pro: 1 sucursal, ubicaciones ilimitadas
	PlanMultiWarehouse = "multi_sucursal" // Empresa: sin límites
)

// Tenant representa la empresa/suscripción dueña de todo el inventario (multi-tenant).
type Tenant struct {
	ID                 string
	Name               string
	Plan               string // ver constantes Plan*
	SubscriptionStatus string // trialing, active, past_due, canceled
	OnboardingDone     bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
