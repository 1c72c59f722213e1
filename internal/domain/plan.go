package domain

import (
	"fmt"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// ResourceKind recursos cuya creación está limitada por el plan de la suscripción.
type ResourceKind string

const (
	ResourceWarehouse ResourceKind = "warehouse"
	ResourceLocation  ResourceKind = "location"
)

// CanCreate indica si el plan del tenant permite crear un recurso más, dado cuántos
// existen hoy en el ámbito relevante (sucursales del tenant, o ubicaciones de UNA sucursal).
// Los límites se verifican solo al crear; un downgrade de plan no borra recursos existentes.
func CanCreate(plan string, kind ResourceKind, existing int) bool {
	switch kind {
	case ResourceWarehouse:
		if plan == entity.PlanMultiWarehouse {
			return true
		}
		// esencial y trazabilidad: una sola sucursal
		return existing == 0
	case ResourceLocation:
		if plan == entity.PlanEssential {
			return existing == 0
		}
		// trazabilidad y multi_sucursal: ubicaciones ilimitadas por sucursal
		return true
	}
	return false
}

// CheckPlanAllowance versión con error para los casos de uso de creación.
func CheckPlanAllowance(tenant *entity.Tenant, kind ResourceKind, existing int) error {
	if tenant == nil {
		return ErrNotFound
	}
	if !CanCreate(tenant.Plan, kind, existing) {
		return fmt.Errorf("plan %s no permite más recursos de tipo %s: %w", tenant.Plan, kind, ErrPlanLimit)
	}
	return nil
}
