package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// CanCreate — matriz plan × recurso
// ──────────────────────────────────────────────────────────────────────────────

func TestCanCreate_Sucursales(t *testing.T) {
	// esencial y trazabilidad: una sola sucursal
	assert.True(t, domain.CanCreate(entity.PlanEssential, domain.ResourceWarehouse, 0))
	assert.False(t, domain.CanCreate(entity.PlanEssential, domain.ResourceWarehouse, 1))
	assert.True(t, domain.CanCreate(entity.PlanTraceability, domain.ResourceWarehouse, 0))
	assert.False(t, domain.CanCreate(entity.PlanTraceability, domain.ResourceWarehouse, 1))

	// multi_sucursal: sin límite
	assert.True(t, domain.CanCreate(entity.PlanMultiWarehouse, domain.ResourceWarehouse, 0))
	assert.True(t, domain.CanCreate(entity.PlanMultiWarehouse, domain.ResourceWarehouse, 25))
}

func TestCanCreate_Ubicaciones(t *testing.T) {
	// esencial: una ubicación por sucursal
	assert.True(t, domain.CanCreate(entity.PlanEssential, domain.ResourceLocation, 0))
	assert.False(t, domain.CanCreate(entity.PlanEssential, domain.ResourceLocation, 1))

	// trazabilidad y multi_sucursal: ubicaciones ilimitadas
	assert.True(t, domain.CanCreate(entity.PlanTraceability, domain.ResourceLocation, 8))
	assert.True(t, domain.CanCreate(entity.PlanMultiWarehouse, domain.ResourceLocation, 8))
}

func TestCanCreate_RecursoDesconocido(t *testing.T) {
	assert.False(t, domain.CanCreate(entity.PlanMultiWarehouse, domain.ResourceKind("otro"), 0))
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckPlanAllowance
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckPlanAllowance_DentroDelLimite(t *testing.T) {
	tenant := &entity.Tenant{ID: "t1", Plan: entity.PlanEssential}
	assert.NoError(t, domain.CheckPlanAllowance(tenant, domain.ResourceWarehouse, 0))
}

func TestCheckPlanAllowance_LimiteAlcanzado(t *testing.T) {
	tenant := &entity.Tenant{ID: "t1", Plan: entity.PlanEssential}
	err := domain.CheckPlanAllowance(tenant, domain.ResourceWarehouse, 1)
	assert.ErrorIs(t, err, domain.ErrPlanLimit)
	assert.Contains(t, err.Error(), "esencial", "el mensaje debe nombrar el plan")
}

func TestCheckPlanAllowance_TenantInexistente(t *testing.T) {
	err := domain.CheckPlanAllowance(nil, domain.ResourceWarehouse, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
