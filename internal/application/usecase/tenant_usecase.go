package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

// TenantUseCase gestión de la empresa/suscripción.
type TenantUseCase struct {
	tenantRepo repository.TenantRepository
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(tenantRepo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{tenantRepo: tenantRepo}
}

// Create registra una empresa nueva. Plan por defecto: esencial, estado trialing.
func (uc *TenantUseCase) Create(ctx context.Context, name, plan string) (*entity.Tenant, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if plan == "" {
		plan = entity.PlanEssential
	}
	if plan != entity.PlanEssential && plan != entity.PlanTraceability && plan != entity.PlanMultiWarehouse {
		return nil, fmt.Errorf("plan %q desconocido: %w", plan, domain.ErrInvalidInput)
	}
	tenant := &entity.Tenant{
		Name:               name,
		Plan:               plan,
		SubscriptionStatus: "trialing",
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	if err := uc.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// Get devuelve la empresa por id.
func (uc *TenantUseCase) Get(ctx context.Context, id string) (*entity.Tenant, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return tenant, nil
}

// ChangePlan actualiza el plan. Los límites solo aplican a creaciones futuras:
// un downgrade no borra sucursales ni ubicaciones existentes.
func (uc *TenantUseCase) ChangePlan(ctx context.Context, id, plan string) error {
	if plan != entity.PlanEssential && plan != entity.PlanTraceability && plan != entity.PlanMultiWarehouse {
		return fmt.Errorf("plan %q desconocido: %w", plan, domain.ErrInvalidInput)
	}
	tenant, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	tenant.Plan = plan
	tenant.UpdatedAt = time.Now()
	return uc.tenantRepo.Update(ctx, tenant)
}

// CompleteOnboarding marca el asistente inicial como terminado.
func (uc *TenantUseCase) CompleteOnboarding(ctx context.Context, id string) error {
	tenant, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	tenant.OnboardingDone = true
	tenant.UpdatedAt = time.Now()
	return uc.tenantRepo.Update(ctx, tenant)
}
