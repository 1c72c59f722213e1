package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación de TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste un tenant nuevo.
func (r *TenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	query := `
		INSERT INTO tenants (id, name, plan, subscription_status, onboarding_done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`
	_, err := r.q.Exec(ctx, query,
		tenant.ID, tenant.Name, tenant.Plan, tenant.SubscriptionStatus,
		tenant.OnboardingDone, tenant.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tenant %q", domain.ErrDuplicate, tenant.Name)
		}
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	query := `
		SELECT id, name, plan, subscription_status, onboarding_done, created_at, updated_at
		FROM tenants WHERE id = $1`
	var t entity.Tenant
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Plan, &t.SubscriptionStatus, &t.OnboardingDone, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: tenant %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// Update persiste plan, estado de suscripción y onboarding.
func (r *TenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, plan = $3, subscription_status = $4, onboarding_done = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		tenant.ID, tenant.Name, tenant.Plan, tenant.SubscriptionStatus, tenant.OnboardingDone,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tenant %s", domain.ErrNotFound, tenant.ID)
	}
	return nil
}
