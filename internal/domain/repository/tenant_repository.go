package repository

import (
	"context"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia para Tenant (DIP).
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
}
