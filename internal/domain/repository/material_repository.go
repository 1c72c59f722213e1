package repository

import (
	"context"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para materias primas.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
}

// ProductRepository define el puerto de persistencia para productos terminados.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
}
