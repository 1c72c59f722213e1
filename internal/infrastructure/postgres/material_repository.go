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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste una materia prima nueva.
func (r *MaterialRepo) Create(ctx context.Context, material *entity.Material) error {
	if material.ID == "" {
		material.ID = uuid.New().String()
	}
	query := `
		INSERT INTO materials (id, tenant_id, name, unit, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`
	_, err := r.q.Exec(ctx, query,
		material.ID, material.TenantID, material.Name, material.Unit, material.Active, material.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: materia prima %q", domain.ErrDuplicate, material.Name)
		}
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	query := `
		SELECT id, tenant_id, name, unit, active, created_at, updated_at
		FROM materials WHERE id = $1`
	var m entity.Material
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.TenantID, &m.Name, &m.Unit, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: materia prima %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// ListByTenant lista las materias primas del tenant por nombre.
func (r *MaterialRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Material, error) {
	query := `
		SELECT id, tenant_id, name, unit, active, created_at, updated_at
		FROM materials WHERE tenant_id = $1
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Name, &m.Unit, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update persiste nombre, unidad y estado de una materia prima.
func (r *MaterialRepo) Update(ctx context.Context, material *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, unit = $3, active = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, material.ID, material.Name, material.Unit, material.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: materia prima %q", domain.ErrDuplicate, material.Name)
		}
		return fmt.Errorf("update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: materia prima %s", domain.ErrNotFound, material.ID)
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto terminado nuevo.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, tenant_id, name, unit, shelf_life_days, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.TenantID, product.Name, product.Unit,
		product.ShelfLifeDays, product.Active, product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, product.Name)
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, tenant_id, name, unit, shelf_life_days, active, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Unit, &p.ShelfLifeDays, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByTenant lista los productos del tenant por nombre.
func (r *ProductRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	query := `
		SELECT id, tenant_id, name, unit, shelf_life_days, active, created_at, updated_at
		FROM products WHERE tenant_id = $1
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.Unit, &p.ShelfLifeDays, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update persiste nombre, unidad, vida útil y estado de un producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, unit = $3, shelf_life_days = $4, active = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Unit, product.ShelfLifeDays, product.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, product.Name)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
	}
	return nil
}
