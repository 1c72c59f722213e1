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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una sucursal nueva.
func (r *WarehouseRepo) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	if warehouse.ID == "" {
		warehouse.ID = uuid.New().String()
	}
	query := `
		INSERT INTO warehouses (id, tenant_id, name, address, is_primary, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := r.q.Exec(ctx, query,
		warehouse.ID, warehouse.TenantID, warehouse.Name, warehouse.Address,
		warehouse.IsPrimary, warehouse.Active, warehouse.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sucursal %q", domain.ErrDuplicate, warehouse.Name)
		}
		return fmt.Errorf("create warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	query := `
		SELECT id, tenant_id, name, address, is_primary, active, created_at, updated_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.TenantID, &w.Name, &w.Address, &w.IsPrimary, &w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// ListByTenant lista las sucursales del tenant ordenadas por nombre.
func (r *WarehouseRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, tenant_id, name, address, is_primary, active, created_at, updated_at
		FROM warehouses WHERE tenant_id = $1
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.TenantID, &w.Name, &w.Address, &w.IsPrimary, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// CountByTenant cuenta las sucursales del tenant (para el chequeo de plan).
func (r *WarehouseRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM warehouses WHERE tenant_id = $1`, tenantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count warehouses: %w", err)
	}
	return n, nil
}

// Update persiste nombre, dirección y flags de una sucursal.
func (r *WarehouseRepo) Update(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $2, address = $3, is_primary = $4, active = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		warehouse.ID, warehouse.Name, warehouse.Address, warehouse.IsPrimary, warehouse.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sucursal %q", domain.ErrDuplicate, warehouse.Name)
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, warehouse.ID)
	}
	return nil
}

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación nueva.
func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	query := `
		INSERT INTO locations (id, warehouse_id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`
	_, err := r.q.Exec(ctx, query,
		location.ID, location.WarehouseID, location.Name, location.Active, location.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ubicación %q", domain.ErrDuplicate, location.Name)
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `
		SELECT id, warehouse_id, name, active, created_at, updated_at
		FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.WarehouseID, &l.Name, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// ListByWarehouse lista las ubicaciones de una sucursal por nombre.
func (r *LocationRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.Location, error) {
	query := `
		SELECT id, warehouse_id, name, active, created_at, updated_at
		FROM locations WHERE warehouse_id = $1
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.WarehouseID, &l.Name, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// CountByWarehouse cuenta las ubicaciones de una sucursal (para el chequeo de plan).
func (r *LocationRepo) CountByWarehouse(ctx context.Context, warehouseID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM locations WHERE warehouse_id = $1`, warehouseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}

// FirstActive devuelve la primera ubicación activa de la sucursal por nombre, o nil si no hay.
func (r *LocationRepo) FirstActive(ctx context.Context, warehouseID string) (*entity.Location, error) {
	query := `
		SELECT id, warehouse_id, name, active, created_at, updated_at
		FROM locations WHERE warehouse_id = $1 AND active
		ORDER BY name LIMIT 1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, warehouseID).Scan(
		&l.ID, &l.WarehouseID, &l.Name, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first active location: %w", err)
	}
	return &l, nil
}

// Update persiste nombre y estado de una ubicación.
func (r *LocationRepo) Update(ctx context.Context, location *entity.Location) error {
	query := `
		UPDATE locations SET name = $2, active = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, location.ID, location.Name, location.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ubicación %q", domain.ErrDuplicate, location.Name)
		}
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, location.ID)
	}
	return nil
}
