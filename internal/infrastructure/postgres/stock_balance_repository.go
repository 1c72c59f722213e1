package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación de la vista materializada de balances sobre PostgreSQL.
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get devuelve el balance del par (ubicación, material), o uno en cero si aún no existe.
func (r *StockBalanceRepo) Get(ctx context.Context, locationID, materialID string) (*entity.StockBalance, error) {
	query := `
		SELECT location_id, material_id, quantity, reorder_min, updated_at
		FROM stock_balances WHERE location_id = $1 AND material_id = $2`
	var b entity.StockBalance
	err := r.q.QueryRow(ctx, query, locationID, materialID).Scan(
		&b.LocationID, &b.MaterialID, &b.Quantity, &b.ReorderMin, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{
				LocationID: locationID,
				MaterialID: materialID,
				Quantity:   decimal.Zero,
				ReorderMin: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate garantiza la existencia de la fila y la bloquea (SELECT FOR UPDATE).
// El INSERT ... ON CONFLICT DO NOTHING crea el par en cero si es la primera vez;
// el FOR UPDATE posterior serializa las escrituras concurrentes sobre ese par.
func (r *StockBalanceRepo) GetForUpdate(ctx context.Context, locationID, materialID string) (*entity.StockBalance, error) {
	ensure := `
		INSERT INTO stock_balances (location_id, material_id, quantity, reorder_min, updated_at)
		VALUES ($1, $2, 0, 0, now())
		ON CONFLICT (location_id, material_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, ensure, locationID, materialID); err != nil {
		return nil, fmt.Errorf("ensure stock balance: %w", err)
	}

	query := `
		SELECT location_id, material_id, quantity, reorder_min, updated_at
		FROM stock_balances WHERE location_id = $1 AND material_id = $2
		FOR UPDATE`
	var b entity.StockBalance
	err := r.q.QueryRow(ctx, query, locationID, materialID).Scan(
		&b.LocationID, &b.MaterialID, &b.Quantity, &b.ReorderMin, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock balance for update: %w", err)
	}
	return &b, nil
}

// UpdateQuantity persiste la cantidad de una fila previamente bloqueada.
func (r *StockBalanceRepo) UpdateQuantity(ctx context.Context, balance *entity.StockBalance) error {
	query := `
		UPDATE stock_balances SET quantity = $3, updated_at = now()
		WHERE location_id = $1 AND material_id = $2`
	_, err := r.q.Exec(ctx, query, balance.LocationID, balance.MaterialID, balance.Quantity)
	if err != nil {
		return fmt.Errorf("update stock balance: %w", err)
	}
	return nil
}

// SetReorderMin fija el mínimo de reposición del par, creando la fila en cero si no existe.
func (r *StockBalanceRepo) SetReorderMin(ctx context.Context, locationID, materialID string, min decimal.Decimal) error {
	query := `
		INSERT INTO stock_balances (location_id, material_id, quantity, reorder_min, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (location_id, material_id)
		DO UPDATE SET reorder_min = EXCLUDED.reorder_min, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, locationID, materialID, min); err != nil {
		return fmt.Errorf("set reorder min: %w", err)
	}
	return nil
}

// SumByMaterial suma el balance del material sobre todas las ubicaciones de la sucursal.
func (r *StockBalanceRepo) SumByMaterial(ctx context.Context, materialID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.quantity), 0)
		FROM stock_balances s
		JOIN locations l ON l.id = s.location_id
		WHERE s.material_id = $1 AND l.warehouse_id = $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, materialID, warehouseID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock by material: %w", err)
	}
	return total, nil
}

// ListWithStockForUpdate balances con cantidad > 0 del material en la sucursal,
// en orden de nombre de ubicación y bloqueados (FOR UPDATE OF s) para el consumo
// de producción. El orden por nombre hace determinista de qué ubicación se saca primero.
func (r *StockBalanceRepo) ListWithStockForUpdate(ctx context.Context, materialID, warehouseID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT s.location_id, s.material_id, s.quantity, s.reorder_min, s.updated_at
		FROM stock_balances s
		JOIN locations l ON l.id = s.location_id
		WHERE s.material_id = $1 AND l.warehouse_id = $2 AND s.quantity > 0
		ORDER BY l.name
		FOR UPDATE OF s`
	rows, err := r.q.Query(ctx, query, materialID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock for update: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(&b.LocationID, &b.MaterialID, &b.Quantity, &b.ReorderMin, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

const balanceRowColumns = `
	s.location_id, l.name, s.material_id, m.name, m.unit, s.quantity, s.reorder_min, s.updated_at`

func scanBalanceRows(rows pgx.Rows) ([]repository.BalanceRow, error) {
	defer rows.Close()
	var list []repository.BalanceRow
	for rows.Next() {
		var row repository.BalanceRow
		if err := rows.Scan(&row.LocationID, &row.LocationName, &row.MaterialID, &row.MaterialName,
			&row.Unit, &row.Quantity, &row.ReorderMin, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ListByWarehouse balances de la sucursal con nombres resueltos, por ubicación y material.
func (r *StockBalanceRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]repository.BalanceRow, error) {
	query := `
		SELECT ` + balanceRowColumns + `
		FROM stock_balances s
		JOIN locations l ON l.id = s.location_id
		JOIN materials m ON m.id = s.material_id
		WHERE l.warehouse_id = $1
		ORDER BY l.name, m.name`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list balances by warehouse: %w", err)
	}
	return scanBalanceRows(rows)
}

// AggregateByWarehouse stock total por material a través de las ubicaciones de la sucursal.
func (r *StockBalanceRepo) AggregateByWarehouse(ctx context.Context, warehouseID string) ([]repository.MaterialTotal, error) {
	query := `
		SELECT s.material_id, m.name, m.unit, SUM(s.quantity), MAX(s.reorder_min)
		FROM stock_balances s
		JOIN locations l ON l.id = s.location_id
		JOIN materials m ON m.id = s.material_id
		WHERE l.warehouse_id = $1
		GROUP BY s.material_id, m.name, m.unit
		ORDER BY m.name`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("aggregate balances by warehouse: %w", err)
	}
	defer rows.Close()
	var list []repository.MaterialTotal
	for rows.Next() {
		var t repository.MaterialTotal
		if err := rows.Scan(&t.MaterialID, &t.MaterialName, &t.Unit, &t.Quantity, &t.ReorderMin); err != nil {
			return nil, fmt.Errorf("scan material total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListBelowReorderMin balances bajo su mínimo de reposición, mayor déficit primero.
func (r *StockBalanceRepo) ListBelowReorderMin(ctx context.Context, warehouseID string) ([]repository.BalanceRow, error) {
	query := `
		SELECT ` + balanceRowColumns + `
		FROM stock_balances s
		JOIN locations l ON l.id = s.location_id
		JOIN materials m ON m.id = s.material_id
		WHERE l.warehouse_id = $1
		  AND s.reorder_min > 0
		  AND s.quantity < s.reorder_min
		ORDER BY (s.reorder_min - s.quantity) DESC`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list below reorder min: %w", err)
	}
	return scanBalanceRows(rows)
}
