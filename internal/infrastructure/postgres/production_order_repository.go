package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación de ProductionOrderRepository sobre PostgreSQL.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

const orderColumns = `id, product_id, recipe_id, warehouse_id, batches, date, status, note, created_by, created_at`

// Create persiste una orden de producción en borrador.
func (r *ProductionOrderRepo) Create(ctx context.Context, order *entity.ProductionOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO production_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdBy := (*string)(nil)
	if order.CreatedBy != "" {
		createdBy = &order.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		order.ID, order.ProductID, order.RecipeID, order.WarehouseID,
		order.Batches, order.Date, order.Status, order.Note, createdBy, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create production order: %w", err)
	}
	return nil
}

func (r *ProductionOrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.ProductionOrder
	var createdBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.ProductID, &o.RecipeID, &o.WarehouseID,
		&o.Batches, &o.Date, &o.Status, &o.Note, &createdBy, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	if createdBy != nil {
		o.CreatedBy = *createdBy
	}
	return &o, nil
}

// GetByID obtiene una orden por ID.
func (r *ProductionOrderRepo) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene una orden y bloquea su fila. Dos ejecuciones concurrentes
// se serializan y la segunda ve el estado CONSUMIDA.
func (r *ProductionOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.get(ctx, id, true)
}

// MarkConsumed transiciona la orden a CONSUMIDA.
func (r *ProductionOrderRepo) MarkConsumed(ctx context.Context, id string) error {
	query := `UPDATE production_orders SET status = $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, entity.OrderConsumed)
	if err != nil {
		return fmt.Errorf("mark order consumed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return nil
}

// ListByWarehouse lista las órdenes de una sucursal, más reciente primero.
func (r *ProductionOrderRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `
		SELECT ` + orderColumns + ` FROM production_orders
		WHERE warehouse_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		var createdBy *string
		if err := rows.Scan(&o.ID, &o.ProductID, &o.RecipeID, &o.WarehouseID,
			&o.Batches, &o.Date, &o.Status, &o.Note, &createdBy, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		if createdBy != nil {
			o.CreatedBy = *createdBy
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

var _ repository.ProductBatchRepository = (*ProductBatchRepo)(nil)

// ProductBatchRepo implementación de ProductBatchRepository sobre PostgreSQL.
// El estado del lote (OK, POR_VENCER, VENCIDO) nunca se persiste: la elegibilidad
// de venta se expresa en SQL como expires_at >= hoy, así nunca queda obsoleta.
type ProductBatchRepo struct {
	q Querier
}

// NewProductBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductBatchRepository(q Querier) *ProductBatchRepo {
	return &ProductBatchRepo{q: q}
}

const batchColumns = `id, product_id, order_id, location_id, code, produced_at, expires_at, initial_qty, available_qty, created_by, created_at`

// Create persiste un lote nuevo (solo lo llama la ejecución de una orden).
func (r *ProductBatchRepo) Create(ctx context.Context, batch *entity.ProductBatch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	createdBy := (*string)(nil)
	if batch.CreatedBy != "" {
		createdBy = &batch.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.ProductID, batch.OrderID, batch.LocationID, batch.Code,
		batch.ProducedAt, batch.ExpiresAt, batch.InitialQty, batch.AvailableQty,
		createdBy, batch.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lote %q", domain.ErrDuplicate, batch.Code)
		}
		return fmt.Errorf("create product batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *ProductBatchRepo) GetByID(ctx context.Context, id string) (*entity.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get product batch: %w", err)
	}
	return b, nil
}

// CountByProductAndDate lotes ya emitidos del producto ese día (secuencia del código).
func (r *ProductBatchRepo) CountByProductAndDate(ctx context.Context, productID string, date time.Time) (int, error) {
	var n int
	query := `
		SELECT count(*) FROM product_batches
		WHERE product_id = $1 AND produced_at::date = $2::date`
	if err := r.q.QueryRow(ctx, query, productID, date).Scan(&n); err != nil {
		return 0, fmt.Errorf("count batches by product and date: %w", err)
	}
	return n, nil
}

func (r *ProductBatchRepo) listSellable(ctx context.Context, productID, warehouseID string, today time.Time, forUpdate bool) ([]*entity.ProductBatch, error) {
	// Orden FEFO: vence primero, sale primero; empates por orden de creación.
	query := `
		SELECT b.id, b.product_id, b.order_id, b.location_id, b.code, b.produced_at,
		       b.expires_at, b.initial_qty, b.available_qty, b.created_by, b.created_at
		FROM product_batches b
		JOIN locations l ON l.id = b.location_id
		WHERE b.product_id = $1
		  AND l.warehouse_id = $2
		  AND b.available_qty > 0
		  AND b.expires_at >= $3::date
		ORDER BY b.expires_at ASC, b.created_at ASC`
	if forUpdate {
		query += "\n\t\tFOR UPDATE OF b"
	}
	rows, err := r.q.Query(ctx, query, productID, warehouseID, today)
	if err != nil {
		return nil, fmt.Errorf("list sellable batches: %w", err)
	}
	return scanBatches(rows)
}

// ListSellable lotes vendibles del producto en la sucursal, en orden FEFO.
func (r *ProductBatchRepo) ListSellable(ctx context.Context, productID, warehouseID string, today time.Time) ([]*entity.ProductBatch, error) {
	return r.listSellable(ctx, productID, warehouseID, today, false)
}

// ListSellableForUpdate igual que ListSellable pero bloqueando cada lote (FOR UPDATE).
func (r *ProductBatchRepo) ListSellableForUpdate(ctx context.Context, productID, warehouseID string, today time.Time) ([]*entity.ProductBatch, error) {
	return r.listSellable(ctx, productID, warehouseID, today, true)
}

// UpdateAvailable persiste el saldo de un lote previamente bloqueado.
func (r *ProductBatchRepo) UpdateAvailable(ctx context.Context, batch *entity.ProductBatch) error {
	query := `UPDATE product_batches SET available_qty = $2 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, batch.ID, batch.AvailableQty)
	if err != nil {
		return fmt.Errorf("update batch available: %w", err)
	}
	return nil
}

// ListNearExpiry lotes con saldo que vencen dentro de withinDays días (incluye hoy).
func (r *ProductBatchRepo) ListNearExpiry(ctx context.Context, tenantID string, today time.Time, withinDays int) ([]*entity.ProductBatch, error) {
	query := `
		SELECT b.id, b.product_id, b.order_id, b.location_id, b.code, b.produced_at,
		       b.expires_at, b.initial_qty, b.available_qty, b.created_by, b.created_at
		FROM product_batches b
		JOIN products p ON p.id = b.product_id
		WHERE p.tenant_id = $1
		  AND b.available_qty > 0
		  AND b.expires_at >= $2::date
		  AND b.expires_at <= $2::date + $3
		ORDER BY b.expires_at ASC, b.created_at ASC`
	rows, err := r.q.Query(ctx, query, tenantID, today, withinDays)
	if err != nil {
		return nil, fmt.Errorf("list near expiry batches: %w", err)
	}
	return scanBatches(rows)
}

// ListExpired lotes vencidos con saldo remanente (candidatos a merma).
func (r *ProductBatchRepo) ListExpired(ctx context.Context, tenantID string, today time.Time) ([]*entity.ProductBatch, error) {
	query := `
		SELECT b.id, b.product_id, b.order_id, b.location_id, b.code, b.produced_at,
		       b.expires_at, b.initial_qty, b.available_qty, b.created_by, b.created_at
		FROM product_batches b
		JOIN products p ON p.id = b.product_id
		WHERE p.tenant_id = $1
		  AND b.available_qty > 0
		  AND b.expires_at < $2::date
		ORDER BY b.expires_at ASC`
	rows, err := r.q.Query(ctx, query, tenantID, today)
	if err != nil {
		return nil, fmt.Errorf("list expired batches: %w", err)
	}
	return scanBatches(rows)
}

func scanBatch(row pgx.Row) (*entity.ProductBatch, error) {
	var b entity.ProductBatch
	var createdBy *string
	err := row.Scan(
		&b.ID, &b.ProductID, &b.OrderID, &b.LocationID, &b.Code,
		&b.ProducedAt, &b.ExpiresAt, &b.InitialQty, &b.AvailableQty,
		&createdBy, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		b.CreatedBy = *createdBy
	}
	return &b, nil
}

func scanBatches(rows pgx.Rows) ([]*entity.ProductBatch, error) {
	defer rows.Close()
	var list []*entity.ProductBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
