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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación de SalesOrderRepository sobre PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

const saleColumns = `id, tenant_id, warehouse_id, date, status, note, created_by, created_at`

// Create persiste la venta en borrador con todas sus líneas.
func (r *SalesOrderRepo) Create(ctx context.Context, sale *entity.SalesOrder, lines []entity.SalesOrderLine) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales_orders (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := (*string)(nil)
	if sale.CreatedBy != "" {
		createdBy = &sale.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.TenantID, sale.WarehouseID, sale.Date,
		sale.Status, sale.Note, createdBy, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sales order: %w", err)
	}

	lineQuery := `
		INSERT INTO sales_order_lines (id, sale_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for i := range lines {
		if lines[i].ID == "" {
			lines[i].ID = uuid.New().String()
		}
		lines[i].SaleID = sale.ID
		if _, err := r.q.Exec(ctx, lineQuery,
			lines[i].ID, lines[i].SaleID, lines[i].ProductID, lines[i].Quantity,
		); err != nil {
			return fmt.Errorf("create sales order line: %w", err)
		}
	}
	return nil
}

func (r *SalesOrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.SalesOrder, error) {
	query := `SELECT ` + saleColumns + ` FROM sales_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var s entity.SalesOrder
	var createdBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.TenantID, &s.WarehouseID, &s.Date, &s.Status, &s.Note, &createdBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	if createdBy != nil {
		s.CreatedBy = *createdBy
	}
	return &s, nil
}

// GetByID obtiene una venta por ID.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene una venta y bloquea su fila: confirmaciones concurrentes
// se serializan y la segunda ve el estado CONFIRMADA.
func (r *SalesOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, id, true)
}

// GetLines obtiene las líneas de una venta.
func (r *SalesOrderRepo) GetLines(ctx context.Context, saleID string) ([]entity.SalesOrderLine, error) {
	query := `
		SELECT id, sale_id, product_id, quantity
		FROM sales_order_lines WHERE sale_id = $1`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.SalesOrderLine
	for rows.Next() {
		var l entity.SalesOrderLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// MarkConfirmed transiciona la venta a CONFIRMADA.
func (r *SalesOrderRepo) MarkConfirmed(ctx context.Context, id string) error {
	query := `UPDATE sales_orders SET status = $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, entity.SaleConfirmed)
	if err != nil {
		return fmt.Errorf("mark sale confirmed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	return nil
}

// ListByWarehouse lista las ventas de una sucursal, más reciente primero.
func (r *SalesOrderRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales_orders
		WHERE warehouse_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		var s entity.SalesOrder
		var createdBy *string
		if err := rows.Scan(&s.ID, &s.TenantID, &s.WarehouseID, &s.Date,
			&s.Status, &s.Note, &createdBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		if createdBy != nil {
			s.CreatedBy = *createdBy
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

var _ repository.SalesConsumptionRepository = (*SalesConsumptionRepo)(nil)

// SalesConsumptionRepo implementación de la auditoría de consumo por lote.
// Solo inserta y lee: las filas jamás se editan ni borran.
type SalesConsumptionRepo struct {
	q Querier
}

// NewSalesConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesConsumptionRepository(q Querier) *SalesConsumptionRepo {
	return &SalesConsumptionRepo{q: q}
}

// Create persiste una fila de auditoría de consumo.
func (r *SalesConsumptionRepo) Create(ctx context.Context, consumption *entity.SalesConsumption) error {
	if consumption.ID == "" {
		consumption.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales_consumptions (id, sale_id, line_id, batch_id, quantity, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdBy := (*string)(nil)
	if consumption.CreatedBy != "" {
		createdBy = &consumption.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		consumption.ID, consumption.SaleID, consumption.LineID, consumption.BatchID,
		consumption.Quantity, createdBy, consumption.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sales consumption: %w", err)
	}
	return nil
}

// ListBySale lista la auditoría de consumo de una venta en orden de inserción.
func (r *SalesConsumptionRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.SalesConsumption, error) {
	query := `
		SELECT id, sale_id, line_id, batch_id, quantity, created_by, created_at
		FROM sales_consumptions WHERE sale_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sales consumptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesConsumption
	for rows.Next() {
		var c entity.SalesConsumption
		var createdBy *string
		if err := rows.Scan(&c.ID, &c.SaleID, &c.LineID, &c.BatchID, &c.Quantity, &createdBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sales consumption: %w", err)
		}
		if createdBy != nil {
			c.CreatedBy = *createdBy
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
