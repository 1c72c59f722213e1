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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, material_id, location_id, kind, quantity, occurred_at, note, created_by, created_at`

// Create persiste un movimiento del kardex.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.MaterialID, movement.LocationID, movement.Kind,
		movement.Quantity, movement.OccurredAt, movement.Note, createdBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var m entity.StockMovement
	var createdBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.MaterialID, &m.LocationID, &m.Kind,
		&m.Quantity, &m.OccurredAt, &m.Note, &createdBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene un movimiento y bloquea su fila (SELECT FOR UPDATE).
// Serializa enmiendas y retiros concurrentes de la misma entrada.
func (r *StockMovementRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.get(ctx, id, true)
}

// Update persiste cantidad, tipo y nota de un movimiento previamente bloqueado.
func (r *StockMovementRepo) Update(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		UPDATE stock_movements SET kind = $2, quantity = $3, note = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, movement.ID, movement.Kind, movement.Quantity, movement.Note)
	if err != nil {
		return fmt.Errorf("update stock movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, movement.ID)
	}
	return nil
}

// Delete elimina un movimiento (el retiro ya revirtió su efecto sobre el balance).
func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	return nil
}

// List devuelve el kardex filtrado, más reciente primero.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	var args []any
	pos := 1
	if filter.MaterialID != "" {
		query += fmt.Sprintf(" AND material_id = $%d", pos)
		args = append(args, filter.MaterialID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY occurred_at DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.LocationID, &m.Kind,
			&m.Quantity, &m.OccurredAt, &m.Note, &createdBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
