package repository

import (
	"context"
	"time"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos (kardex).
type MovementFilter struct {
	MaterialID string
	LocationID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// StockMovementRepository puerto de persistencia del ledger de materias primas.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// GetByIDForUpdate bloquea la entrada para enmienda/retiro (evita enmiendas concurrentes).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.StockMovement, error)
	Update(ctx context.Context, movement *entity.StockMovement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
