package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bigmomma/inventario-erp/internal/application/ledger"
	"github.com/bigmomma/inventario-erp/internal/application/production"
	"github.com/bigmomma/inventario-erp/internal/application/sales"
	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

// Ensure TxRunner implements the application TxRunner ports.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Cada transacción corre con un lock_timeout acotado: si una fila bloqueada
// (FOR UPDATE) no se libera a tiempo, la operación falla con domain.ErrBusy
// en lugar de quedar esperando indefinido.
type TxRunner struct {
	pool          *pgxpool.Pool
	lockTimeoutMS int
}

// NewTxRunner construye el runner con el pool y el lock_timeout en milisegundos.
func NewTxRunner(pool *pgxpool.Pool, lockTimeoutMS int) *TxRunner {
	if lockTimeoutMS <= 0 {
		lockTimeoutMS = 3000
	}
	return &TxRunner{pool: pool, lockTimeoutMS: lockTimeoutMS}
}

func (r *TxRunner) begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	// SET LOCAL: el timeout muere con la transacción, no contamina la conexión.
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeoutMS)); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("set lock_timeout: %w", err)
	}
	return tx, nil
}

func (r *TxRunner) finish(ctx context.Context, tx pgx.Tx, err error) error {
	if err != nil {
		if isLockTimeout(err) {
			return fmt.Errorf("%w: %v", domain.ErrBusy, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción del ledger: movimiento y balance atados a la misma tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
) error) error {
	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	balanceRepo := NewStockBalanceRepository(tx)

	return r.finish(ctx, tx, fn(movRepo, balanceRepo))
}

// RunProduction inicia la transacción de ejecución de una orden de producción.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	orderRepo repository.ProductionOrderRepository,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	batchRepo repository.ProductBatchRepository,
	locationRepo repository.LocationRepository,
) error) error {
	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewProductionOrderRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	balanceRepo := NewStockBalanceRepository(tx)
	batchRepo := NewProductBatchRepository(tx)
	locationRepo := NewLocationRepository(tx)

	return r.finish(ctx, tx, fn(orderRepo, movRepo, balanceRepo, batchRepo, locationRepo))
}

// RunSales inicia la transacción de confirmación de una venta (consumo FEFO).
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	saleRepo repository.SalesOrderRepository,
	batchRepo repository.ProductBatchRepository,
	consumptionRepo repository.SalesConsumptionRepository,
) error) error {
	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saleRepo := NewSalesOrderRepository(tx)
	batchRepo := NewProductBatchRepository(tx)
	consumptionRepo := NewSalesConsumptionRepository(tx)

	return r.finish(ctx, tx, fn(saleRepo, batchRepo, consumptionRepo))
}
