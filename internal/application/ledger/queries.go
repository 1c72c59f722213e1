package ledger

import (
	"context"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

// History devuelve el kardex filtrado por material, ubicación y/o rango de fechas.
func (uc *StockLedgerUseCase) History(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return uc.movementRepo.List(ctx, filter)
}

// Balance devuelve el balance actual de un par (ubicación, material); cero si no existe.
func (uc *StockLedgerUseCase) Balance(ctx context.Context, locationID, materialID string) (*entity.StockBalance, error) {
	return uc.balanceRepo.Get(ctx, locationID, materialID)
}

// BalancesByWarehouse balances por ubicación de una sucursal, con nombres resueltos.
func (uc *StockLedgerUseCase) BalancesByWarehouse(ctx context.Context, warehouseID string) ([]repository.BalanceRow, error) {
	return uc.balanceRepo.ListByWarehouse(ctx, warehouseID)
}

// AggregateByWarehouse stock total por material a través de las ubicaciones de la sucursal.
func (uc *StockLedgerUseCase) AggregateByWarehouse(ctx context.Context, warehouseID string) ([]repository.MaterialTotal, error) {
	return uc.balanceRepo.AggregateByWarehouse(ctx, warehouseID)
}

// BelowReorderMin balances de la sucursal por debajo de su mínimo de reposición.
func (uc *StockLedgerUseCase) BelowReorderMin(ctx context.Context, warehouseID string) ([]repository.BalanceRow, error) {
	return uc.balanceRepo.ListBelowReorderMin(ctx, warehouseID)
}
