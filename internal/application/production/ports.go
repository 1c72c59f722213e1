package production

import (
	"context"

	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

// TxRunner abre la transacción de ejecución de una orden: validar, consumir materias
// primas y emitir el lote ocurren contra estos repositorios atados a la misma tx.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		orderRepo repository.ProductionOrderRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		batchRepo repository.ProductBatchRepository,
		locationRepo repository.LocationRepository,
	) error) error
}
