package sales

import (
	"context"

	"github.com/bigmomma/inventario-erp/internal/domain/repository"
)

// TxRunner abre la transacción de confirmación de una venta: validación, consumo
// FEFO de lotes y auditoría corren contra repositorios atados a la misma tx.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		saleRepo repository.SalesOrderRepository,
		batchRepo repository.ProductBatchRepository,
		consumptionRepo repository.SalesConsumptionRepository,
	) error) error
}
