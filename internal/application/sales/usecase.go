package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
	"github.com/bigmomma/inventario-erp/pkg/logger"
)

// SalesUseCase máquina de estados de ventas: BORRADOR --Confirm--> CONFIRMADA
// (terminal). Confirm consume lotes de producto terminado bajo política FEFO
// (vence primero, sale primero) dejando una fila de auditoría por (lote, línea),
// todo en una única transacción con bloqueo por lote.
type SalesUseCase struct {
	txRunner        TxRunner
	saleRepo        repository.SalesOrderRepository
	batchRepo       repository.ProductBatchRepository
	productRepo     repository.ProductRepository
	consumptionRepo repository.SalesConsumptionRepository
	log             *logger.Logger
	now             func() time.Time
}

// NewSalesUseCase construye el motor de ventas. Los repos del constructor van atados
// al pool (lecturas); la confirmación pasa por el TxRunner.
func NewSalesUseCase(
	txRunner TxRunner,
	saleRepo repository.SalesOrderRepository,
	batchRepo repository.ProductBatchRepository,
	productRepo repository.ProductRepository,
	consumptionRepo repository.SalesConsumptionRepository,
	log *logger.Logger,
) *SalesUseCase {
	return &SalesUseCase{
		txRunner:        txRunner,
		saleRepo:        saleRepo,
		batchRepo:       batchRepo,
		productRepo:     productRepo,
		consumptionRepo: consumptionRepo,
		log:             log,
		now:             time.Now,
	}
}

// LineInput línea de venta a crear.
type LineInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// CreateInput datos para crear una venta en borrador.
type CreateInput struct {
	TenantID    string
	WarehouseID string
	Lines       []LineInput
	Date        time.Time // cero → ahora
	Note        string
	ActorID     string
}

// Create crea la venta en estado BORRADOR con sus líneas. No toca lotes.
func (uc *SalesUseCase) Create(ctx context.Context, in CreateInput) (*entity.SalesOrder, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("la venta no tiene líneas: %w", domain.ErrInvalidInput)
	}
	lines := make([]entity.SalesOrderLine, 0, len(in.Lines))
	for _, ln := range in.Lines {
		if !ln.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("cantidad de línea debe ser > 0: %w", domain.ErrInvalidInput)
		}
		product, err := uc.productRepo.GetByID(ctx, ln.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.TenantID != in.TenantID {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, entity.SalesOrderLine{
			ID:        uuid.New().String(),
			ProductID: ln.ProductID,
			Quantity:  ln.Quantity,
		})
	}

	date := in.Date
	if date.IsZero() {
		date = uc.now()
	}
	sale := &entity.SalesOrder{
		TenantID:    in.TenantID,
		WarehouseID: in.WarehouseID,
		Date:        date,
		Status:      entity.SaleDraft,
		Note:        in.Note,
		CreatedBy:   in.ActorID,
		CreatedAt:   uc.now(),
	}
	if err := uc.saleRepo.Create(ctx, sale, lines); err != nil {
		return nil, err
	}
	return sale, nil
}

// Check ejecuta solo la validación de la venta: por línea suma el saldo de los lotes
// vendibles (no vencidos) del producto en la sucursal. Devuelve InsufficientStockError
// itemizado si falta algo. No muta nada; lo usa el pre-chequeo "¿se puede cumplir?".
func (uc *SalesUseCase) Check(ctx context.Context, saleID string) error {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	lines, err := uc.saleRepo.GetLines(ctx, saleID)
	if err != nil {
		return err
	}
	return uc.checkSufficiency(ctx, uc.batchRepo, sale, lines)
}

// Confirm valida y consume: por línea recorre los lotes vendibles en orden FEFO
// (vencimiento ascendente, creación ascendente — el desempate garantiza agotar primero
// lo que vence primero), bajo bloqueo por lote, descontando saldo y emitiendo una fila
// de auditoría por (lote, línea). Venta ya CONFIRMADA es no-op. Todo o nada: si una
// línea posterior falla no queda consumo parcial de las anteriores.
func (uc *SalesUseCase) Confirm(ctx context.Context, saleID, actorID string) error {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status == entity.SaleConfirmed {
		uc.log.Debug().Str("sale_id", saleID).Msg("venta ya confirmada, confirm es no-op")
		return nil
	}

	today := uc.now()
	err = uc.txRunner.RunSales(ctx, func(
		saleRepo repository.SalesOrderRepository,
		batchRepo repository.ProductBatchRepository,
		consumptionRepo repository.SalesConsumptionRepository,
	) error {
		locked, err := saleRepo.GetByIDForUpdate(ctx, sale.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.Status == entity.SaleConfirmed {
			return nil
		}
		lines, err := saleRepo.GetLines(ctx, locked.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("la venta no tiene líneas: %w", domain.ErrInvalidInput)
		}

		if err := uc.checkSufficiency(ctx, batchRepo, locked, lines); err != nil {
			return err
		}

		for _, line := range lines {
			if err := uc.consumeLine(ctx, batchRepo, consumptionRepo, locked, line, today, actorID); err != nil {
				return err
			}
		}
		return saleRepo.MarkConfirmed(ctx, locked.ID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("warehouse_id", sale.WarehouseID).
		Str("actor_id", actorID).
		Msg("venta confirmada")
	return nil
}

// consumeLine agota una línea tomando greedy de los lotes vendibles bloqueados en
// orden FEFO. Remanente positivo tras agotar los lotes = carrera con una mutación
// concurrente: ConsistencyError y la transacción completa se revierte.
func (uc *SalesUseCase) consumeLine(
	ctx context.Context,
	batchRepo repository.ProductBatchRepository,
	consumptionRepo repository.SalesConsumptionRepository,
	sale *entity.SalesOrder,
	line entity.SalesOrderLine,
	today time.Time,
	actorID string,
) error {
	pending := line.Quantity
	batches, err := batchRepo.ListSellableForUpdate(ctx, line.ProductID, sale.WarehouseID, today)
	if err != nil {
		return err
	}
	for _, batch := range batches {
		if !pending.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(pending, batch.AvailableQty)
		if !take.GreaterThan(decimal.Zero) {
			continue
		}
		batch.AvailableQty = batch.AvailableQty.Sub(take)
		if err := batchRepo.UpdateAvailable(ctx, batch); err != nil {
			return err
		}
		cons := &entity.SalesConsumption{
			SaleID:    sale.ID,
			LineID:    line.ID,
			BatchID:   batch.ID,
			Quantity:  take,
			CreatedBy: actorID,
			CreatedAt: uc.now(),
		}
		if err := consumptionRepo.Create(ctx, cons); err != nil {
			return err
		}
		pending = pending.Sub(take)
	}
	if pending.GreaterThan(decimal.Zero) {
		name := line.ProductID
		if p, err := uc.productRepo.GetByID(ctx, line.ProductID); err == nil && p != nil {
			name = p.Name
		}
		return &domain.ConsistencyError{
			Op:        "venta",
			ItemID:    line.ProductID,
			ItemName:  name,
			Remaining: pending,
		}
	}
	return nil
}

// checkSufficiency suma el saldo vendible por producto y acumula faltantes itemizados.
func (uc *SalesUseCase) checkSufficiency(
	ctx context.Context,
	batchRepo repository.ProductBatchRepository,
	sale *entity.SalesOrder,
	lines []entity.SalesOrderLine,
) error {
	if len(lines) == 0 {
		return fmt.Errorf("la venta no tiene líneas: %w", domain.ErrInvalidInput)
	}
	today := uc.now()
	var shortfalls []domain.Shortfall
	for _, line := range lines {
		batches, err := batchRepo.ListSellable(ctx, line.ProductID, sale.WarehouseID, today)
		if err != nil {
			return err
		}
		available := decimal.Zero
		for _, b := range batches {
			available = available.Add(b.AvailableQty)
		}
		if available.LessThan(line.Quantity) {
			name := line.ProductID
			if p, err := uc.productRepo.GetByID(ctx, line.ProductID); err == nil && p != nil {
				name = p.Name
			}
			shortfalls = append(shortfalls, domain.Shortfall{
				ItemID:    line.ProductID,
				ItemName:  name,
				Required:  line.Quantity,
				Available: available,
			})
		}
	}
	if len(shortfalls) > 0 {
		return &domain.InsufficientStockError{Items: shortfalls}
	}
	return nil
}

// Consumptions auditoría de consumo de una venta (qué lote cubrió cuánto de qué línea).
func (uc *SalesUseCase) Consumptions(ctx context.Context, saleID string) ([]*entity.SalesConsumption, error) {
	return uc.consumptionRepo.ListBySale(ctx, saleID)
}

// Get venta por ID.
func (uc *SalesUseCase) Get(ctx context.Context, saleID string) (*entity.SalesOrder, error) {
	return uc.saleRepo.GetByID(ctx, saleID)
}

// List ventas de una sucursal, más reciente primero.
func (uc *SalesUseCase) List(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.SalesOrder, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.saleRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
}
