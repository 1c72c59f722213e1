package production

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bigmomma/inventario-erp/internal/application/ledger"
	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	prodcalc "github.com/bigmomma/inventario-erp/internal/domain/production"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
	"github.com/bigmomma/inventario-erp/pkg/logger"
)

// ProductionUseCase máquina de estados de órdenes de producción:
// BORRADOR --Execute--> CONSUMIDA (terminal). Execute valida disponibilidad, consume
// materias primas por ubicación (greedy, orden por nombre) y emite el lote de producto
// terminado, todo en una única transacción con bloqueo pesimista.
type ProductionUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.ProductionOrderRepository
	recipeRepo   repository.RecipeRepository
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
	balanceRepo  repository.StockBalanceRepository
	log          *logger.Logger
}

// NewProductionUseCase construye el motor. Los repos del constructor van atados al
// pool (lecturas y validación previa); la ejecución pasa por el TxRunner.
func NewProductionUseCase(
	txRunner TxRunner,
	orderRepo repository.ProductionOrderRepository,
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
	balanceRepo repository.StockBalanceRepository,
	log *logger.Logger,
) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		recipeRepo:   recipeRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
		balanceRepo:  balanceRepo,
		log:          log,
	}
}

// CreateInput datos para crear una orden en borrador.
type CreateInput struct {
	ProductID   string
	RecipeID    string
	WarehouseID string
	Batches     decimal.Decimal
	Date        time.Time // cero → ahora
	Note        string
	ActorID     string
}

// Create crea la orden en estado BORRADOR. No toca stock.
func (uc *ProductionUseCase) Create(ctx context.Context, in CreateInput) (*entity.ProductionOrder, error) {
	if !in.Batches.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("lotes debe ser > 0: %w", domain.ErrInvalidInput)
	}
	recipe, err := uc.recipeRepo.GetByID(ctx, in.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil || recipe.ProductID != in.ProductID {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	order := &entity.ProductionOrder{
		ProductID:   in.ProductID,
		RecipeID:    in.RecipeID,
		WarehouseID: in.WarehouseID,
		Batches:     in.Batches,
		Date:        date,
		Status:      entity.OrderDraft,
		Note:        in.Note,
		CreatedBy:   in.ActorID,
		CreatedAt:   time.Now(),
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate ejecuta solo el chequeo de suficiencia de la orden: expande la receta y
// compara contra el stock agregado de la sucursal. Devuelve InsufficientStockError
// itemizado si falta algo. No muta nada; lo usa el handler de "¿se puede producir?".
func (uc *ProductionUseCase) Validate(ctx context.Context, orderID string) error {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	lines, err := uc.recipeRepo.GetLines(ctx, order.RecipeID)
	if err != nil {
		return err
	}
	reqs := prodcalc.Expand(lines, order.Batches)
	return uc.checkSufficiency(ctx, uc.balanceRepo, reqs, order.WarehouseID)
}

// Execute ejecuta la orden: validar, consumir, emitir lote y marcar CONSUMIDA, como
// una sola unidad atómica. Sobre una orden ya CONSUMIDA es un no-op (guarda idempotente).
func (uc *ProductionUseCase) Execute(ctx context.Context, orderID, actorID string) (*entity.ProductBatch, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.OrderConsumed {
		uc.log.Debug().Str("order_id", orderID).Msg("orden ya consumida, execute es no-op")
		return nil, nil
	}

	recipe, err := uc.recipeRepo.GetByID(ctx, order.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.recipeRepo.GetLines(ctx, order.RecipeID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	// Nombres de materiales para faltantes/notas, resueltos antes de abrir la tx.
	names, err := uc.materialNames(ctx, lines)
	if err != nil {
		return nil, err
	}

	var batch *entity.ProductBatch
	err = uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionOrderRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		batchRepo repository.ProductBatchRepository,
		locationRepo repository.LocationRepository,
	) error {
		// Bloquear la orden: si otra ejecución ganó la carrera, no-op.
		locked, err := orderRepo.GetByIDForUpdate(ctx, order.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.Status == entity.OrderConsumed {
			return nil
		}

		reqs := prodcalc.Expand(lines, locked.Batches)
		if err := uc.checkSufficiency(ctx, balanceRepo, reqs, locked.WarehouseID); err != nil {
			return err
		}

		// Destino del lote antes de consumir: sin ubicación no hay producción.
		dest, err := locationRepo.FirstActive(ctx, locked.WarehouseID)
		if err != nil {
			return err
		}
		if dest == nil {
			return domain.ErrNoDestination
		}

		for _, req := range reqs {
			if err := uc.consumeRequirement(ctx, movRepo, balanceRepo, locked, req, names[req.MaterialID], actorID); err != nil {
				return err
			}
		}

		units := recipe.YieldPerBatch.Mul(locked.Batches)
		expiry := locked.Date.AddDate(0, 0, product.ShelfLifeDays)
		seq, err := batchRepo.CountByProductAndDate(ctx, locked.ProductID, locked.Date)
		if err != nil {
			return err
		}
		batch = &entity.ProductBatch{
			ProductID:    locked.ProductID,
			OrderID:      locked.ID,
			LocationID:   dest.ID,
			Code:         entity.BatchCode(locked.ProductID, locked.Date, seq+1),
			ProducedAt:   locked.Date,
			ExpiresAt:    time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC),
			InitialQty:   units,
			AvailableQty: units,
			CreatedBy:    actorID,
			CreatedAt:    time.Now(),
		}
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		return orderRepo.MarkConsumed(ctx, locked.ID)
	})
	if err != nil {
		return nil, err
	}
	if batch == nil {
		// La orden ya estaba consumida cuando se tomó el lock.
		return nil, nil
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("batch_id", batch.ID).
		Str("batch_code", batch.Code).
		Str("units", batch.InitialQty.String()).
		Msg("orden de producción ejecutada")
	return batch, nil
}

// consumeRequirement agota el requerido de una materia prima tomando greedy de las
// ubicaciones con stock de la sucursal, en orden por nombre de ubicación: el MISMO
// orden determinista que vio la validación. Cada toma pasa por ledger.ApplyInTx, así
// el kardex y el balance quedan en la misma transacción de la orden.
func (uc *ProductionUseCase) consumeRequirement(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	order *entity.ProductionOrder,
	req prodcalc.Requirement,
	materialName string,
	actorID string,
) error {
	pending := req.Quantity
	items, err := balanceRepo.ListWithStockForUpdate(ctx, req.MaterialID, order.WarehouseID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if !pending.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(pending, item.Quantity)
		if !take.GreaterThan(decimal.Zero) {
			continue
		}
		mov := &entity.StockMovement{
			MaterialID: req.MaterialID,
			LocationID: item.LocationID,
			Kind:       entity.MovementConsumption,
			Quantity:   take,
			OccurredAt: time.Now(),
			Note:       fmt.Sprintf("OP %s · %s", order.ID, materialName),
			CreatedBy:  actorID,
			CreatedAt:  time.Now(),
		}
		if err := ledger.ApplyInTx(ctx, movRepo, balanceRepo, mov); err != nil {
			return err
		}
		pending = pending.Sub(take)
	}
	if pending.GreaterThan(decimal.Zero) {
		// La validación dio suficiente pero una mutación concurrente ganó la carrera.
		// Se aborta y la transacción completa se revierte.
		return &domain.ConsistencyError{
			Op:        "produccion",
			ItemID:    req.MaterialID,
			ItemName:  materialName,
			Remaining: pending,
		}
	}
	return nil
}

// checkSufficiency suma el balance de cada material requerido sobre la sucursal y
// acumula los faltantes en un InsufficientStockError itemizado.
func (uc *ProductionUseCase) checkSufficiency(
	ctx context.Context,
	balanceRepo repository.StockBalanceRepository,
	reqs []prodcalc.Requirement,
	warehouseID string,
) error {
	var shortfalls []domain.Shortfall
	for _, req := range reqs {
		available, err := balanceRepo.SumByMaterial(ctx, req.MaterialID, warehouseID)
		if err != nil {
			return err
		}
		if available.LessThan(req.Quantity) {
			name := req.MaterialID
			if m, err := uc.materialRepo.GetByID(ctx, req.MaterialID); err == nil && m != nil {
				name = m.Name
			}
			shortfalls = append(shortfalls, domain.Shortfall{
				ItemID:    req.MaterialID,
				ItemName:  name,
				Required:  req.Quantity,
				Available: available,
			})
		}
	}
	if len(shortfalls) > 0 {
		return &domain.InsufficientStockError{Items: shortfalls}
	}
	return nil
}

func (uc *ProductionUseCase) materialNames(ctx context.Context, lines []entity.RecipeLine) (map[string]string, error) {
	names := make(map[string]string, len(lines))
	for _, ln := range lines {
		m, err := uc.materialRepo.GetByID(ctx, ln.MaterialID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrNotFound
		}
		names[ln.MaterialID] = m.Name
	}
	return names, nil
}

// List órdenes de una sucursal, más reciente primero.
func (uc *ProductionUseCase) List(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.ProductionOrder, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.orderRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
}

// Get orden por ID.
func (uc *ProductionUseCase) Get(ctx context.Context, orderID string) (*entity.ProductionOrder, error) {
	return uc.orderRepo.GetByID(ctx, orderID)
}
