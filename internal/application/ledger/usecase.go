package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bigmomma/inventario-erp/internal/domain"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
	"github.com/bigmomma/inventario-erp/pkg/logger"
)

// StockLedgerUseCase servicio del kardex de materias primas: registrar, enmendar y
// retirar movimientos manteniendo StockBalance igual a la suma con signo de las
// entradas de cada par (ubicación, material). Toda mutación corre en una transacción
// con bloqueo de fila (SELECT FOR UPDATE); nunca hay commit parcial.
type StockLedgerUseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
	balanceRepo  repository.StockBalanceRepository
	materialRepo repository.MaterialRepository
	locationRepo repository.LocationRepository
	log          *logger.Logger
}

// NewStockLedgerUseCase construye el servicio. movementRepo y balanceRepo atados al
// pool se usan solo para consultas; las escrituras pasan por el TxRunner.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	materialRepo repository.MaterialRepository,
	locationRepo repository.LocationRepository,
	log *logger.Logger,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		balanceRepo:  balanceRepo,
		materialRepo: materialRepo,
		locationRepo: locationRepo,
		log:          log,
	}
}

// RecordInput entrada para registrar un movimiento. WarehouseID declara el ámbito
// esperado: si la ubicación no pertenece a esa sucursal el movimiento se rechaza.
type RecordInput struct {
	MaterialID  string
	WarehouseID string
	LocationID  string
	Kind        string
	Quantity    decimal.Decimal
	Note        string
	ActorID     string
	OccurredAt  time.Time // cero → ahora
}

// Record valida y registra un movimiento; en la misma transacción asegura y bloquea
// la fila de balance del par (ubicación, material) y le suma la cantidad con signo.
func (uc *StockLedgerUseCase) Record(ctx context.Context, in RecordInput) (*entity.StockMovement, error) {
	if !entity.ValidMovementKind(in.Kind) {
		return nil, fmt.Errorf("tipo %q desconocido: %w", in.Kind, domain.ErrInvalidMovement)
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("cantidad debe ser > 0: %w", domain.ErrInvalidMovement)
	}

	material, err := uc.materialRepo.GetByID(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if in.WarehouseID != "" && location.WarehouseID != in.WarehouseID {
		return nil, fmt.Errorf("la ubicación no pertenece a la sucursal declarada: %w", domain.ErrInvalidMovement)
	}

	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	mov := &entity.StockMovement{
		MaterialID: in.MaterialID,
		LocationID: in.LocationID,
		Kind:       in.Kind,
		Quantity:   in.Quantity,
		OccurredAt: occurredAt,
		Note:       in.Note,
		CreatedBy:  in.ActorID,
		CreatedAt:  time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		return ApplyInTx(ctx, movRepo, balanceRepo, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("material_id", mov.MaterialID).
		Str("location_id", mov.LocationID).
		Str("kind", mov.Kind).
		Str("quantity", mov.Quantity.String()).
		Msg("movimiento registrado")
	return mov, nil
}

// Amend reemplaza cantidad y/o tipo de un movimiento existente. El delta entre la
// contribución con signo vieja y la nueva se aplica al balance bajo el mismo bloqueo,
// de modo que el balance siga reflejando exactamente el conjunto vigente de entradas.
func (uc *StockLedgerUseCase) Amend(ctx context.Context, movementID string, newQuantity decimal.Decimal, newKind string, actorID string) (*entity.StockMovement, error) {
	if newKind != "" && !entity.ValidMovementKind(newKind) {
		return nil, fmt.Errorf("tipo %q desconocido: %w", newKind, domain.ErrInvalidMovement)
	}
	if !newQuantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("cantidad debe ser > 0: %w", domain.ErrInvalidMovement)
	}

	var amended *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		old, err := movRepo.GetByIDForUpdate(ctx, movementID)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		oldSigned := old.SignedQuantity()

		upd := *old
		upd.Quantity = newQuantity
		if newKind != "" {
			upd.Kind = newKind
		}
		delta := upd.SignedQuantity().Sub(oldSigned)

		bal, err := balanceRepo.GetForUpdate(ctx, old.LocationID, old.MaterialID)
		if err != nil {
			return err
		}
		bal.Quantity = bal.Quantity.Add(delta)
		if err := balanceRepo.UpdateQuantity(ctx, bal); err != nil {
			return err
		}
		if err := movRepo.Update(ctx, &upd); err != nil {
			return err
		}
		amended = &upd
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", amended.ID).
		Str("actor_id", actorID).
		Str("quantity", amended.Quantity.String()).
		Msg("movimiento enmendado")
	return amended, nil
}

// Retract elimina un movimiento revirtiendo primero su contribución sobre el balance,
// bajo la misma disciplina de bloqueo y en una sola transacción.
func (uc *StockLedgerUseCase) Retract(ctx context.Context, movementID, actorID string) error {
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		old, err := movRepo.GetByIDForUpdate(ctx, movementID)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		bal, err := balanceRepo.GetForUpdate(ctx, old.LocationID, old.MaterialID)
		if err != nil {
			return err
		}
		bal.Quantity = bal.Quantity.Sub(old.SignedQuantity())
		if err := balanceRepo.UpdateQuantity(ctx, bal); err != nil {
			return err
		}
		return movRepo.Delete(ctx, old.ID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("movement_id", movementID).
		Str("actor_id", actorID).
		Msg("movimiento retirado")
	return nil
}

// ApplyInTx escribe un movimiento y actualiza su balance usando repositorios ya atados
// a la transacción del caller. Es el único camino de escritura del ledger; el motor de
// producción lo reutiliza para cada consumo dentro de su propia transacción.
func ApplyInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	mov *entity.StockMovement,
) error {
	if err := movRepo.Create(ctx, mov); err != nil {
		return err
	}
	bal, err := balanceRepo.GetForUpdate(ctx, mov.LocationID, mov.MaterialID)
	if err != nil {
		return err
	}
	bal.Quantity = bal.Quantity.Add(mov.SignedQuantity())
	return balanceRepo.UpdateQuantity(ctx, bal)
}
