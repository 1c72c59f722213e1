package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bigmomma/inventario-erp/internal/application/dto"
	"github.com/bigmomma/inventario-erp/internal/application/ledger"
	"github.com/bigmomma/inventario-erp/internal/domain/entity"
	"github.com/bigmomma/inventario-erp/internal/domain/repository"
	"github.com/bigmomma/inventario-erp/internal/domain/units"
)

// MovementHandler maneja las peticiones HTTP del kardex de materias primas.
type MovementHandler struct {
	ledger *ledger.StockLedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.StockLedgerUseCase) *MovementHandler {
	return &MovementHandler{ledger: uc}
}

// Record registra un movimiento (ingreso, ajuste, merma o consumo manual).
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}

	// La cantidad entra en la unidad de captura y se normaliza aquí, una sola vez.
	qty, _ := units.ToBase(in.Quantity, in.Unit)

	mov, err := h.ledger.Record(c.Context(), ledger.RecordInput{
		MaterialID:  in.MaterialID,
		WarehouseID: in.WarehouseID,
		LocationID:  in.LocationID,
		Kind:        in.Kind,
		Quantity:    qty,
		Note:        in.Note,
		ActorID:     GetActorID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementResponse(mov))
}

// Amend enmienda cantidad y/o tipo de un movimiento; el balance absorbe el delta.
func (h *MovementHandler) Amend(c *fiber.Ctx) error {
	var in dto.AmendMovementRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	mov, err := h.ledger.Amend(c.Context(), c.Params("id"), in.Quantity, in.Kind, GetActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movementResponse(mov))
}

// Retract retira un movimiento del kardex revirtiendo su efecto sobre el balance.
func (h *MovementHandler) Retract(c *fiber.Ctx) error {
	if err := h.ledger.Retract(c.Context(), c.Params("id"), GetActorID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento retirado"})
}

// History devuelve el kardex filtrado por material, ubicación y rango de fechas.
func (h *MovementHandler) History(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		MaterialID: c.Query("material_id"),
		LocationID: c.Query("location_id"),
		Limit:      c.QueryInt("limit"),
		Offset:     c.QueryInt("offset"),
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "from: fecha RFC3339"})
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "to: fecha RFC3339"})
		}
		filter.To = &t
	}

	list, err := h.ledger.History(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, movementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

func movementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		LocationID: m.LocationID,
		Kind:       m.Kind,
		Quantity:   m.Quantity,
		OccurredAt: m.OccurredAt,
		Note:       m.Note,
		CreatedBy:  m.CreatedBy,
	}
}
