package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidMovement   = errors.New("movimiento de stock inválido")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrConsistency       = errors.New("inconsistencia de stock durante el consumo")
	ErrNoDestination     = errors.New("la sucursal no tiene ubicaciones para recibir el producto")
	ErrPlanLimit         = errors.New("límite del plan alcanzado")
	ErrBusy              = errors.New("recurso ocupado, reintentar la operación")
)

// Shortfall detalla un faltante de stock: qué ítem, cuánto se pidió y cuánto hay.
// Item puede ser una materia prima (producción) o un producto terminado (venta).
type Shortfall struct {
	ItemID    string
	ItemName  string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (s Shortfall) String() string {
	return fmt.Sprintf("%s: req %s / disp %s", s.ItemName, s.Required.String(), s.Available.String())
}

// InsufficientStockError falla de pre-condición con la lista itemizada de faltantes.
// La capa de presentación formatea los ítems; el core no produce strings opacos.
type InsufficientStockError struct {
	Items []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, s := range e.Items {
		parts = append(parts, s.String())
	}
	return "stock insuficiente → " + strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ConsistencyError indica que la validación dio suficiente pero el consumo no pudo
// completarse: una mutación concurrente ganó la carrera entre validar y consumir.
// La transacción que lo produce se revierte completa.
type ConsistencyError struct {
	Op        string // "produccion" o "venta"
	ItemID    string
	ItemName  string
	Remaining decimal.Decimal
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistencia en %s: faltó consumir %s de %s", e.Op, e.Remaining.String(), e.ItemName)
}

// Unwrap permite errors.Is(err, ErrConsistency).
func (e *ConsistencyError) Unwrap() error { return ErrConsistency }
