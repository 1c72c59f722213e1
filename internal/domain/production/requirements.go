// Package production contiene la lógica pura de expansión de recetas (servicio de dominio).
package production

import (
	"github.com/shopspring/decimal"

	"github.com/bigmomma/inventario-erp/internal/domain/entity"
)

// Requirement materia prima requerida para una corrida de producción.
type Requirement struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// Expand calcula las cantidades requeridas por materia prima para producir `batches`
// lotes de la receta: requerido = cantidad de la línea × lotes. Función pura, sin I/O;
// el caller valida batches > 0.
func Expand(lines []entity.RecipeLine, batches decimal.Decimal) []Requirement {
	reqs := make([]Requirement, 0, len(lines))
	for _, ln := range lines {
		reqs = append(reqs, Requirement{
			MaterialID: ln.MaterialID,
			Quantity:   ln.TotalFor(batches),
		})
	}
	return reqs
}
