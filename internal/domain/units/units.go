// Package units normaliza y formatea cantidades según la unidad base del ítem.
// Las cantidades se almacenan SIEMPRE en unidad base (kg, l); la conversión desde
// sub-unidades (g, ml) ocurre una sola vez al capturar el dato.
package units

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// ToBase convierte una cantidad capturada en inputUnit a la unidad base correspondiente.
// g → kg y ml → l (÷1000); cualquier otra unidad se asume ya en base y pasa sin cambio.
// Devuelve la cantidad convertida y la unidad base resultante.
func ToBase(qty decimal.Decimal, inputUnit string) (decimal.Decimal, string) {
	switch strings.ToLower(strings.TrimSpace(inputUnit)) {
	case "g", "gr", "gramo", "gramos":
		return qty.Div(thousand), "kg"
	case "ml", "mililitro", "mililitros":
		return qty.Div(thousand), "l"
	case "kg":
		return qty, "kg"
	case "l", "lt", "litro", "litros":
		return qty, "l"
	}
	return qty, inputUnit
}

// Format presenta una cantidad en su unidad base con sub-unidad cuando es chica:
// 1.5 kg, 350 g, 0.75 → 750 ml, 12 unidad.
func Format(qty decimal.Decimal, unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	one := decimal.NewFromInt(1)
	switch u {
	case "kg":
		if qty.GreaterThanOrEqual(one) {
			return short(qty) + " kg"
		}
		return qty.Mul(thousand).Round(0).String() + " g"
	case "l", "lt", "litro", "litros":
		if qty.GreaterThanOrEqual(one) {
			return short(qty) + " l"
		}
		return qty.Mul(thousand).Round(0).String() + " ml"
	}
	return fmt.Sprintf("%s %s", short(qty), unit)
}

// short redondea a un decimal y omite el punto cuando el valor es entero (7, 7.5).
func short(d decimal.Decimal) string {
	q := d.Round(1)
	if q.IsInteger() {
		return q.Truncate(0).String()
	}
	return q.String()
}
