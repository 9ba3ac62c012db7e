package formula

import (
	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
)

// ResolveRequiredQuantities escala la composición de una fórmula a la cantidad
// de producción solicitada (servicio de dominio puro).
// Necesaria = componente.Quantity * output / fórmula.ReferenceYield
// Devuelve ErrInvalidFormula si el rendimiento de referencia no es positivo o
// la composición está vacía: un resultado cero silencioso ocultaría un
// problema de calidad de datos.
func ResolveRequiredQuantities(f *entity.Formula, output decimal.Decimal) (map[string]decimal.Decimal, error) {
	if f == nil || f.ReferenceYield.LessThanOrEqual(decimal.Zero) || len(f.Components) == 0 {
		return nil, domain.ErrInvalidFormula
	}
	if output.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	required := make(map[string]decimal.Decimal, len(f.Components))
	for _, comp := range f.Components {
		required[comp.ResourceID] = comp.Quantity.Mul(output).Div(f.ReferenceYield)
	}
	return required, nil
}
