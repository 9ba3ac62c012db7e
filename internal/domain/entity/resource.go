package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de materia rastreable.
const (
	ResourceKindMaterial = "material" // materia prima (cemento, arena, grava...)
	ResourceKindFuel     = "fuel"     // combustible (gasoil)
)

// Resource representa una materia rastreable por el libro de movimientos:
// materia prima de producción o combustible. El saldo nunca se almacena aquí,
// siempre se deriva del libro de movimientos.
type Resource struct {
	ID                string
	Name              string
	Kind              string // material, fuel
	Unit              string // kg, litro, m³...
	CriticalThreshold decimal.Decimal
	LowThreshold      decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidThresholds verifica el invariante 0 <= crítico <= bajo.
func (r *Resource) ValidThresholds() bool {
	return !r.CriticalThreshold.IsNegative() &&
		!r.LowThreshold.IsNegative() &&
		r.CriticalThreshold.LessThanOrEqual(r.LowThreshold)
}
