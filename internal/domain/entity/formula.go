package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formula es una receta de hormigón: un rendimiento de referencia (la cantidad
// producida que describe la composición) y las cantidades de cada materia por
// ese rendimiento.
type Formula struct {
	ID             string
	Name           string
	Description    string
	StrengthClass  string // e.g. "C25/30"
	ReferenceYield decimal.Decimal
	Components     []FormulaComponent
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FormulaComponent cantidad de una materia por rendimiento de referencia.
// Única por par (fórmula, materia).
type FormulaComponent struct {
	ResourceID   string
	ResourceName string
	Quantity     decimal.Decimal
}
