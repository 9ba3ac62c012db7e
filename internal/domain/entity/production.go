package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionConsumption vincula una orden de producción con los movimientos de
// salida que generó. Computed evita el doble descuento: una orden solo se
// calcula una vez salvo recomputación forzada, que revierte los movimientos
// previos en la misma transacción.
type ProductionConsumption struct {
	ID          string
	OrderID     string
	FormulaID   string
	Quantity    decimal.Decimal
	Computed    bool
	MovementIDs []string
	ComputedAt  time.Time
	ComputedBy  string // UserID
}
