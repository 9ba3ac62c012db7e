package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de stock.
const (
	MovementEntry = "entry" // entrada (aprovisionamiento, ajuste positivo)
	MovementExit  = "exit"  // salida (consumo de producción, ajuste negativo)
)

// StockMovement es una entrada inmutable del libro de movimientos. El signo lo
// determina Kind al calcular saldos; Quantity es siempre positiva. Nunca se
// actualiza: una reversión marca Reversed en lugar de borrar la fila.
type StockMovement struct {
	ID          string
	ResourceID  string
	Kind        string // entry, exit
	Quantity    decimal.Decimal
	Description string
	SourceRef   string // orden de producción, aprovisionamiento, etc. (opcional)
	Reversed    bool
	OccurredAt  time.Time
	CreatedAt   time.Time
	CreatedBy   string // UserID
}

// Signed devuelve la cantidad con signo según el tipo de movimiento.
func (m *StockMovement) Signed() decimal.Decimal {
	if m.Kind == MovementExit {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
