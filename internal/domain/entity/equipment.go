package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Equipment representa un engin que consume combustible (mixer, camión toupie,
// cargador...). Sus consumos se registran como salidas del libro de stock del
// combustible, referenciadas por equipo.
type Equipment struct {
	ID                    string
	Name                  string
	Category              string // mixer, camion, cargador...
	Registration          string // matrícula (opcional)
	AvgConsumptionPerHour decimal.Decimal
	Active                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
