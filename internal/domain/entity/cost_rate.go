package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías y unidades de tarifas de costo configurables.
const (
	CostCategoryLabor     = "labor"
	CostCategoryOverhead  = "overhead"
	CostCategoryTransport = "transport"

	CostUnitPerHour  = "per_hour"
	CostUnitPerM3    = "per_m3"
	CostUnitPerOrder = "per_order"
)

// CostRate es una tarifa configurada con período de validez. El motor de
// costos busca la tarifa activa que cubre la fecha actual y cae a valores por
// defecto cuando no existe ninguna.
type CostRate struct {
	ID        string
	Category  string // labor, overhead, transport
	Name      string
	Value     decimal.Decimal
	Unit      string // per_hour, per_m3, per_order
	Active    bool
	DateFrom  time.Time
	DateTo    *time.Time // nil = sin fecha de fin
	CreatedAt time.Time
}

// CoversDate indica si la tarifa está activa y su período cubre la fecha dada.
func (r *CostRate) CoversDate(t time.Time) bool {
	if !r.Active {
		return false
	}
	day := t.Truncate(24 * time.Hour)
	if r.DateFrom.After(day.Add(24*time.Hour - time.Nanosecond)) {
		return false
	}
	if r.DateTo != nil && r.DateTo.Before(day) {
		return false
	}
	return true
}
