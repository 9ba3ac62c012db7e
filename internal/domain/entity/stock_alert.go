package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severidades de alerta de stock.
const (
	AlertSeverityLow      = "low"      // crítico < saldo <= bajo
	AlertSeverityCritical = "critical" // saldo <= crítico (incluye rupturas)
)

// StockAlert registra el momento en que el saldo de una materia cruzó un
// umbral. Acknowledged la marca como vista; la resolución automática ocurre
// cuando una evaluación posterior encuentra el saldo por encima del umbral bajo.
type StockAlert struct {
	ID           string
	ResourceID   string
	ResourceName string
	Severity     string // low, critical
	Balance      decimal.Decimal
	Threshold    decimal.Decimal
	Message      string
	Acknowledged bool
	CreatedAt    time.Time
}
