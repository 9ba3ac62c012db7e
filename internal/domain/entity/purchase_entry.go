package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseEntry es el registro histórico de una adquisición con precio
// (factura de proveedor). Solo alimenta la resolución de precios del motor de
// costos; el saldo de stock sale exclusivamente del libro de movimientos.
type PurchaseEntry struct {
	ID            string
	ResourceID    string
	Supplier      string
	Quantity      decimal.Decimal
	UnitPriceHT   decimal.Decimal // precio unitario antes de impuestos
	TaxRatePct    decimal.Decimal // e.g. 20 para 20%
	InvoiceNumber string
	InvoiceDate   time.Time
	CreatedAt     time.Time
}

// UnitPriceTTC precio unitario con impuestos incluidos.
func (p *PurchaseEntry) UnitPriceTTC() decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(p.TaxRatePct.Div(decimal.NewFromInt(100)))
	return p.UnitPriceHT.Mul(factor)
}
