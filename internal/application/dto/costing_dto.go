package dto

import "github.com/shopspring/decimal"

// CostSimulationRequest body para POST /api/costing/simulate.
type CostSimulationRequest struct {
	FormulaID string                     `json:"formula_id"`
	Quantity  decimal.Decimal            `json:"quantity"`
	Defaults  map[string]decimal.Decimal `json:"defaults,omitempty"` // overrides de valores por defecto
}

// MaterialCost detalle de costo de una materia dentro de la simulación.
type MaterialCost struct {
	ResourceID   string          `json:"resource_id"`
	ResourceName string          `json:"resource_name"`
	Required     decimal.Decimal `json:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price"` // TTC
	Cost         decimal.Decimal `json:"cost"`
	Estimated    bool            `json:"estimated"` // precio de fallback, no de compras reales
}

// CostSimulation resultado del cálculo de costo de revient de una fórmula.
// Estimated es verdadero si cualquier componente usó un precio o tarifa de
// fallback: los reportes deben distinguir "estimado" de "real".
type CostSimulation struct {
	FormulaID     string          `json:"formula_id"`
	FormulaName   string          `json:"formula_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	MaterialsCost decimal.Decimal `json:"materials_cost"`
	LaborCost     decimal.Decimal `json:"labor_cost"`
	OverheadCost  decimal.Decimal `json:"overhead_cost"`
	TransportCost decimal.Decimal `json:"transport_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	PerUnitCost   decimal.Decimal `json:"per_unit_cost"`
	Materials     []MaterialCost  `json:"materials"`
	Estimated     bool            `json:"estimated"`
}

// CostRateRequest body para POST /api/costing/rates.
type CostRateRequest struct {
	Category string          `json:"category"` // labor, overhead, transport
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	Unit     string          `json:"unit"` // per_hour, per_m3, per_order
	DateFrom string          `json:"date_from"`         // YYYY-MM-DD, vacío = hoy
	DateTo   string          `json:"date_to,omitempty"` // YYYY-MM-DD, vacío = sin fin
}

// PurchaseEntryRequest body para registrar una compra con precio.
type PurchaseEntryRequest struct {
	ResourceID    string          `json:"resource_id"`
	Supplier      string          `json:"supplier"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPriceHT   decimal.Decimal `json:"unit_price_ht"`
	TaxRatePct    decimal.Decimal `json:"tax_rate_pct"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	InvoiceDate   string          `json:"invoice_date"` // YYYY-MM-DD
}
