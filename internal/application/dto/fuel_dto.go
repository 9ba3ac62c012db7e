package dto

import "github.com/shopspring/decimal"

// RecordRefuelRequest body para POST /api/fuel/refuels (aprovisionamiento de gasoil).
// Registra en una sola transacción la entrada de stock y la compra con precio.
type RecordRefuelRequest struct {
	ResourceID    string          `json:"resource_id"`
	Supplier      string          `json:"supplier"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPriceHT   decimal.Decimal `json:"unit_price_ht"`
	TaxRatePct    decimal.Decimal `json:"tax_rate_pct"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// RecordFuelConsumptionRequest body para POST /api/fuel/consumptions.
type RecordFuelConsumptionRequest struct {
	ResourceID     string           `json:"resource_id"`
	EquipmentID    string           `json:"equipment_id"`
	Quantity       decimal.Decimal  `json:"quantity"`
	OperatingHours *decimal.Decimal `json:"operating_hours,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// EquipmentRequest body para POST /api/fuel/equipment.
type EquipmentRequest struct {
	Name                  string          `json:"name"`
	Category              string          `json:"category"` // mixer, camion, cargador...
	Registration          string          `json:"registration,omitempty"`
	AvgConsumptionPerHour decimal.Decimal `json:"avg_consumption_per_hour"`
}

// EquipmentConsumptionResponse total consumido por un engin en un rango.
type EquipmentConsumptionResponse struct {
	EquipmentID string          `json:"equipment_id"`
	Total       decimal.Decimal `json:"total"`
}
