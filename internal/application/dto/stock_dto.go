package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/stock/movements.
type RecordMovementRequest struct {
	ResourceID  string          `json:"resource_id"`
	Kind        string          `json:"kind"` // entry, exit
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description,omitempty"`
	SourceRef   string          `json:"source_ref,omitempty"`
}

// MovementResponse movimiento serializado.
type MovementResponse struct {
	ID          string          `json:"id"`
	ResourceID  string          `json:"resource_id"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description,omitempty"`
	SourceRef   string          `json:"source_ref,omitempty"`
	Reversed    bool            `json:"reversed"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// BalanceResponse saldo derivado de una materia.
type BalanceResponse struct {
	ResourceID string          `json:"resource_id"`
	Balance    decimal.Decimal `json:"balance"`
	Unit       string          `json:"unit"`
	AsOf       *time.Time      `json:"as_of,omitempty"`
}

// ResourceRequest body para crear/actualizar una materia rastreable.
type ResourceRequest struct {
	Name              string          `json:"name"`
	Kind              string          `json:"kind"` // material, fuel
	Unit              string          `json:"unit"`
	CriticalThreshold decimal.Decimal `json:"critical_threshold"`
	LowThreshold      decimal.Decimal `json:"low_threshold"`
}

// Shortage detalle de una materia insuficiente para una producción.
type Shortage struct {
	ResourceID   string          `json:"resource_id"`
	ResourceName string          `json:"resource_name"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Missing      decimal.Decimal `json:"missing"`
}

// AvailabilityResult resultado de la verificación de disponibilidad (dry-run).
type AvailabilityResult struct {
	Sufficient bool       `json:"sufficient"`
	Shortages  []Shortage `json:"shortages"`
}

// ApplyConsumptionRequest body para POST /api/production/orders/:id/consume.
type ApplyConsumptionRequest struct {
	FormulaID string          `json:"formula_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ConsumptionResponse resultado de la aplicación de un consumo de producción.
type ConsumptionResponse struct {
	OrderID     string    `json:"order_id"`
	FormulaID   string    `json:"formula_id"`
	Computed    bool      `json:"computed"`
	MovementIDs []string  `json:"movement_ids"`
	ComputedAt  time.Time `json:"computed_at"`
}

// MovementListResponse página de movimientos de una materia.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AlertResponse alerta de stock serializada.
type AlertResponse struct {
	ID           string          `json:"id"`
	ResourceID   string          `json:"resource_id"`
	ResourceName string          `json:"resource_name,omitempty"`
	Severity     string          `json:"severity"`
	Balance      decimal.Decimal `json:"balance"`
	Threshold    decimal.Decimal `json:"threshold"`
	Message      string          `json:"message"`
	Acknowledged bool            `json:"acknowledged"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AlertListResponse página de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
