package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormulaComponentRequest componente de una fórmula al crearla.
type FormulaComponentRequest struct {
	ResourceID string          `json:"resource_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// FormulaRequest body para POST /api/production/formulas.
type FormulaRequest struct {
	Name           string                    `json:"name"`
	Description    string                    `json:"description,omitempty"`
	StrengthClass  string                    `json:"strength_class"` // e.g. "C25/30"
	ReferenceYield decimal.Decimal           `json:"reference_yield"`
	Components     []FormulaComponentRequest `json:"components"`
}

// FormulaComponentResponse componente serializado con nombre de materia.
type FormulaComponentResponse struct {
	ResourceID   string          `json:"resource_id"`
	ResourceName string          `json:"resource_name,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// FormulaResponse fórmula serializada con su composición.
type FormulaResponse struct {
	ID             string                     `json:"id"`
	Name           string                     `json:"name"`
	Description    string                     `json:"description,omitempty"`
	StrengthClass  string                     `json:"strength_class"`
	ReferenceYield decimal.Decimal            `json:"reference_yield"`
	Components     []FormulaComponentResponse `json:"components"`
	CreatedAt      time.Time                  `json:"created_at"`
}
