package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrResourceNotFound   = errors.New("materia rastreable no encontrada")
	ErrFormulaNotFound    = errors.New("fórmula no encontrada")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida: debe ser mayor que cero")
	ErrInvalidFormula     = errors.New("fórmula inválida: rendimiento no positivo o composición vacía")
	ErrInvalidThresholds  = errors.New("umbrales inválidos: crítico debe ser <= bajo y no negativos")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAlreadyComputed    = errors.New("las salidas de materias ya fueron calculadas para esta orden")
	ErrStaleConfiguration = errors.New("sin tarifa activa vigente ni valor por defecto utilizable")
)
