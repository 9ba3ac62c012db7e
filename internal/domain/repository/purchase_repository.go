package repository

import (
	"context"
	"time"

	"github.com/betonpro/beton-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para entradas de compra
// (histórico de precios para el motor de costos).
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.PurchaseEntry) error
	// ListByResourceInRange entradas de una materia con fecha de factura dentro
	// del rango [from, to].
	ListByResourceInRange(ctx context.Context, resourceID string, from, to time.Time) ([]*entity.PurchaseEntry, error)
}
