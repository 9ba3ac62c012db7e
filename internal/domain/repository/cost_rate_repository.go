package repository

import (
	"context"
	"time"

	"github.com/betonpro/beton-api/internal/domain/entity"
)

// CostRateRepository define el puerto de persistencia para tarifas de costo
// configurables (mano de obra, frais generales, transporte).
type CostRateRepository interface {
	Create(ctx context.Context, r *entity.CostRate) error
	// ActiveForDate tarifas activas de una categoría y unidad cuyo período
	// cubre la fecha dada, más recientes primero.
	ActiveForDate(ctx context.Context, category, unit string, date time.Time) ([]*entity.CostRate, error)
	List(ctx context.Context, category string) ([]*entity.CostRate, error)
}
