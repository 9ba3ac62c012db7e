package costing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// PriceQuote precio unitario resuelto con su procedencia. Estimated marca los
// precios de fallback para que los reportes distingan "estimado" de "real".
type PriceQuote struct {
	Price     decimal.Decimal // TTC, redondeado a 2 decimales
	Estimated bool
}

// PriceResolver deriva precios unitarios promedio a partir del histórico de
// compras. Sin compras en el rango cae a una tabla estática por nombre de
// materia; el fallback nunca es silencioso, se registra y se marca Estimated.
type PriceResolver struct {
	purchaseRepo repository.PurchaseRepository
	resRepo      repository.ResourceRepository
}

// NewPriceResolver construye el resolvedor de precios.
func NewPriceResolver(purchaseRepo repository.PurchaseRepository, resRepo repository.ResourceRepository) *PriceResolver {
	return &PriceResolver{purchaseRepo: purchaseRepo, resRepo: resRepo}
}

// AverageUnitPrice promedio aritmético simple de los precios unitarios antes
// de impuestos de las compras en el rango, con el promedio de tasas de
// impuesto aplicado encima. Es deliberadamente no ponderado por cantidad para
// reproducir el comportamiento histórico del cálculo de costos.
func (r *PriceResolver) AverageUnitPrice(ctx context.Context, resourceID string, from, to time.Time) (PriceQuote, error) {
	res, err := r.resRepo.GetByID(ctx, resourceID)
	if err != nil {
		return PriceQuote{}, err
	}
	if res == nil {
		return PriceQuote{}, domain.ErrResourceNotFound
	}

	entries, err := r.purchaseRepo.ListByResourceInRange(ctx, resourceID, from, to)
	if err != nil {
		return PriceQuote{}, err
	}
	if len(entries) == 0 {
		price := DefaultUnitPrice(res.Name)
		if price.IsZero() {
			return PriceQuote{}, fmt.Errorf("precio de %s: %w", res.Name, domain.ErrStaleConfiguration)
		}
		log.Warn().Str("resource", res.Name).Str("default_price", price.String()).
			Msg("sin compras en el rango: usando precio por defecto (estimado)")
		return PriceQuote{Price: price.Round(2), Estimated: true}, nil
	}

	sumHT := decimal.Zero
	sumTax := decimal.Zero
	for _, e := range entries {
		sumHT = sumHT.Add(e.UnitPriceHT)
		sumTax = sumTax.Add(e.TaxRatePct)
	}
	n := decimal.NewFromInt(int64(len(entries)))
	meanHT := sumHT.Div(n)
	meanTax := sumTax.Div(n)
	price := meanHT.Mul(decimal.NewFromInt(1).Add(meanTax.Div(decimal.NewFromInt(100))))
	return PriceQuote{Price: price.Round(2)}, nil
}

// DefaultUnitPrice tabla estática de precios por categoría gruesa de materia,
// expresados por unidad de medida de la materia. Cero para materias no
// reconocidas: el resolvedor lo trata como configuración faltante
// (ErrStaleConfiguration), nunca como precio gratuito.
func DefaultUnitPrice(resourceName string) decimal.Decimal {
	name := strings.ToLower(resourceName)
	switch {
	case containsAny(name, "cement", "cemento", "ciment"):
		return decimal.NewFromFloat(0.12) // por kg
	case containsAny(name, "sand", "arena", "sable"):
		return decimal.NewFromFloat(0.02) // por kg
	case containsAny(name, "gravel", "grava", "gravier", "granulat", "aggregate", "árido"):
		return decimal.NewFromFloat(0.015) // por kg
	case containsAny(name, "water", "agua", "eau"):
		return decimal.NewFromFloat(0.001) // por litro
	case containsAny(name, "admixture", "aditivo", "adjuvant", "plastif"):
		return decimal.NewFromFloat(3.0) // por litro
	default:
		return decimal.Zero
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
