package costing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betonpro/beton-api/internal/application/dto"
	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/formula"
	"github.com/betonpro/beton-api/internal/domain/repository"
)

// Claves de defaults aceptadas en la simulación de costos, con sus valores
// cuando no existe tarifa activa ni override del caller.
const (
	DefaultLaborHourlyRate    = "labor_hourly_rate"     // 25.0 por hora
	DefaultLaborHoursPerUnit  = "labor_hours_per_unit"  // 1.0 h por m³
	DefaultSocialChargesPct   = "social_charges_pct"    // 45.0 %
	DefaultOverheadFixed      = "overhead_fixed"        // 50.0
	DefaultOverheadAmort      = "overhead_amortization" // 20.0
	DefaultOverheadInsurance  = "overhead_insurance"    // 15.0
	DefaultOverheadVariablePc = "overhead_variable_pct" // 5.0 % de materias + mano de obra
	DefaultTransportDistance  = "transport_distance_km" // 10.0 km
	DefaultTransportPerKm     = "transport_cost_per_km" // 1.5 por km
	DefaultTransportFixed     = "transport_fixed"       // 25.0
)

// Horas de producción por m³ cuando existe tarifa horaria activa en BD.
var dbLaborHoursPerUnit = decimal.NewFromFloat(0.5)

// CostingUseCase calcula el costo de revient de una fórmula: materias (vía
// PriceResolver), mano de obra, frais generales y transporte, cada uno con vía
// de tarifa activa en BD y vía de valores por defecto. Todos los montos se
// redondean a 2 decimales en el punto de cálculo.
type CostingUseCase struct {
	formulaRepo  repository.FormulaRepository
	rateRepo     repository.CostRateRepository
	prices       *PriceResolver
	priceWindow  time.Duration
	now          func() time.Time
}

// NewCostingUseCase construye el motor de costos. priceWindow es el rango
// hacia atrás desde hoy usado para promediar precios de compra (<= 0 usa 365 días).
func NewCostingUseCase(
	formulaRepo repository.FormulaRepository,
	rateRepo repository.CostRateRepository,
	prices *PriceResolver,
	priceWindow time.Duration,
) *CostingUseCase {
	if priceWindow <= 0 {
		priceWindow = 365 * 24 * time.Hour
	}
	return &CostingUseCase{
		formulaRepo: formulaRepo,
		rateRepo:    rateRepo,
		prices:      prices,
		priceWindow: priceWindow,
		now:         time.Now,
	}
}

// CostFormula simula el costo de producir quantity con la fórmula dada.
func (uc *CostingUseCase) CostFormula(ctx context.Context, formulaID string, quantity decimal.Decimal, defaults map[string]decimal.Decimal) (*dto.CostSimulation, error) {
	f, err := uc.formulaRepo.GetByID(ctx, formulaID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrFormulaNotFound
	}
	required, err := formula.ResolveRequiredQuantities(f, quantity)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	estimated := false

	materials := make([]dto.MaterialCost, 0, len(f.Components))
	materialsCost := decimal.Zero
	for _, comp := range f.Components {
		quote, err := uc.prices.AverageUnitPrice(ctx, comp.ResourceID, now.Add(-uc.priceWindow), now)
		if err != nil {
			return nil, err
		}
		req := required[comp.ResourceID]
		cost := req.Mul(quote.Price).Round(2)
		materialsCost = materialsCost.Add(cost)
		estimated = estimated || quote.Estimated
		materials = append(materials, dto.MaterialCost{
			ResourceID:   comp.ResourceID,
			ResourceName: comp.ResourceName,
			Required:     req,
			UnitPrice:    quote.Price,
			Cost:         cost,
			Estimated:    quote.Estimated,
		})
	}

	laborCost, laborEstimated, err := uc.laborCost(ctx, quantity, defaults, now)
	if err != nil {
		return nil, err
	}
	estimated = estimated || laborEstimated

	overheadCost, overheadEstimated, err := uc.overheadCost(ctx, quantity, materialsCost.Add(laborCost), defaults, now)
	if err != nil {
		return nil, err
	}
	estimated = estimated || overheadEstimated

	transportCost, transportEstimated, err := uc.transportCost(ctx, defaults, now)
	if err != nil {
		return nil, err
	}
	estimated = estimated || transportEstimated

	total := materialsCost.Add(laborCost).Add(overheadCost).Add(transportCost).Round(2)
	perUnit := decimal.Zero
	if quantity.GreaterThan(decimal.Zero) {
		perUnit = total.Div(quantity).Round(2)
	}

	return &dto.CostSimulation{
		FormulaID:     f.ID,
		FormulaName:   f.Name,
		Quantity:      quantity,
		Unit:          "m3",
		MaterialsCost: materialsCost.Round(2),
		LaborCost:     laborCost,
		OverheadCost:  overheadCost,
		TransportCost: transportCost,
		TotalCost:     total,
		PerUnitCost:   perUnit,
		Materials:     materials,
		Estimated:     estimated,
	}, nil
}

// laborCost vía tarifa horaria activa (0.5 h por m³) o defaults
// (horas por m³ configurables más cargas sociales).
func (uc *CostingUseCase) laborCost(ctx context.Context, quantity decimal.Decimal, defaults map[string]decimal.Decimal, now time.Time) (decimal.Decimal, bool, error) {
	rates, err := uc.rateRepo.ActiveForDate(ctx, entity.CostCategoryLabor, entity.CostUnitPerHour, now)
	if err != nil {
		return decimal.Zero, false, err
	}
	if len(rates) > 0 {
		hours := quantity.Mul(dbLaborHoursPerUnit)
		return hours.Mul(rates[0].Value).Round(2), false, nil
	}

	hourly := defaultOr(defaults, DefaultLaborHourlyRate, decimal.NewFromFloat(25.0))
	hoursPerUnit := defaultOr(defaults, DefaultLaborHoursPerUnit, decimal.NewFromFloat(1.0))
	chargesPct := defaultOr(defaults, DefaultSocialChargesPct, decimal.NewFromFloat(45.0))
	hours := quantity.Mul(hoursPerUnit)
	totalHourly := hourly.Mul(decimal.NewFromInt(1).Add(chargesPct.Div(decimal.NewFromInt(100))))
	return hours.Mul(totalHourly).Round(2), true, nil
}

// overheadCost suma las tarifas activas por m³; sin ninguna, fallback
// fijo + amortización + seguro + porcentaje variable sobre materias y mano de obra.
func (uc *CostingUseCase) overheadCost(ctx context.Context, quantity, materialsPlusLabor decimal.Decimal, defaults map[string]decimal.Decimal, now time.Time) (decimal.Decimal, bool, error) {
	rates, err := uc.rateRepo.ActiveForDate(ctx, entity.CostCategoryOverhead, entity.CostUnitPerM3, now)
	if err != nil {
		return decimal.Zero, false, err
	}
	total := decimal.Zero
	for _, r := range rates {
		total = total.Add(quantity.Mul(r.Value))
	}
	if total.GreaterThan(decimal.Zero) {
		return total.Round(2), false, nil
	}

	fixed := defaultOr(defaults, DefaultOverheadFixed, decimal.NewFromFloat(50.0))
	amort := defaultOr(defaults, DefaultOverheadAmort, decimal.NewFromFloat(20.0))
	insurance := defaultOr(defaults, DefaultOverheadInsurance, decimal.NewFromFloat(15.0))
	varPct := defaultOr(defaults, DefaultOverheadVariablePc, decimal.NewFromFloat(5.0))
	variable := materialsPlusLabor.Mul(varPct.Div(decimal.NewFromInt(100)))
	return fixed.Add(amort).Add(insurance).Add(variable).Round(2), true, nil
}

// transportCost tarifa activa por orden o fallback distancia × costo/km + fijo.
func (uc *CostingUseCase) transportCost(ctx context.Context, defaults map[string]decimal.Decimal, now time.Time) (decimal.Decimal, bool, error) {
	rates, err := uc.rateRepo.ActiveForDate(ctx, entity.CostCategoryTransport, entity.CostUnitPerOrder, now)
	if err != nil {
		return decimal.Zero, false, err
	}
	if len(rates) > 0 {
		return rates[0].Value.Round(2), false, nil
	}

	distance := defaultOr(defaults, DefaultTransportDistance, decimal.NewFromFloat(10.0))
	perKm := defaultOr(defaults, DefaultTransportPerKm, decimal.NewFromFloat(1.5))
	fixed := defaultOr(defaults, DefaultTransportFixed, decimal.NewFromFloat(25.0))
	return distance.Mul(perKm).Add(fixed).Round(2), true, nil
}

func defaultOr(defaults map[string]decimal.Decimal, key string, fallback decimal.Decimal) decimal.Decimal {
	if defaults != nil {
		if v, ok := defaults[key]; ok {
			return v
		}
	}
	return fallback
}
