package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betonpro/beton-api/internal/application/stock"
	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
)

func sandResource() *entity.Resource {
	return &entity.Resource{
		ID:                "res-sand",
		Name:              "Arena 0/4",
		Kind:              entity.ResourceKindMaterial,
		Unit:              "kg",
		CriticalThreshold: dec(100),
		LowThreshold:      dec(500),
	}
}

// Fórmula C25/30: 350 kg de cemento y 680 kg de arena por m³ de referencia.
func c25Formula() *entity.Formula {
	return &entity.Formula{
		ID:             "formula-c25",
		Name:           "C25/30",
		StrengthClass:  "C25/30",
		ReferenceYield: dec(1),
		Components: []entity.FormulaComponent{
			{ResourceID: "res-cement", ResourceName: "Cemento CEM II", Quantity: dec(350)},
			{ResourceID: "res-sand", ResourceName: "Arena 0/4", Quantity: dec(680)},
		},
	}
}

type consumptionFixture struct {
	uc     *stock.ConsumptionUseCase
	ledger *stock.LedgerUseCase
	tr     *fakeTxRunner
}

func newConsumptionFixture(t *testing.T, blockOnShortage bool) *consumptionFixture {
	t.Helper()
	tr := &fakeTxRunner{
		resources:    newFakeResourceRepo(cementResource(), sandResource()),
		movements:    &fakeMovementRepo{},
		alerts:       &fakeAlertRepo{},
		consumptions: newFakeConsumptionRepo(),
		purchases:    &fakePurchaseRepo{},
	}
	evaluator := stock.NewAlertEvaluator(0)
	formulas := newFakeFormulaRepo(c25Formula())
	return &consumptionFixture{
		uc:     stock.NewConsumptionUseCase(tr, formulas, tr.movements, tr.resources, evaluator, blockOnShortage),
		ledger: stock.NewLedgerUseCase(tr, tr.movements, tr.resources, evaluator),
		tr:     tr,
	}
}

func (f *consumptionFixture) seed(t *testing.T, resourceID string, qty float64) {
	t.Helper()
	_, err := f.ledger.RecordMovement(context.Background(), stock.RecordMovementInput{
		ResourceID: resourceID, Kind: entity.MovementEntry, Quantity: dec(qty),
	})
	require.NoError(t, err)
}

func (f *consumptionFixture) balance(t *testing.T, resourceID string) float64 {
	t.Helper()
	b, err := f.ledger.CurrentBalance(context.Background(), resourceID)
	require.NoError(t, err)
	v, _ := b.Float64()
	return v
}

func TestConsumo_GeneraSalidasEscaladasPorFormula(t *testing.T) {
	f := newConsumptionFixture(t, true)
	f.seed(t, "res-cement", 10000)
	f.seed(t, "res-sand", 10000)

	cons, err := f.uc.ApplyConsumption(context.Background(), stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-c25", Quantity: dec(10), UserID: "u1",
	})
	require.NoError(t, err)
	assert.True(t, cons.Computed)
	assert.Len(t, cons.MovementIDs, 2)

	// 10 m³ × 350 = 3500 de cemento, 10 × 680 = 6800 de arena.
	assert.Equal(t, 6500.0, f.balance(t, "res-cement"))
	assert.Equal(t, 3200.0, f.balance(t, "res-sand"))

	movs, err := f.tr.movements.ListBySourceRef(context.Background(), entity.OrderSourceRef("o1"))
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementExit, m.Kind)
	}
}

func TestConsumo_IdempotenciaSinForce(t *testing.T) {
	f := newConsumptionFixture(t, true)
	f.seed(t, "res-cement", 10000)
	f.seed(t, "res-sand", 10000)
	ctx := context.Background()

	_, err := f.uc.ApplyConsumption(ctx, stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-c25", Quantity: dec(10),
	})
	require.NoError(t, err)

	_, err = f.uc.ApplyConsumption(ctx, stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-c25", Quantity: dec(10),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyComputed)

	// Sin efectos: los saldos no cambian con el segundo intento.
	assert.Equal(t, 6500.0, f.balance(t, "res-cement"))
	assert.Equal(t, 3200.0, f.balance(t, "res-sand"))
}

func TestConsumo_ForceRevierteYNoDuplicaDescuento(t *testing.T) {
	f := newConsumptionFixture(t, true)
	f.seed(t, "res-cement", 10000)
	f.seed(t, "res-sand", 10000)
	ctx := context.Background()

	_, err := f.uc.ApplyConsumption(ctx, stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-c25", Quantity: dec(10),
	})
	require.NoError(t, err)

	// Recomputar con otra cantidad: el efecto neto es solo la nueva aplicación.
	cons, err := f.uc.ApplyConsumption(ctx, stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-c25", Quantity: dec(5), Force: true,
	})
	require.NoError(t, err)
	assert.True(t, cons.Computed)
	assert.True(t, cons.Quantity.Equal(dec(5)))

	assert.Equal(t, 10000-5*350.0, f.balance(t, "res-cement"))
	assert.Equal(t, 10000-5*680.0, f.balance(t, "res-sand"))

	// El libro conserva los movimientos originales, marcados como revertidos.
	movs, err := f.tr.movements.ListBySourceRef(ctx, entity.OrderSourceRef("o1"))
	require.NoError(t, err)
	assert.Len(t, movs, 4)
}

func TestConsumo_VerificacionDeDisponibilidad(t *testing.T) {
	f := newConsumptionFixture(t, true)
	// 100 de cemento disponibles, se requieren 150 → faltan 50.
	f.seed(t, "res-cement", 100)
	f.seed(t, "res-sand", 10000)

	formulaRepo := newFakeFormulaRepo(&entity.Formula{
		ID:             "formula-x",
		Name:           "X",
		ReferenceYield: dec(1),
		Components: []entity.FormulaComponent{
			{ResourceID: "res-cement", ResourceName: "Cemento CEM II", Quantity: dec(150)},
		},
	})
	uc := stock.NewConsumptionUseCase(f.tr, formulaRepo, f.tr.movements, f.tr.resources, stock.NewAlertEvaluator(0), true)

	result, err := uc.VerifyAvailability(context.Background(), "formula-x", dec(1))
	require.NoError(t, err)
	assert.False(t, result.Sufficient)
	require.Len(t, result.Shortages, 1)

	s := result.Shortages[0]
	assert.Equal(t, "res-cement", s.ResourceID)
	assert.True(t, s.Required.Equal(dec(150)))
	assert.True(t, s.Available.Equal(dec(100)))
	assert.True(t, s.Missing.Equal(dec(50)))

	// La verificación es solo lectura: nada cambió en el libro.
	assert.Equal(t, 100.0, f.balance(t, "res-cement"))
}

func TestConsumo_PoliticaBloqueanteAnteFaltante(t *testing.T) {
	f := newConsumptionFixture(t, true)
	f.seed(t, "res-cement", 100)
	f.seed(t, "res-sand", 10000)
	ctx := context.Background()

	_, err := f.uc.ApplyConsumption(ctx, stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-c25", Quantity: dec(10),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortage *stock.ShortageError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortages, 1)
	assert.Equal(t, "res-cement", shortage.Shortages[0].ResourceID)

	// Bloqueo sin efectos parciales.
	assert.Equal(t, 100.0, f.balance(t, "res-cement"))
	assert.Equal(t, 10000.0, f.balance(t, "res-sand"))
}

func TestConsumo_PoliticaNoBloqueanteRegistraIgualmente(t *testing.T) {
	f := newConsumptionFixture(t, false)
	f.seed(t, "res-cement", 100)
	f.seed(t, "res-sand", 10000)

	cons, err := f.uc.ApplyConsumption(context.Background(), stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-c25", Quantity: dec(10),
	})
	require.NoError(t, err)
	assert.True(t, cons.Computed)

	// El saldo queda negativo: el libro registra la realidad.
	assert.Equal(t, 100-3500.0, f.balance(t, "res-cement"))
}

func TestConsumo_ForceOmiteElBloqueo(t *testing.T) {
	f := newConsumptionFixture(t, true)
	f.seed(t, "res-cement", 100)
	f.seed(t, "res-sand", 10000)

	_, err := f.uc.ApplyConsumption(context.Background(), stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-c25", Quantity: dec(10), Force: true,
	})
	require.NoError(t, err, "force omite la política de bloqueo")
}

func TestConsumo_FormulaDesconocida(t *testing.T) {
	f := newConsumptionFixture(t, true)

	_, err := f.uc.ApplyConsumption(context.Background(), stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-nope", Quantity: dec(1),
	})
	assert.ErrorIs(t, err, domain.ErrFormulaNotFound)
}

func TestConsumo_CantidadInvalida(t *testing.T) {
	f := newConsumptionFixture(t, true)

	_, err := f.uc.ApplyConsumption(context.Background(), stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-c25", Quantity: dec(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestConsumo_EvaluaAlertasDeMateriasConsumidas(t *testing.T) {
	f := newConsumptionFixture(t, true)
	f.seed(t, "res-cement", 3600) // tras consumir 3500 quedan 100 <= bajo (200)
	f.seed(t, "res-sand", 10000)

	_, err := f.uc.ApplyConsumption(context.Background(), stock.ApplyConsumptionInput{
		OrderID: "o1", FormulaID: "formula-c25", Quantity: dec(10),
	})
	require.NoError(t, err)

	open := f.tr.alerts.open("res-cement")
	require.Len(t, open, 1)
	assert.Equal(t, entity.AlertSeverityLow, open[0].Severity)
	assert.Empty(t, f.tr.alerts.open("res-sand"))
}
