package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betonpro/beton-api/internal/application/stock"
	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func newLedgerFixture(resources ...*entity.Resource) (*stock.LedgerUseCase, *fakeTxRunner) {
	tr := &fakeTxRunner{
		resources:    newFakeResourceRepo(resources...),
		movements:    &fakeMovementRepo{},
		alerts:       &fakeAlertRepo{},
		consumptions: newFakeConsumptionRepo(),
		purchases:    &fakePurchaseRepo{},
	}
	uc := stock.NewLedgerUseCase(tr, tr.movements, tr.resources, stock.NewAlertEvaluator(0))
	return uc, tr
}

func cementResource() *entity.Resource {
	return &entity.Resource{
		ID:                "res-cement",
		Name:              "Cemento CEM II",
		Kind:              entity.ResourceKindMaterial,
		Unit:              "kg",
		CriticalThreshold: dec(50),
		LowThreshold:      dec(200),
	}
}

func TestLedger_SaldoDerivadoDelLibro(t *testing.T) {
	uc, _ := newLedgerFixture(cementResource())
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, stock.RecordMovementInput{
		ResourceID: "res-cement", Kind: entity.MovementEntry, Quantity: dec(1000), UserID: "u1",
	})
	require.NoError(t, err)
	_, err = uc.RecordMovement(ctx, stock.RecordMovementInput{
		ResourceID: "res-cement", Kind: entity.MovementExit, Quantity: dec(300), UserID: "u1",
	})
	require.NoError(t, err)

	balance, err := uc.CurrentBalance(ctx, "res-cement")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec(700)), "saldo = entradas - salidas, obtuvo %s", balance)
}

func TestLedger_MateriaSinMovimientosSaldoCero(t *testing.T) {
	uc, _ := newLedgerFixture(cementResource())

	balance, err := uc.CurrentBalance(context.Background(), "res-cement")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestLedger_CantidadNoPositivaRechazada(t *testing.T) {
	uc, _ := newLedgerFixture(cementResource())
	ctx := context.Background()

	for _, qty := range []decimal.Decimal{decimal.Zero, dec(-5)} {
		_, err := uc.RecordMovement(ctx, stock.RecordMovementInput{
			ResourceID: "res-cement", Kind: entity.MovementEntry, Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestLedger_TipoDesconocidoRechazado(t *testing.T) {
	uc, _ := newLedgerFixture(cementResource())

	_, err := uc.RecordMovement(context.Background(), stock.RecordMovementInput{
		ResourceID: "res-cement", Kind: "transfer", Quantity: dec(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_MateriaDesconocida(t *testing.T) {
	uc, _ := newLedgerFixture(cementResource())

	_, err := uc.RecordMovement(context.Background(), stock.RecordMovementInput{
		ResourceID: "res-nope", Kind: entity.MovementEntry, Quantity: dec(10),
	})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	_, err = uc.CurrentBalance(context.Background(), "res-nope")
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestLedger_SaldoHistoricoConAsOf(t *testing.T) {
	uc, tr := newLedgerFixture(cementResource())
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, stock.RecordMovementInput{
		ResourceID: "res-cement", Kind: entity.MovementEntry, Quantity: dec(1000),
	})
	require.NoError(t, err)

	// Retrodatar el primer movimiento y añadir una salida posterior.
	cut := time.Now()
	tr.movements.items[0].OccurredAt = cut.Add(-2 * time.Hour)

	_, err = uc.RecordMovement(ctx, stock.RecordMovementInput{
		ResourceID: "res-cement", Kind: entity.MovementExit, Quantity: dec(400),
	})
	require.NoError(t, err)

	historic, err := uc.BalanceAsOf(ctx, "res-cement", cut.Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, historic.Equal(dec(1000)), "saldo histórico no debe ver la salida posterior")

	current, err := uc.CurrentBalance(ctx, "res-cement")
	require.NoError(t, err)
	assert.True(t, current.Equal(dec(600)))
}

func TestLedger_MovimientosRevertidosNoCuentan(t *testing.T) {
	uc, tr := newLedgerFixture(cementResource())
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, stock.RecordMovementInput{
		ResourceID: "res-cement", Kind: entity.MovementEntry, Quantity: dec(500),
	})
	require.NoError(t, err)
	_, err = uc.RecordMovement(ctx, stock.RecordMovementInput{
		ResourceID: "res-cement", Kind: entity.MovementExit, Quantity: dec(200), SourceRef: "order:o1",
	})
	require.NoError(t, err)

	n, err := tr.movements.ReverseBySourceRef(ctx, "order:o1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	balance, err := uc.CurrentBalance(ctx, "res-cement")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec(500)), "la salida revertida no debe descontar")
}

func TestLedger_DeleteMovementRecalculaAlertas(t *testing.T) {
	uc, tr := newLedgerFixture(cementResource())
	ctx := context.Background()

	mov, err := uc.RecordMovement(ctx, stock.RecordMovementInput{
		ResourceID: "res-cement", Kind: entity.MovementEntry, Quantity: dec(1000),
	})
	require.NoError(t, err)

	// Borrar la única entrada deja el saldo en cero: debe abrirse una alerta.
	require.NoError(t, uc.DeleteMovement(ctx, mov.ID))

	balance, err := uc.CurrentBalance(ctx, "res-cement")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	open := tr.alerts.open("res-cement")
	require.Len(t, open, 1)
	assert.Equal(t, entity.AlertSeverityCritical, open[0].Severity)
}
