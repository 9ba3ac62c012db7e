package formula_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betonpro/beton-api/internal/domain"
	"github.com/betonpro/beton-api/internal/domain/entity"
	"github.com/betonpro/beton-api/internal/domain/formula"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func c25(yield float64) *entity.Formula {
	return &entity.Formula{
		ID:             "f1",
		Name:           "C25/30",
		StrengthClass:  "C25/30",
		ReferenceYield: dec(yield),
		Components: []entity.FormulaComponent{
			{ResourceID: "cement", Quantity: dec(350)},
			{ResourceID: "sand", Quantity: dec(680)},
		},
	}
}

func TestResolve_EscaladoLineal(t *testing.T) {
	// 350 kg de cemento y 680 kg de arena por m³; 10 m³ → 3500 y 6800.
	required, err := formula.ResolveRequiredQuantities(c25(1), dec(10))
	require.NoError(t, err)

	assert.True(t, required["cement"].Equal(dec(3500)))
	assert.True(t, required["sand"].Equal(dec(6800)))
}

func TestResolve_RendimientoDeReferenciaDistintoDeUno(t *testing.T) {
	// La composición describe 2 m³: producir 1 m³ requiere la mitad.
	required, err := formula.ResolveRequiredQuantities(c25(2), dec(1))
	require.NoError(t, err)

	assert.True(t, required["cement"].Equal(dec(175)))
	assert.True(t, required["sand"].Equal(dec(340)))
}

func TestResolve_Linealidad(t *testing.T) {
	for _, qty := range []float64{0.5, 1, 2.5, 7, 100} {
		required, err := formula.ResolveRequiredQuantities(c25(1), dec(qty))
		require.NoError(t, err)
		assert.True(t, required["cement"].Equal(dec(350).Mul(dec(qty))),
			"cantidad %v debe escalar linealmente", qty)
	}
}

func TestResolve_FormulaInvalida(t *testing.T) {
	cases := []struct {
		name string
		f    *entity.Formula
	}{
		{"nil", nil},
		{"rendimiento cero", &entity.Formula{
			ReferenceYield: decimal.Zero,
			Components:     []entity.FormulaComponent{{ResourceID: "x", Quantity: dec(1)}},
		}},
		{"rendimiento negativo", &entity.Formula{
			ReferenceYield: dec(-1),
			Components:     []entity.FormulaComponent{{ResourceID: "x", Quantity: dec(1)}},
		}},
		{"composición vacía", &entity.Formula{ReferenceYield: dec(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formula.ResolveRequiredQuantities(tc.f, dec(1))
			assert.ErrorIs(t, err, domain.ErrInvalidFormula)
		})
	}
}

func TestResolve_CantidadNoPositiva(t *testing.T) {
	for _, qty := range []decimal.Decimal{decimal.Zero, dec(-3)} {
		_, err := formula.ResolveRequiredQuantities(c25(1), qty)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}
