package inventory_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_DentroDelGrupo(t *testing.T) {
	cases := []struct {
		amount string
		from   string
		to     string
		want   string
	}{
		{"1", "kg", "g", "1000"},
		{"250", "g", "kg", "0.25"},
		{"2.5", "l", "ml", "2500"},
		{"330", "ml", "l", "0.33"},
		{"12", "ks", "ks", "12"},
		{"3", "KG", "g", "3000"},
		{"4", "pcs", "ks", "4"},
	}
	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			got, err := inventory.Convert(decimal.RequireFromString(tc.amount), tc.from, tc.to)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "got %s", got)
		})
	}
}

// La conversión ida y vuelta dentro de un grupo devuelve el valor original.
func TestConvert_IdaYVuelta(t *testing.T) {
	pairs := [][2]string{{"kg", "g"}, {"g", "kg"}, {"l", "ml"}, {"ml", "l"}, {"ks", "ks"}}
	values := []string{"0.01", "1", "7.25", "1234.5", "0.333"}
	for _, p := range pairs {
		for _, v := range values {
			x := decimal.RequireFromString(v)
			there, err := inventory.Convert(x, p[0], p[1])
			require.NoError(t, err)
			back, err := inventory.Convert(there, p[1], p[0])
			require.NoError(t, err)
			assert.True(t, x.Equal(back), "%s %s->%s->%s = %s", v, p[0], p[1], p[0], back)
		}
	}
}

func TestConvert_GruposDistintos(t *testing.T) {
	for _, to := range []string{"ks", "l", "ml"} {
		_, err := inventory.Convert(decimal.NewFromInt(1), "kg", to)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrIncompatibleUnits))

		var unitsErr *domain.IncompatibleUnitsError
		require.True(t, errors.As(err, &unitsErr))
		assert.Equal(t, "kg", unitsErr.From)
		assert.Equal(t, to, unitsErr.To)
	}
}

func TestConvert_UnidadDesconocida(t *testing.T) {
	_, err := inventory.Convert(decimal.NewFromInt(1), "oz", "g")
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)
}

func TestNormalizeUnit(t *testing.T) {
	u, ok := inventory.NormalizeUnit(" Piece ")
	assert.True(t, ok)
	assert.Equal(t, "ks", u)

	_, ok = inventory.NormalizeUnit("cup")
	assert.False(t, ok)

	assert.True(t, inventory.Compatible("kg", "g"))
	assert.False(t, inventory.Compatible("kg", "ml"))
}

func TestToNative_EscalaDelLibro(t *testing.T) {
	cases := []struct {
		amount, from, to, want string
	}{
		{"12.3457", "g", "kg", "0.0123"},
		{"0.05", "ml", "l", "0.0001"},
		{"0.04", "g", "kg", "0"},
		{"1.23456", "kg", "kg", "1.2346"},
		{"0.00001", "kg", "g", "0.01"},
	}
	for _, tc := range cases {
		got, err := inventory.ToNative(decimal.RequireFromString(tc.amount), tc.from, tc.to)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "%s %s→%s: got %s", tc.amount, tc.from, tc.to, got)
	}

	_, err := inventory.ToNative(decimal.NewFromInt(1), "kg", "ks")
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)
}
