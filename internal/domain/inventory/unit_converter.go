package inventory

import (
	"strings"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Grupos de dimensión. Solo se convierte dentro del mismo grupo.
const (
	DimensionMass   = "mass"
	DimensionVolume = "volume"
	DimensionCount  = "count"
)

type unitDef struct {
	dimension string
	factor    int64 // múltiplo de la unidad base del grupo (g, ml, ks)
}

var units = map[string]unitDef{
	entity.UnitKilogram:   {DimensionMass, 1000},
	entity.UnitGram:       {DimensionMass, 1},
	entity.UnitLiter:      {DimensionVolume, 1000},
	entity.UnitMilliliter: {DimensionVolume, 1},
	entity.UnitPiece:      {DimensionCount, 1},
}

var unitAliases = map[string]string{
	"pc":    entity.UnitPiece,
	"pcs":   entity.UnitPiece,
	"piece": entity.UnitPiece,
	"ud":    entity.UnitPiece,
	"und":   entity.UnitPiece,
	"kgs":   entity.UnitKilogram,
	"gr":    entity.UnitGram,
	"lt":    entity.UnitLiter,
}

// NormalizeUnit devuelve la forma canónica de la unidad y si es conocida.
func NormalizeUnit(u string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(u))
	if alias, ok := unitAliases[s]; ok {
		s = alias
	}
	_, ok := units[s]
	return s, ok
}

// Dimension devuelve el grupo de dimensión de la unidad ("" si no es conocida).
func Dimension(u string) string {
	s, ok := NormalizeUnit(u)
	if !ok {
		return ""
	}
	return units[s].dimension
}

// Compatible indica si from y to pertenecen al mismo grupo de dimensión.
func Compatible(from, to string) bool {
	d := Dimension(from)
	return d != "" && d == Dimension(to)
}

// Convert convierte amount de la unidad from a la unidad to (escala lineal dentro del grupo).
// Retorna *domain.IncompatibleUnitsError si las unidades son desconocidas o de grupos distintos.
func Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	f, okFrom := NormalizeUnit(from)
	t, okTo := NormalizeUnit(to)
	if !okFrom || !okTo || units[f].dimension != units[t].dimension {
		return decimal.Zero, &domain.IncompatibleUnitsError{From: from, To: to}
	}
	ff, tf := units[f].factor, units[t].factor
	switch {
	case ff == tf:
		return amount, nil
	case ff > tf:
		return amount.Mul(decimal.NewFromInt(ff / tf)), nil
	default:
		return amount.Div(decimal.NewFromInt(tf / ff)), nil
	}
}

// LedgerPlaces escala de las cantidades del libro (NUMERIC(18,4) en Postgres).
// Toda cantidad que se persiste pasa por RoundQuantity, de modo que ambos almacenes guardan el mismo valor.
const LedgerPlaces = 4

// RoundQuantity redondea una cantidad a la escala del libro (half-up).
func RoundQuantity(q decimal.Decimal) decimal.Decimal {
	return q.Round(LedgerPlaces)
}

// ToNative convierte amount a la unidad del artículo y lo redondea a la escala del libro.
func ToNative(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	q, err := Convert(amount, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return RoundQuantity(q), nil
}
