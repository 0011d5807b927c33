package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida admitidas (grupos: masa kg/g, volumen l/ml, conteo ks).
const (
	UnitKilogram   = "kg"
	UnitGram       = "g"
	UnitLiter      = "l"
	UnitMilliliter = "ml"
	UnitPiece      = "ks"
)

// Article representa un artículo de bodega (ingrediente o mercancía).
// OnStock y AveragePrice solo se modifican al aprobar entradas y salidas.
type Article struct {
	ID           string
	Code         string // código único
	Name         string
	Unit         string           // unidad nativa de stock
	OnStock      decimal.Decimal  // nunca negativo
	AveragePrice *decimal.Decimal // promedio ponderado; nil hasta la primera entrada
	MinOnStock   decimal.Decimal  // umbral mínimo
	Allergens    []string         // códigos de alérgeno
	Comment      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AveragePriceOrZero devuelve el precio promedio o cero si aún no existe.
func (a *Article) AveragePriceOrZero() decimal.Decimal {
	if a.AveragePrice == nil {
		return decimal.Zero
	}
	return *a.AveragePrice
}

// TotalPrice valor del stock actual (OnStock * AveragePrice).
func (a *Article) TotalPrice() decimal.Decimal {
	return a.OnStock.Mul(a.AveragePriceOrZero())
}

// BelowMinimum indica si el stock está por debajo del umbral mínimo.
func (a *Article) BelowMinimum() bool {
	return a.OnStock.LessThan(a.MinOnStock)
}
