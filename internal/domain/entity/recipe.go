package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe receta que rinde NormAmount porciones.
type Recipe struct {
	ID          string
	Name        string
	NormAmount  int // porciones normalizadas (>0)
	Procedure   string
	Comment     string
	Ingredients []RecipeIngredient
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeIngredient línea de la receta; Amount es relativo a NormAmount porciones.
type RecipeIngredient struct {
	ID        string
	RecipeID  string
	ArticleID string
	Amount    decimal.Decimal
	Unit      string
	Comment   string
	Position  int
}
