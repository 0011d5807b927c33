package inventory

import (
	"fmt"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// QuantityPlaces redondeo de la cantidad escalada, en la unidad del ingrediente.
const QuantityPlaces = 2

// Requirement cantidad requerida de un artículo, expresada en su unidad nativa.
type Requirement struct {
	ArticleID string
	Quantity  decimal.Decimal
	Unit      string
}

// ExpandRecipe escala los ingredientes de la receta a targetPortions porciones.
// Cada cantidad se escala por targetPortions/NormAmount y se redondea a 2 decimales (half-up)
// en la unidad del ingrediente; luego se convierte a la unidad nativa del artículo y se lleva
// a la escala del libro (LedgerPlaces), que es lo que guarda la línea de salida.
// Un ingrediente con unidad no conciliable retorna *domain.RecipeUnitsError.
func ExpandRecipe(recipe *entity.Recipe, articles map[string]*entity.Article, targetPortions int) ([]Requirement, error) {
	if recipe == nil || recipe.NormAmount <= 0 || targetPortions <= 0 {
		return nil, domain.ErrInvalidInput
	}
	factor := decimal.NewFromInt(int64(targetPortions)).Div(decimal.NewFromInt(int64(recipe.NormAmount)))

	out := make([]Requirement, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		article, ok := articles[ing.ArticleID]
		if !ok || article == nil {
			return nil, fmt.Errorf("receta %q: artículo %s: %w", recipe.Name, ing.ArticleID, domain.ErrNotFound)
		}
		scaled := ing.Amount.Mul(factor).Round(QuantityPlaces)
		qty, err := ToNative(scaled, ing.Unit, article.Unit)
		if err != nil {
			return nil, &domain.RecipeUnitsError{
				RecipeID:   recipe.ID,
				RecipeName: recipe.Name,
				ArticleID:  article.ID,
				Err:        err,
			}
		}
		out = append(out, Requirement{ArticleID: article.ID, Quantity: qty, Unit: article.Unit})
	}
	return out, nil
}
