package inventory_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArticles() map[string]*entity.Article {
	return map[string]*entity.Article{
		"flour": {ID: "flour", Name: "Harina", Unit: "kg", OnStock: d("20")},
		"milk":  {ID: "milk", Name: "Leche", Unit: "l", OnStock: d("10")},
		"egg":   {ID: "egg", Name: "Huevo", Unit: "ks", OnStock: d("30")},
	}
}

func pancakes() *entity.Recipe {
	return &entity.Recipe{
		ID:         "r1",
		Name:       "Panqueques",
		NormAmount: 10,
		Ingredients: []entity.RecipeIngredient{
			{ArticleID: "flour", Amount: d("500"), Unit: "g"},
			{ArticleID: "milk", Amount: d("0.75"), Unit: "l"},
			{ArticleID: "egg", Amount: d("4"), Unit: "ks"},
		},
	}
}

func TestExpandRecipe_EscalaYConvierte(t *testing.T) {
	reqs, err := inventory.ExpandRecipe(pancakes(), testArticles(), 25)
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	assert.Equal(t, "flour", reqs[0].ArticleID)
	assert.Equal(t, "kg", reqs[0].Unit)
	assert.True(t, d("1.25").Equal(reqs[0].Quantity), "got %s", reqs[0].Quantity)
	assert.True(t, d("1.88").Equal(reqs[1].Quantity), "half-up de 1.875, got %s", reqs[1].Quantity)
	assert.True(t, d("10").Equal(reqs[2].Quantity))
}

// Expandir al doble de porciones duplica cada cantidad.
func TestExpandRecipe_Lineal(t *testing.T) {
	recipe := pancakes()
	base, err := inventory.ExpandRecipe(recipe, testArticles(), recipe.NormAmount)
	require.NoError(t, err)
	double, err := inventory.ExpandRecipe(recipe, testArticles(), 2*recipe.NormAmount)
	require.NoError(t, err)

	require.Len(t, double, len(base))
	for i := range base {
		assert.True(t, base[i].Quantity.Mul(d("2")).Equal(double[i].Quantity),
			"%s: %s x2 != %s", base[i].ArticleID, base[i].Quantity, double[i].Quantity)
	}
}

func TestExpandRecipe_UnidadIncorrecta(t *testing.T) {
	recipe := pancakes()
	recipe.Ingredients[2].Unit = "g" // huevos en gramos, artículo en piezas

	_, err := inventory.ExpandRecipe(recipe, testArticles(), 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRecipeUnits))
	assert.True(t, errors.Is(err, domain.ErrIncompatibleUnits))

	var rerr *domain.RecipeUnitsError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "egg", rerr.ArticleID)
	assert.Equal(t, "Panqueques", rerr.RecipeName)
}

func TestExpandRecipe_PorcionesInvalidas(t *testing.T) {
	_, err := inventory.ExpandRecipe(pancakes(), testArticles(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpandRecipe_EscalaDelLibro(t *testing.T) {
	articles := map[string]*entity.Article{"salt": {ID: "salt", Name: "Sal", Unit: "kg"}}
	recipe := &entity.Recipe{
		ID: "r2", Name: "Caldo", NormAmount: 1,
		Ingredients: []entity.RecipeIngredient{{ArticleID: "salt", Amount: d("12.345"), Unit: "g"}},
	}

	// 12.345 g → 12.35 g → 0.01235 kg → 0.0124 kg
	reqs, err := inventory.ExpandRecipe(recipe, articles, 1)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.True(t, d("0.0124").Equal(reqs[0].Quantity), "got %s", reqs[0].Quantity)
	assert.True(t, reqs[0].Quantity.Equal(inventory.RoundQuantity(reqs[0].Quantity)))

	recipe.Ingredients[0].Amount = d("0.01")
	reqs, err = inventory.ExpandRecipe(recipe, articles, 1)
	require.NoError(t, err)
	assert.True(t, reqs[0].Quantity.IsZero())
}
