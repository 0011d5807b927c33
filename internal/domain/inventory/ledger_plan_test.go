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

func strp(s string) *string { return &s }

var testVATs = map[string]*entity.VAT{"v15": {ID: "v15", Percentage: 15, Name: "reducida"}}

func TestPlanReceipt_CadenaDePromedios(t *testing.T) {
	articles := map[string]*entity.Article{"flour": {ID: "flour", Unit: "kg", OnStock: d("0")}}
	lines := []entity.DocumentLine{
		{ID: "l1", ArticleID: "flour", Amount: d("10"), Unit: "kg", PriceWithoutVat: dp("20"), VATID: strp("v15")},
		{ID: "l2", ArticleID: "flour", Amount: d("10000"), Unit: "g", PriceWithoutVat: dp("30"), VATID: strp("v15")},
	}

	plan, err := inventory.PlanReceipt(lines, articles, testVATs)
	require.NoError(t, err)

	flour := plan.Articles["flour"]
	assert.True(t, d("20").Equal(flour.OnStock))
	assert.True(t, d("25").Equal(*flour.AveragePrice))
	// 10*23 + 10*34.5
	assert.True(t, d("575").Equal(plan.Total), "got %s", plan.Total)

	// El mapa original no se modifica.
	assert.True(t, articles["flour"].OnStock.IsZero())
	assert.Nil(t, articles["flour"].AveragePrice)
}

func TestPlanReceipt_SinPrecioOSinIVA(t *testing.T) {
	articles := map[string]*entity.Article{"flour": {ID: "flour", Unit: "kg"}}

	_, err := inventory.PlanReceipt([]entity.DocumentLine{
		{ID: "l1", ArticleID: "flour", Amount: d("1"), Unit: "kg", VATID: strp("v15")},
	}, articles, testVATs)
	assert.ErrorIs(t, err, domain.ErrMissingPrice)

	_, err = inventory.PlanReceipt([]entity.DocumentLine{
		{ID: "l1", ArticleID: "flour", Amount: d("1"), Unit: "kg", PriceWithoutVat: dp("3")},
	}, articles, testVATs)
	assert.ErrorIs(t, err, domain.ErrMissingTaxRate)
}

func TestCheckIssue_ReportaTodosLosFaltantes(t *testing.T) {
	articles := testArticles()
	lines := []entity.DocumentLine{
		{ID: "l1", ArticleID: "flour", Amount: d("5"), Unit: "kg"},
		{ID: "l2", ArticleID: "egg", Amount: d("31"), Unit: "ks"},
		{ID: "l3", ArticleID: "flour", Amount: d("16000"), Unit: "g"}, // 5 + 16 > 20
		{ID: "l4", ArticleID: "milk", Amount: d("11"), Unit: "l"},
	}

	shortages, err := inventory.CheckIssue(lines, articles)
	require.NoError(t, err)
	require.Len(t, shortages, 3)

	assert.Equal(t, "flour", shortages[0].ArticleID)
	assert.True(t, d("20").Equal(shortages[0].Available))
	assert.True(t, d("21").Equal(shortages[0].Requested))
	assert.Equal(t, "egg", shortages[1].ArticleID)
	assert.Equal(t, "milk", shortages[2].ArticleID)
}

func TestApplyIssue_FotoDelPrecio(t *testing.T) {
	articles := map[string]*entity.Article{"flour": {ID: "flour", Unit: "kg", OnStock: d("20"), AveragePrice: dp("25")}}
	lines := []entity.DocumentLine{{ID: "l1", ArticleID: "flour", Amount: d("5"), Unit: "kg"}}

	shortages, err := inventory.CheckIssue(lines, articles)
	require.NoError(t, err)
	require.Empty(t, shortages)

	plan, err := inventory.ApplyIssue(lines, articles)
	require.NoError(t, err)
	require.Len(t, plan.Effects, 1)
	assert.True(t, d("25").Equal(plan.Effects[0].UnitPrice))
	assert.True(t, d("15").Equal(plan.Articles["flour"].OnStock))
	assert.True(t, d("125").Equal(plan.Total))
}

func TestValidateIssueLine_Consultiva(t *testing.T) {
	article := &entity.Article{ID: "flour", Name: "Harina", Unit: "kg", OnStock: d("2")}

	require.NoError(t, inventory.ValidateIssueLine(&entity.DocumentLine{Amount: d("2000"), Unit: "g"}, article))

	err := inventory.ValidateIssueLine(&entity.DocumentLine{Amount: d("2.5"), Unit: "kg"}, article)
	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	assert.True(t, d("2").Equal(short.Available))
	assert.True(t, d("2.5").Equal(short.Requested))

	err = inventory.ValidateIssueLine(&entity.DocumentLine{Amount: d("1"), Unit: "ks"}, article)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)

	err = inventory.ValidateIssueLine(&entity.DocumentLine{Amount: d("0"), Unit: "kg"}, article)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una cantidad que a la escala del libro queda en cero se rechaza como entrada inválida.
func TestValidateIssueLine_CantidadBajoLaEscala(t *testing.T) {
	article := &entity.Article{ID: "flour", Name: "Harina", Unit: "kg", OnStock: d("2")}

	err := inventory.ValidateIssueLine(&entity.DocumentLine{Amount: d("0.00004"), Unit: "kg"}, article)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = inventory.ValidateIssueLine(&entity.DocumentLine{Amount: d("0.04"), Unit: "g"}, article)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, inventory.ValidateIssueLine(&entity.DocumentLine{Amount: d("0.5"), Unit: "g"}, article))
}
