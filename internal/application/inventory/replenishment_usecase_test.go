package inventory_test

import (
	"context"
	"testing"

	"github.com/jhoicas/kitchen-ledger/internal/application/inventory"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGenerateReplenishmentList(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seed := func(id, code, onStock, min, avg string) {
		a := &entity.Article{ID: id, Code: code, Name: code, Unit: "kg", OnStock: d(onStock), MinOnStock: d(min)}
		require.NoError(t, store.Articles().Create(ctx, a))
		p := d(avg)
		require.NoError(t, store.Articles().UpdateStock(ctx, id, d(onStock), &p))
	}
	seed("a", "ARROZ", "8", "10", "2")  // 20% bajo el mínimo
	seed("b", "AZUCAR", "1", "10", "3") // 90% bajo el mínimo
	seed("c", "SAL", "50", "10", "1")   // sobre el mínimo
	seed("e", "ACEITE", "0", "0", "1")  // sin mínimo

	uc := inventory.NewReplenishmentUseCase(store.Articles(), store.Analytics())
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "b", list[0].ArticleID)
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, d("15").Equal(list[0].IdealStock))
	assert.True(t, d("14").Equal(list[0].SuggestedOrderQty))
	assert.True(t, d("42").Equal(list[0].EstimatedOrderCost))

	assert.Equal(t, "a", list[1].ArticleID)
	assert.Equal(t, 2, list[1].Priority)
	assert.True(t, d("7").Equal(list[1].SuggestedOrderQty))
}

func TestGenerateReplenishmentList_Vacia(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewReplenishmentUseCase(store.Articles(), store.Analytics())
	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

// El déficit se compara relativo al mínimo: 40 kg faltantes de 100 pesan menos que 3 ks de 4.
func TestGenerateReplenishmentList_DeficitRelativoEntreUnidades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Articles().Create(ctx, &entity.Article{
		ID: "papa", Code: "PAPA", Name: "Papa", Unit: "kg", OnStock: d("60"), MinOnStock: d("100"),
	}))
	require.NoError(t, store.Articles().Create(ctx, &entity.Article{
		ID: "huevo", Code: "HUEVO", Name: "Huevo", Unit: "ks", OnStock: d("1"), MinOnStock: d("4"),
	}))

	uc := inventory.NewReplenishmentUseCase(store.Articles(), store.Analytics())
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "huevo", list[0].ArticleID)
	assert.Equal(t, "papa", list[1].ArticleID)
	assert.Equal(t, 2, list[1].Priority)
}
