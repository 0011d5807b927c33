package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var menuDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func (f *fixture) recipe(t *testing.T, name string, norm int, ings ...entity.RecipeIngredient) *entity.Recipe {
	t.Helper()
	r := &entity.Recipe{ID: uuid.New().String(), Name: name, NormAmount: norm}
	for i := range ings {
		ings[i].ID = uuid.New().String()
		ings[i].RecipeID = r.ID
		ings[i].Position = i + 1
	}
	r.Ingredients = ings
	require.NoError(t, f.store.Recipes().Create(f.ctx, r))
	return r
}

func (f *fixture) menu(t *testing.T, date time.Time, group, recipeID string, portions int) {
	t.Helper()
	require.NoError(t, f.store.Menus().Create(f.ctx, &entity.DailyMenu{
		ID:            uuid.New().String(),
		Date:          date,
		Amount:        portions,
		TargetGroupID: group,
		MealTypeID:    "almuerzo",
		RecipeID:      recipeID,
		CreatedAt:     f.tick(),
	}))
}

func TestCreateIssueFromMenu(t *testing.T) {
	f := newFixture(t)
	flour := f.stocked(t, "HAR", "kg", "10", "2")
	milk := f.stocked(t, "LEC", "l", "10", "1")

	pancakes := f.recipe(t, "Panqueques", 10,
		entity.RecipeIngredient{ArticleID: flour.ID, Amount: d("500"), Unit: "g"},
		entity.RecipeIngredient{ArticleID: milk.ID, Amount: d("1"), Unit: "l"},
	)
	soup := f.recipe(t, "Sopa", 4,
		entity.RecipeIngredient{ArticleID: milk.ID, Amount: d("0.5"), Unit: "l"},
	)
	f.menu(t, menuDate, "ninos", pancakes.ID, 20)
	f.menu(t, menuDate, "adultos", soup.ID, 8)
	f.menu(t, menuDate.AddDate(0, 0, 1), "ninos", soup.ID, 100)

	doc, n, err := f.menus.CreateIssueFromMenu(f.ctx, menuDate.Add(13*time.Hour), nil, testUser)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, entity.DocumentKindIssue, doc.Kind)
	assert.False(t, doc.Approved)
	require.True(t, doc.IsMenuDerived())
	assert.True(t, menuDate.Equal(*doc.SourceMenuDate))
	assert.Contains(t, doc.Comment, "2026-03-02")

	stored := mustGet(t, f, doc.ID)
	require.Len(t, stored.Lines, 2)
	assert.Equal(t, flour.ID, stored.Lines[0].ArticleID)
	assert.True(t, d("1").Equal(stored.Lines[0].Amount))
	assert.Equal(t, "kg", stored.Lines[0].Unit)
	assert.Equal(t, milk.ID, stored.Lines[1].ArticleID)
	assert.True(t, d("3").Equal(stored.Lines[1].Amount), "2 l + 1 l, got %s", stored.Lines[1].Amount)

	// Filtrado por grupo.
	group := "adultos"
	doc2, n, err := f.menus.CreateIssueFromMenu(f.ctx, menuDate, &group, testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NotNil(t, doc2.SourceTargetGroupID)
	assert.Equal(t, "adultos", *doc2.SourceTargetGroupID)

	// La salida generada se aprueba como cualquier otra.
	_, err = f.approval.ApproveIssue(f.ctx, doc.ID, testUser)
	require.NoError(t, err)
	assert.True(t, d("9").Equal(f.get(t, flour.ID).OnStock))
}

func TestCreateIssueFromMenu_SinMenu(t *testing.T) {
	f := newFixture(t)

	doc, n, err := f.menus.CreateIssueFromMenu(f.ctx, menuDate, nil, testUser)
	assert.ErrorIs(t, err, domain.ErrNoMenuDefined)
	assert.Nil(t, doc)
	assert.Zero(t, n)

	docs, err := f.docs.List(f.ctx, repository.DocumentFilter{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCreateIssueFromMenu_RecetaConUnidadIncorrecta(t *testing.T) {
	f := newFixture(t)
	egg := f.stocked(t, "HUE", "ks", "30", "0.2")
	bad := f.recipe(t, "Tortilla", 2, entity.RecipeIngredient{ArticleID: egg.ID, Amount: d("100"), Unit: "g"})
	f.menu(t, menuDate, "ninos", bad.ID, 4)

	_, _, err := f.menus.CreateIssueFromMenu(f.ctx, menuDate, nil, testUser)
	assert.ErrorIs(t, err, domain.ErrRecipeUnits)

	docs, err := f.docs.List(f.ctx, repository.DocumentFilter{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRefreshMenuIssue(t *testing.T) {
	f := newFixture(t)
	flour := f.stocked(t, "HAR", "kg", "10", "2")
	r := f.recipe(t, "Pan", 10, entity.RecipeIngredient{ArticleID: flour.ID, Amount: d("1"), Unit: "kg"})
	f.menu(t, menuDate, "ninos", r.ID, 10)

	old, _, err := f.menus.CreateIssueFromMenu(f.ctx, menuDate, nil, testUser)
	require.NoError(t, err)

	// La receta cambia después de generar la salida.
	ing := r.Ingredients[0]
	ing.Amount = d("2")
	require.NoError(t, f.store.Recipes().UpdateIngredient(f.ctx, &ing))

	fresh, n, err := f.menus.RefreshMenuIssue(f.ctx, old.ID, testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotEqual(t, old.ID, fresh.ID)
	assert.True(t, d("2").Equal(mustGet(t, f, fresh.ID).Lines[0].Amount))

	_, err = f.docs.Get(f.ctx, old.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRefreshMenuIssue_Rechazos(t *testing.T) {
	f := newFixture(t)
	flour := f.stocked(t, "HAR", "kg", "10", "2")
	r := f.recipe(t, "Pan", 10, entity.RecipeIngredient{ArticleID: flour.ID, Amount: d("1"), Unit: "kg"})
	f.menu(t, menuDate, "ninos", r.ID, 10)

	approved, _, err := f.menus.CreateIssueFromMenu(f.ctx, menuDate, nil, testUser)
	require.NoError(t, err)
	_, err = f.approval.ApproveIssue(f.ctx, approved.ID, testUser)
	require.NoError(t, err)

	_, _, err = f.menus.RefreshMenuIssue(f.ctx, approved.ID, testUser)
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
	assert.True(t, mustGet(t, f, approved.ID).Approved)

	manual := f.draft(t, entity.DocumentKindIssue, issueLine(flour.ID, "1", "kg"))
	_, _, err = f.menus.RefreshMenuIssue(f.ctx, manual.ID, testUser)
	assert.ErrorIs(t, err, domain.ErrNotMenuDerived)

	_, _, err = f.menus.RefreshMenuIssue(f.ctx, "nope", testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Si el menú desapareció, la salida original se conserva.
func TestRefreshMenuIssue_SinMenuConservaOriginal(t *testing.T) {
	f := newFixture(t)
	flour := f.stocked(t, "HAR", "kg", "10", "2")
	r := f.recipe(t, "Pan", 10, entity.RecipeIngredient{ArticleID: flour.ID, Amount: d("1"), Unit: "kg"})
	f.menu(t, menuDate, "ninos", r.ID, 10)

	old, _, err := f.menus.CreateIssueFromMenu(f.ctx, menuDate, nil, testUser)
	require.NoError(t, err)

	entries, err := f.store.Menus().ListByDate(f.ctx, menuDate, nil)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, f.store.Menus().Delete(f.ctx, e.ID))
	}

	_, _, err = f.menus.RefreshMenuIssue(f.ctx, old.ID, testUser)
	assert.ErrorIs(t, err, domain.ErrNoMenuDefined)
	assert.Len(t, mustGet(t, f, old.ID).Lines, 1)
	assert.Equal(t, []string{"created", "no_menu"}, f.metrics.menus)
}
