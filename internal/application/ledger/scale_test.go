package ledger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/inventory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ────────────────────────────────────────────────────────────────────────────
// Escala de cantidades
// ────────────────────────────────────────────────────────────────────────────

func TestAddLine_RedondeaALaEscalaDelLibro(t *testing.T) {
	f := newFixture(t)
	salt := f.article(t, "SAL", "kg")

	receipt := f.draft(t, entity.DocumentKindReceipt)
	line, err := f.docs.AddLine(f.ctx, receipt.ID, f.receiptLine(salt.ID, "12.34567", "g", "10.00"))
	require.NoError(t, err)
	assert.True(t, d("12.3457").Equal(line.Amount), "got %s", line.Amount)

	_, err = f.approval.ApproveReceipt(f.ctx, receipt.ID, testUser)
	require.NoError(t, err)

	// 12.3457 g → 0.0123457 kg → 0.0123 kg
	got := f.get(t, salt.ID)
	assert.True(t, d("0.0123").Equal(got.OnStock), "got %s", got.OnStock)

	movs, err := f.docs.Movements(f.ctx, salt.ID, zeroTime, zeroTime, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, d("0.0123").Equal(movs[0].Quantity), "got %s", movs[0].Quantity)
	assert.True(t, movs[0].StockAfter.Equal(inventory.RoundQuantity(movs[0].StockAfter)))
}

func TestAddLine_CantidadQueRedondeaACero(t *testing.T) {
	f := newFixture(t)
	flour := f.stocked(t, "HAR", "kg", "5", "1")
	issue := f.draft(t, entity.DocumentKindIssue)

	_, err := f.docs.AddLine(f.ctx, issue.ID, issueLine(flour.ID, "0.00001", "kg"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.docs.AddLine(f.ctx, issue.ID, issueLine(flour.ID, "0.04", "g"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, mustGet(t, f, issue.ID).Lines)
}

func TestCreateIssueFromMenu_CantidadesALaEscalaDelLibro(t *testing.T) {
	f := newFixture(t)
	salt := f.stocked(t, "SAL", "kg", "1", "1")
	pepper := f.stocked(t, "PIM", "kg", "1", "1")
	broth := f.recipe(t, "Caldo", 1,
		entity.RecipeIngredient{ArticleID: salt.ID, Amount: d("12.345"), Unit: "g"},
		entity.RecipeIngredient{ArticleID: pepper.ID, Amount: d("0.01"), Unit: "g"},
	)
	f.menu(t, menuDate, "adultos", broth.ID, 1)

	doc, n, err := f.menus.CreateIssueFromMenu(f.ctx, menuDate, nil, testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "la pimienta queda en cero a la escala del libro")

	stored := mustGet(t, f, doc.ID)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, salt.ID, stored.Lines[0].ArticleID)
	assert.True(t, d("0.0124").Equal(stored.Lines[0].Amount), "got %s", stored.Lines[0].Amount)

	_, err = f.approval.ApproveIssue(f.ctx, doc.ID, testUser)
	require.NoError(t, err)
	assert.True(t, d("0.9876").Equal(f.get(t, salt.ID).OnStock))
}

func TestCreateIssueFromMenu_TodoRedondeaACero(t *testing.T) {
	f := newFixture(t)
	pepper := f.stocked(t, "PIM", "kg", "1", "1")
	pinch := f.recipe(t, "Pizca", 1, entity.RecipeIngredient{ArticleID: pepper.ID, Amount: d("0.01"), Unit: "g"})
	f.menu(t, menuDate, "adultos", pinch.ID, 1)

	_, _, err := f.menus.CreateIssueFromMenu(f.ctx, menuDate, nil, testUser)
	assert.ErrorIs(t, err, domain.ErrNoMenuDefined)
}

// ────────────────────────────────────────────────────────────────────────────
// Logging
// ────────────────────────────────────────────────────────────────────────────

func TestApproval_LogConUnSoloComponente(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	log := zerolog.New(&buf).With().Str("component", "approval").Logger()
	approval := ledger.NewApprovalUseCase(f.store, nil, log)

	flour := f.article(t, "HAR", "kg")
	receipt := f.draft(t, entity.DocumentKindReceipt, f.receiptLine(flour.ID, "1", "kg", "2"))
	_, err := approval.ApproveReceipt(f.ctx, receipt.ID, testUser)
	require.NoError(t, err)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Equal(t, 1, strings.Count(out, `"component"`), out)
	assert.Contains(t, out, `"component":"approval"`)
}
