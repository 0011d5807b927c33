package ledger_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ────────────────────────────────────────────────────────────────────────────
// Flujo completo
// ────────────────────────────────────────────────────────────────────────────

func TestLedger_FlujoHarina(t *testing.T) {
	f := newFixture(t)
	flour := f.article(t, "HAR", "kg")

	r1 := f.draft(t, entity.DocumentKindReceipt, f.receiptLine(flour.ID, "10", "kg", "20.00"))
	_, err := f.approval.ApproveReceipt(f.ctx, r1.ID, testUser)
	require.NoError(t, err)
	got := f.get(t, flour.ID)
	assert.True(t, d("10").Equal(got.OnStock))
	assert.True(t, d("20").Equal(*got.AveragePrice))

	r2 := f.draft(t, entity.DocumentKindReceipt, f.receiptLine(flour.ID, "10", "kg", "30.00"))
	_, err = f.approval.ApproveReceipt(f.ctx, r2.ID, testUser)
	require.NoError(t, err)
	got = f.get(t, flour.ID)
	assert.True(t, d("20").Equal(got.OnStock))
	assert.True(t, d("25").Equal(*got.AveragePrice), "got %s", got.AveragePrice)

	i1 := f.draft(t, entity.DocumentKindIssue, issueLine(flour.ID, "5", "kg"))
	approved, err := f.approval.ApproveIssue(f.ctx, i1.ID, testUser)
	require.NoError(t, err)
	require.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, testUser, *approved.ApprovedBy)
	require.Len(t, approved.Lines, 1)
	require.NotNil(t, approved.Lines[0].AveragePrice)
	assert.True(t, d("25").Equal(*approved.Lines[0].AveragePrice))
	assert.True(t, d("15").Equal(f.get(t, flour.ID).OnStock))

	// La validación de escritura ya rechaza la línea.
	i2 := f.draft(t, entity.DocumentKindIssue)
	_, err = f.docs.AddLine(f.ctx, i2.ID, issueLine(flour.ID, "100", "kg"))
	var lineErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &lineErr))
	assert.True(t, d("15").Equal(lineErr.Available))
	assert.True(t, d("100").Equal(lineErr.Requested))

	// Y la aprobación la vuelve a verificar.
	f.rawLine(t, i2.ID, 1, issueLine(flour.ID, "100", "kg"))
	_, err = f.approval.ApproveIssue(f.ctx, i2.ID, testUser)
	var shortage *domain.StockShortageError
	require.True(t, errors.As(err, &shortage))
	require.Len(t, shortage.Items, 1)
	assert.True(t, d("15").Equal(shortage.Items[0].Available))
	assert.True(t, d("100").Equal(shortage.Items[0].Requested))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, d("15").Equal(f.get(t, flour.ID).OnStock))

	movs, err := f.docs.Movements(f.ctx, flour.ID, zeroTime, zeroTime, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.True(t, d("-5").Equal(movs[0].Quantity))
	assert.True(t, d("15").Equal(movs[0].StockAfter))

	assert.Equal(t, []string{"RECEIPT:approved", "RECEIPT:approved", "ISSUE:approved", "ISSUE:shortage"}, f.metrics.approvals)
}

func TestApproveReceipt_ConvierteAUnidadNativa(t *testing.T) {
	f := newFixture(t)
	milk := f.stocked(t, "LEC", "l", "2", "1.00")

	doc := f.draft(t, entity.DocumentKindReceipt, f.receiptLine(milk.ID, "2000", "ml", "2.00"))
	_, err := f.approval.ApproveReceipt(f.ctx, doc.ID, testUser)
	require.NoError(t, err)

	got := f.get(t, milk.ID)
	assert.True(t, d("4").Equal(got.OnStock))
	assert.True(t, d("1.5").Equal(*got.AveragePrice))
}

// ────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ────────────────────────────────────────────────────────────────────────────

func TestApproveIssue_UltimaLineaCorta_NoMutaNada(t *testing.T) {
	f := newFixture(t)
	a := f.stocked(t, "A", "kg", "10", "1")
	b := f.stocked(t, "B", "kg", "10", "1")
	c := f.stocked(t, "C", "ks", "1", "1")

	doc := f.draft(t, entity.DocumentKindIssue,
		issueLine(a.ID, "5", "kg"),
		issueLine(b.ID, "5000", "g"),
	)
	f.rawLine(t, doc.ID, 3, issueLine(c.ID, "2", "ks"))

	_, err := f.approval.ApproveIssue(f.ctx, doc.ID, testUser)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, d("10").Equal(f.get(t, a.ID).OnStock))
	assert.True(t, d("10").Equal(f.get(t, b.ID).OnStock))
	assert.True(t, d("1").Equal(f.get(t, c.ID).OnStock))

	after, err := f.docs.Get(f.ctx, doc.ID)
	require.NoError(t, err)
	assert.False(t, after.Approved)
	for _, l := range after.Lines {
		assert.Nil(t, l.AveragePrice)
	}
	movs, err := f.docs.Movements(f.ctx, a.ID, zeroTime, zeroTime, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestApproveIssue_ReportaTodosLosFaltantes(t *testing.T) {
	f := newFixture(t)
	a := f.stocked(t, "A", "kg", "1", "1")
	b := f.stocked(t, "B", "l", "1", "1")
	ok := f.stocked(t, "OK", "ks", "50", "1")

	doc := f.draft(t, entity.DocumentKindIssue, issueLine(ok.ID, "5", "ks"))
	f.rawLine(t, doc.ID, 2, issueLine(a.ID, "2", "kg"))
	f.rawLine(t, doc.ID, 3, issueLine(b.ID, "3", "l"))

	_, err := f.approval.ApproveIssue(f.ctx, doc.ID, testUser)
	var shortage *domain.StockShortageError
	require.True(t, errors.As(err, &shortage))
	require.Len(t, shortage.Items, 2)
	assert.Equal(t, a.ID, shortage.Items[0].ArticleID)
	assert.Equal(t, b.ID, shortage.Items[1].ArticleID)
	assert.True(t, d("50").Equal(f.get(t, ok.ID).OnStock))
}

// Dos líneas del mismo artículo suman su consumo en el paso A.
func TestApproveIssue_LineasHermanasSeSuman(t *testing.T) {
	f := newFixture(t)
	a := f.stocked(t, "A", "kg", "10", "2")

	doc := f.draft(t, entity.DocumentKindIssue,
		issueLine(a.ID, "6", "kg"),
		issueLine(a.ID, "6", "kg"),
	)
	_, err := f.approval.ApproveIssue(f.ctx, doc.ID, testUser)
	var shortage *domain.StockShortageError
	require.True(t, errors.As(err, &shortage))
	assert.True(t, d("12").Equal(shortage.Items[0].Requested))
}

func TestApproveIssue_ConcurrentesSobreElMismoArticulo(t *testing.T) {
	f := newFixture(t)
	a := f.stocked(t, "A", "kg", "10", "1")

	d1 := f.draft(t, entity.DocumentKindIssue, issueLine(a.ID, "6", "kg"))
	d2 := f.draft(t, entity.DocumentKindIssue, issueLine(a.ID, "6", "kg"))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{d1.ID, d2.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.approval.ApproveIssue(f.ctx, id, testUser)
		}(i, id)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, failures)
	assert.True(t, d("4").Equal(f.get(t, a.ID).OnStock))
}

// ────────────────────────────────────────────────────────────────────────────
// Reglas de estado
// ────────────────────────────────────────────────────────────────────────────

func TestApprove_DobleAprobacion(t *testing.T) {
	f := newFixture(t)
	a := f.article(t, "A", "kg")
	doc := f.draft(t, entity.DocumentKindReceipt, f.receiptLine(a.ID, "4", "kg", "3"))

	_, err := f.approval.Approve(f.ctx, doc.ID, testUser)
	require.NoError(t, err)
	before := f.get(t, a.ID)

	_, err = f.approval.Approve(f.ctx, doc.ID, "otro")
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)

	after := f.get(t, a.ID)
	assert.True(t, before.OnStock.Equal(after.OnStock))
	assert.True(t, before.AveragePrice.Equal(*after.AveragePrice))

	got, err := f.docs.Get(f.ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, testUser, *got.ApprovedBy)
}

func TestApprove_DocumentoAprobadoEsInmutable(t *testing.T) {
	f := newFixture(t)
	a := f.article(t, "A", "kg")
	doc := f.draft(t, entity.DocumentKindReceipt, f.receiptLine(a.ID, "4", "kg", "3"))
	_, err := f.approval.ApproveReceipt(f.ctx, doc.ID, testUser)
	require.NoError(t, err)

	_, err = f.docs.AddLine(f.ctx, doc.ID, f.receiptLine(a.ID, "1", "kg", "1"))
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)

	got, _ := f.docs.Get(f.ctx, doc.ID)
	_, err = f.docs.UpdateLine(f.ctx, doc.ID, got.Lines[0].ID, f.receiptLine(a.ID, "1", "kg", "1"))
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
	assert.ErrorIs(t, f.docs.DeleteLine(f.ctx, doc.ID, got.Lines[0].ID), domain.ErrAlreadyApproved)
	assert.ErrorIs(t, f.docs.Delete(f.ctx, doc.ID), domain.ErrAlreadyApproved)
}

func TestApprove_DocumentoSinValor(t *testing.T) {
	f := newFixture(t)
	a := f.article(t, "A", "kg")

	empty := f.draft(t, entity.DocumentKindReceipt)
	_, err := f.approval.ApproveReceipt(f.ctx, empty.ID, testUser)
	assert.ErrorIs(t, err, domain.ErrZeroValueDocument)

	free := f.draft(t, entity.DocumentKindReceipt, f.receiptLine(a.ID, "4", "kg", "0"))
	_, err = f.approval.ApproveReceipt(f.ctx, free.ID, testUser)
	assert.ErrorIs(t, err, domain.ErrZeroValueDocument)
	assert.True(t, f.get(t, a.ID).OnStock.IsZero())

	// Una salida de un artículo sin precio promedio no tiene valor.
	noPrice := f.article(t, "B", "kg")
	require.NoError(t, f.store.Articles().UpdateStock(f.ctx, noPrice.ID, d("5"), nil))
	issue := f.draft(t, entity.DocumentKindIssue, issueLine(noPrice.ID, "1", "kg"))
	_, err = f.approval.ApproveIssue(f.ctx, issue.ID, testUser)
	assert.ErrorIs(t, err, domain.ErrZeroValueDocument)
}

func TestApprove_TipoEquivocado(t *testing.T) {
	f := newFixture(t)
	a := f.stocked(t, "A", "kg", "5", "1")
	issue := f.draft(t, entity.DocumentKindIssue, issueLine(a.ID, "1", "kg"))

	_, err := f.approval.ApproveReceipt(f.ctx, issue.ID, testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.approval.Approve(f.ctx, "no-existe", testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ────────────────────────────────────────────────────────────────────────────
// Validación de líneas en borrador
// ────────────────────────────────────────────────────────────────────────────

func TestAddLine_Validaciones(t *testing.T) {
	f := newFixture(t)
	a := f.stocked(t, "A", "kg", "5", "1")
	receipt := f.draft(t, entity.DocumentKindReceipt)
	issue := f.draft(t, entity.DocumentKindIssue)

	_, err := f.docs.AddLine(f.ctx, receipt.ID, ledger.LineInput{ArticleID: a.ID, Amount: d("1"), Unit: "kg", VATID: strp(f.vatID)})
	assert.ErrorIs(t, err, domain.ErrMissingPrice)

	_, err = f.docs.AddLine(f.ctx, receipt.ID, ledger.LineInput{ArticleID: a.ID, Amount: d("1"), Unit: "kg", PriceWithoutVat: dp("2")})
	assert.ErrorIs(t, err, domain.ErrMissingTaxRate)

	_, err = f.docs.AddLine(f.ctx, receipt.ID, ledger.LineInput{ArticleID: a.ID, Amount: d("1"), Unit: "kg", PriceWithoutVat: dp("2"), VATID: strp("nope")})
	assert.ErrorIs(t, err, domain.ErrMissingTaxRate)

	_, err = f.docs.AddLine(f.ctx, issue.ID, issueLine(a.ID, "1", "ks"))
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)

	_, err = f.docs.AddLine(f.ctx, issue.ID, issueLine("nope", "1", "kg"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Los errores de una línea no afectan a las demás ni a la cabecera.
	line, err := f.docs.AddLine(f.ctx, issue.ID, issueLine(a.ID, "500", "G"))
	require.NoError(t, err)
	assert.Equal(t, "g", line.Unit)
	assert.Equal(t, 1, line.Position)

	got, err := f.docs.Get(f.ctx, issue.ID)
	require.NoError(t, err)
	assert.Len(t, got.Lines, 1)
	assert.False(t, got.Approved)
}

func TestUpdateAndDeleteLine(t *testing.T) {
	f := newFixture(t)
	a := f.stocked(t, "A", "kg", "5", "2")
	doc := f.draft(t, entity.DocumentKindIssue, issueLine(a.ID, "1", "kg"), issueLine(a.ID, "2", "kg"))
	got, _ := f.docs.Get(f.ctx, doc.ID)

	_, err := f.docs.UpdateLine(f.ctx, doc.ID, got.Lines[0].ID, issueLine(a.ID, "9", "kg"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	updated, err := f.docs.UpdateLine(f.ctx, doc.ID, got.Lines[0].ID, issueLine(a.ID, "3", "kg"))
	require.NoError(t, err)
	assert.True(t, d("3").Equal(updated.Amount))

	require.NoError(t, f.docs.DeleteLine(f.ctx, doc.ID, got.Lines[1].ID))
	assert.ErrorIs(t, f.docs.DeleteLine(f.ctx, doc.ID, got.Lines[1].ID), domain.ErrNotFound)

	totals, err := f.docs.Totals(f.ctx, mustGet(t, f, doc.ID))
	require.NoError(t, err)
	assert.True(t, d("6").Equal(totals.Total))
}

func TestListAndDeleteDraft(t *testing.T) {
	f := newFixture(t)
	a := f.article(t, "A", "kg")
	r := f.draft(t, entity.DocumentKindReceipt, f.receiptLine(a.ID, "1", "kg", "1"))
	_ = f.draft(t, entity.DocumentKindIssue)
	_, err := f.approval.ApproveReceipt(f.ctx, r.ID, testUser)
	require.NoError(t, err)

	drafts, err := f.docs.List(f.ctx, repository.DocumentFilter{Approved: new(bool)})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, entity.DocumentKindIssue, drafts[0].Kind)

	require.NoError(t, f.docs.Delete(f.ctx, drafts[0].ID))
	_, err = f.docs.Get(f.ctx, drafts[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.docs.List(f.ctx, repository.DocumentFilter{Kind: "OTHER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func mustGet(t *testing.T, f *fixture, id string) *entity.StockDocument {
	t.Helper()
	doc, err := f.docs.Get(f.ctx, id)
	require.NoError(t, err)
	return doc
}
