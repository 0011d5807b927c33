package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testUser = "user-1"

var zeroTime time.Time

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func strp(s string) *string { return &s }

type spyMetrics struct {
	mu        sync.Mutex
	approvals []string
	menus     []string
}

func (m *spyMetrics) ObserveApproval(kind, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approvals = append(m.approvals, kind+":"+outcome)
}

func (m *spyMetrics) ObserveMenuIssue(outcome string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menus = append(m.menus, outcome)
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	metrics  *spyMetrics
	docs     *ledger.DocumentUseCase
	approval *ledger.ApprovalUseCase
	menus    *ledger.MenuIssueUseCase
	vatID    string
	clock    time.Time
}

// tick devuelve instantes estrictamente crecientes para ordenar entradas de menú.
func (f *fixture) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	metrics := &spyMetrics{}
	f := &fixture{
		ctx:     context.Background(),
		store:   store,
		metrics: metrics,
		docs: ledger.NewDocumentUseCase(
			store, store.Documents(), store.Articles(), store.VATs(), store.Movements(),
		),
		approval: ledger.NewApprovalUseCase(store, metrics, zerolog.Nop()),
		menus:    ledger.NewMenuIssueUseCase(store, metrics, zerolog.Nop()),
		vatID:    "vat-0",
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.VATs().Create(f.ctx, &entity.VAT{ID: f.vatID, Percentage: 0, Name: "exento"}))
	return f
}

func (f *fixture) article(t *testing.T, code, unit string) *entity.Article {
	t.Helper()
	a := &entity.Article{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      code,
		Unit:      unit,
		OnStock:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.store.Articles().Create(f.ctx, a))
	return a
}

// stocked crea un artículo con stock y precio inicial (sembrado directo en el almacén).
func (f *fixture) stocked(t *testing.T, code, unit, onStock, avg string) *entity.Article {
	t.Helper()
	a := f.article(t, code, unit)
	require.NoError(t, f.store.Articles().UpdateStock(f.ctx, a.ID, d(onStock), dp(avg)))
	return f.get(t, a.ID)
}

func (f *fixture) get(t *testing.T, id string) *entity.Article {
	t.Helper()
	a, err := f.store.Articles().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func (f *fixture) receiptLine(articleID, amount, unit, price string) ledger.LineInput {
	return ledger.LineInput{
		ArticleID:       articleID,
		Amount:          d(amount),
		Unit:            unit,
		PriceWithoutVat: dp(price),
		VATID:           strp(f.vatID),
	}
}

func issueLine(articleID, amount, unit string) ledger.LineInput {
	return ledger.LineInput{ArticleID: articleID, Amount: d(amount), Unit: unit}
}

func (f *fixture) draft(t *testing.T, kind string, lines ...ledger.LineInput) *entity.StockDocument {
	t.Helper()
	doc, err := f.docs.Create(f.ctx, kind, testUser, "")
	require.NoError(t, err)
	for _, in := range lines {
		_, err := f.docs.AddLine(f.ctx, doc.ID, in)
		require.NoError(t, err)
	}
	return doc
}

// rawLine agrega una línea sin la validación consultiva (simula stock consumido después de editar).
func (f *fixture) rawLine(t *testing.T, docID string, pos int, in ledger.LineInput) {
	t.Helper()
	require.NoError(t, f.store.Documents().AddLine(f.ctx, &entity.DocumentLine{
		ID:         uuid.New().String(),
		DocumentID: docID,
		Position:   pos,
		ArticleID:  in.ArticleID,
		Amount:     in.Amount,
		Unit:       in.Unit,
	}))
}
