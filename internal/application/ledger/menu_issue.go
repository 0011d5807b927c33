package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/rs/zerolog"
)

// MenuIssueUseCase genera salidas en borrador a partir del menú diario.
type MenuIssueUseCase struct {
	txRunner TxRunner
	metrics  Metrics
	log      zerolog.Logger
}

// NewMenuIssueUseCase construye el caso de uso. metrics puede ser nil.
func NewMenuIssueUseCase(txRunner TxRunner, metrics Metrics, log zerolog.Logger) *MenuIssueUseCase {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &MenuIssueUseCase{
		txRunner: txRunner,
		metrics:  metrics,
		log:      log,
	}
}

// CreateIssueFromMenu agrega las recetas del menú de la fecha (opcionalmente de un grupo) y crea
// una salida en borrador con una línea por artículo. Retorna la salida y la cantidad de líneas.
// Si no hay menú para la fecha retorna domain.ErrNoMenuDefined y no crea nada.
func (uc *MenuIssueUseCase) CreateIssueFromMenu(
	ctx context.Context,
	date time.Time,
	targetGroupID *string,
	userID string,
) (*entity.StockDocument, int, error) {
	var doc *entity.StockDocument
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		doc, err = buildMenuIssue(ctx, r, DateOnly(date), targetGroupID, userID)
		return err
	})
	return uc.done("create", doc, date, err)
}

// RefreshMenuIssue reemplaza una salida generada desde menú (no aprobada) por una nueva expansión
// con las recetas vigentes. Si la nueva expansión falla, la salida original se conserva.
func (uc *MenuIssueUseCase) RefreshMenuIssue(ctx context.Context, issueID, userID string) (*entity.StockDocument, int, error) {
	var doc *entity.StockDocument
	var date time.Time
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		old, err := r.Documents.GetForUpdate(ctx, issueID)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if old.Approved {
			return domain.ErrAlreadyApproved
		}
		if !old.IsMenuDerived() {
			return domain.ErrNotMenuDerived
		}
		date = *old.SourceMenuDate
		if err := r.Documents.Delete(ctx, old.ID); err != nil {
			return err
		}
		doc, err = buildMenuIssue(ctx, r, DateOnly(date), old.SourceTargetGroupID, userID)
		return err
	})
	return uc.done("refresh", doc, date, err)
}

func (uc *MenuIssueUseCase) done(op string, doc *entity.StockDocument, date time.Time, err error) (*entity.StockDocument, int, error) {
	if err != nil {
		uc.metrics.ObserveMenuIssue(outcomeOf(err), 0)
		uc.log.Warn().Err(err).Str("op", op).Str("date", date.Format(time.DateOnly)).Msg("salida desde menú rechazada")
		return nil, 0, err
	}
	uc.metrics.ObserveMenuIssue(OutcomeCreated, len(doc.Lines))
	uc.log.Info().Str("op", op).Str("document_id", doc.ID).Int("lines", len(doc.Lines)).
		Str("date", date.Format(time.DateOnly)).Msg("salida desde menú generada")
	return doc, len(doc.Lines), nil
}

// buildMenuIssue expande el menú y persiste la salida dentro de la transacción en curso.
func buildMenuIssue(
	ctx context.Context,
	r TxRepos,
	date time.Time,
	targetGroupID *string,
	userID string,
) (*entity.StockDocument, error) {
	exp, err := ExpandMenu(ctx, r.Menus, r.Recipes, r.Articles, date, targetGroupID)
	if err != nil {
		return nil, err
	}

	doc := &entity.StockDocument{
		ID:                  uuid.New().String(),
		Kind:                entity.DocumentKindIssue,
		CreatedAt:           time.Now().UTC(),
		CreatedBy:           userID,
		Comment:             fmt.Sprintf("Salida generada desde menú del %s", date.Format(time.DateOnly)),
		SourceMenuDate:      &date,
		SourceTargetGroupID: targetGroupID,
	}
	for _, req := range exp.Requirements {
		doc.Lines = append(doc.Lines, entity.DocumentLine{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Position:   len(doc.Lines) + 1,
			ArticleID:  req.ArticleID,
			Amount:     req.Quantity,
			Unit:       req.Unit,
		})
	}
	if err := r.Documents.Create(ctx, doc); err != nil {
		return nil, err
	}
	for i := range doc.Lines {
		if err := r.Documents.AddLine(ctx, &doc.Lines[i]); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
