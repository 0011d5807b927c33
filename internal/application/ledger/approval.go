package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/inventory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ApprovalUseCase máquina de estados Borrador -> Aprobado.
// Es el único escritor de Article.OnStock y Article.AveragePrice.
type ApprovalUseCase struct {
	txRunner TxRunner
	metrics  Metrics
	log      zerolog.Logger
	now      func() time.Time
}

// NewApprovalUseCase construye el caso de uso de aprobación. metrics puede ser nil.
// log se usa tal cual; el llamador le asigna el componente.
func NewApprovalUseCase(txRunner TxRunner, metrics Metrics, log zerolog.Logger) *ApprovalUseCase {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &ApprovalUseCase{
		txRunner: txRunner,
		metrics:  metrics,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Approve aprueba el documento según su tipo.
func (uc *ApprovalUseCase) Approve(ctx context.Context, documentID, userID string) (*entity.StockDocument, error) {
	return uc.approveKind(ctx, "", documentID, userID)
}

// ApproveReceipt aprueba una entrada: suma stock y recalcula el precio promedio ponderado.
func (uc *ApprovalUseCase) ApproveReceipt(ctx context.Context, documentID, userID string) (*entity.StockDocument, error) {
	return uc.approveKind(ctx, entity.DocumentKindReceipt, documentID, userID)
}

// ApproveIssue aprueba una salida en dos pasos: verificación completa de faltantes y luego descuento.
// Si algún artículo queda en negativo retorna *domain.StockShortageError con todos los faltantes.
func (uc *ApprovalUseCase) ApproveIssue(ctx context.Context, documentID, userID string) (*entity.StockDocument, error) {
	return uc.approveKind(ctx, entity.DocumentKindIssue, documentID, userID)
}

// approveKind kind vacío acepta cualquier tipo de documento.
func (uc *ApprovalUseCase) approveKind(ctx context.Context, kind, documentID, userID string) (*entity.StockDocument, error) {
	var approved *entity.StockDocument
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		doc, err := r.Documents.GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if kind != "" && doc.Kind != kind {
			return domain.ErrInvalidInput
		}
		kind = doc.Kind
		switch doc.Kind {
		case entity.DocumentKindReceipt:
			approved, err = uc.approveReceipt(ctx, r, doc, userID)
		case entity.DocumentKindIssue:
			approved, err = uc.approveIssue(ctx, r, doc, userID)
		default:
			err = domain.ErrInvalidInput
		}
		return err
	})
	uc.record(kind, documentID, userID, err)
	if err != nil {
		return nil, err
	}
	return approved, nil
}

func (uc *ApprovalUseCase) approveReceipt(ctx context.Context, r TxRepos, doc *entity.StockDocument, userID string) (*entity.StockDocument, error) {
	if doc.Approved {
		return nil, domain.ErrAlreadyApproved
	}
	articles, err := lockArticles(ctx, r.Articles, doc.Lines)
	if err != nil {
		return nil, err
	}
	vats, err := loadVATs(ctx, r.VATs, doc.Lines)
	if err != nil {
		return nil, err
	}
	plan, err := inventory.PlanReceipt(doc.Lines, articles, vats)
	if err != nil {
		return nil, err
	}
	if !plan.Total.GreaterThan(decimal.Zero) {
		return nil, domain.ErrZeroValueDocument
	}

	for id, a := range plan.Articles {
		if err := r.Articles.UpdateStock(ctx, id, a.OnStock, a.AveragePrice); err != nil {
			return nil, err
		}
	}
	return uc.finish(ctx, r, doc, plan, entity.MovementTypeIN, userID)
}

func (uc *ApprovalUseCase) approveIssue(ctx context.Context, r TxRepos, doc *entity.StockDocument, userID string) (*entity.StockDocument, error) {
	if doc.Approved {
		return nil, domain.ErrAlreadyApproved
	}
	articles, err := lockArticles(ctx, r.Articles, doc.Lines)
	if err != nil {
		return nil, err
	}
	total, err := inventory.IssueTotal(doc.Lines, articles)
	if err != nil {
		return nil, err
	}
	if !total.GreaterThan(decimal.Zero) {
		return nil, domain.ErrZeroValueDocument
	}

	// Paso A: sin mutar nada, reunir todos los faltantes.
	shortages, err := inventory.CheckIssue(doc.Lines, articles)
	if err != nil {
		return nil, err
	}
	if len(shortages) > 0 {
		return nil, &domain.StockShortageError{Items: shortages}
	}

	// Paso B: descontar y tomar la foto del precio promedio.
	plan, err := inventory.ApplyIssue(doc.Lines, articles)
	if err != nil {
		return nil, err
	}
	for id, a := range plan.Articles {
		if err := r.Articles.UpdateStock(ctx, id, a.OnStock, a.AveragePrice); err != nil {
			return nil, err
		}
	}
	for _, eff := range plan.Effects {
		if err := r.Documents.SetLineAveragePrice(ctx, eff.LineID, eff.UnitPrice); err != nil {
			return nil, err
		}
	}
	return uc.finish(ctx, r, doc, plan, entity.MovementTypeOUT, userID)
}

// finish registra el kardex y marca la cabecera como aprobada.
func (uc *ApprovalUseCase) finish(
	ctx context.Context,
	r TxRepos,
	doc *entity.StockDocument,
	plan *inventory.Plan,
	movementType, userID string,
) (*entity.StockDocument, error) {
	now := uc.now()
	for _, eff := range plan.Effects {
		qty := eff.Quantity
		if movementType == entity.MovementTypeOUT {
			qty = qty.Neg()
		}
		mov := &entity.StockMovement{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			LineID:     eff.LineID,
			ArticleID:  eff.ArticleID,
			Type:       movementType,
			Quantity:   qty,
			UnitPrice:  eff.UnitPrice,
			TotalPrice: eff.Quantity.Mul(eff.UnitPrice),
			StockAfter: eff.StockAfter,
			CreatedAt:  now,
			CreatedBy:  userID,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return nil, err
		}
	}
	if err := r.Documents.MarkApproved(ctx, doc.ID, now, userID); err != nil {
		return nil, err
	}
	return r.Documents.GetByID(ctx, doc.ID)
}

func (uc *ApprovalUseCase) record(kind, documentID, userID string, err error) {
	outcome := outcomeOf(err)
	uc.metrics.ObserveApproval(kind, outcome)

	var ev *zerolog.Event
	switch outcome {
	case OutcomeApproved:
		ev = uc.log.Info()
	case OutcomeError:
		ev = uc.log.Error().Err(err)
	default:
		ev = uc.log.Warn().Err(err)
	}
	ev.Str("document_id", documentID).
		Str("kind", kind).
		Str("user_id", userID).
		Str("outcome", outcome).
		Msg("aprobación de documento")
}
