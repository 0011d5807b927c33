package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/inventory"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DocumentUseCase gestiona documentos en borrador y sus líneas.
// Cada escritura corre en una transacción que bloquea la cabecera, así una línea nunca
// se agrega a un documento que otra petición está aprobando.
type DocumentUseCase struct {
	txRunner  TxRunner
	docRepo   repository.StockDocumentRepository
	articles  repository.ArticleRepository
	vatRepo   repository.VATRepository
	movements repository.StockMovementRepository
}

// NewDocumentUseCase construye el caso de uso de documentos.
func NewDocumentUseCase(
	txRunner TxRunner,
	docRepo repository.StockDocumentRepository,
	articles repository.ArticleRepository,
	vatRepo repository.VATRepository,
	movements repository.StockMovementRepository,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner:  txRunner,
		docRepo:   docRepo,
		articles:  articles,
		vatRepo:   vatRepo,
		movements: movements,
	}
}

// LineInput datos de una línea en borrador. PriceWithoutVat y VATID solo aplican a entradas
// y se expresan por unidad nativa del artículo.
type LineInput struct {
	ArticleID       string
	Amount          decimal.Decimal
	Unit            string
	PriceWithoutVat *decimal.Decimal
	VATID           *string
	Comment         string
}

// DocumentTotals valores derivados de un documento (no se persisten).
type DocumentTotals struct {
	Lines map[string]decimal.Decimal // por ID de línea
	Total decimal.Decimal
}

// Create crea un documento en borrador sin líneas.
func (uc *DocumentUseCase) Create(ctx context.Context, kind, userID, comment string) (*entity.StockDocument, error) {
	if kind != entity.DocumentKindReceipt && kind != entity.DocumentKindIssue {
		return nil, domain.ErrInvalidInput
	}
	doc := &entity.StockDocument{
		ID:        uuid.New().String(),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		CreatedBy: userID,
		Comment:   comment,
	}
	if err := uc.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get obtiene un documento con sus líneas.
func (uc *DocumentUseCase) Get(ctx context.Context, id string) (*entity.StockDocument, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// List lista cabeceras con filtros opcionales de tipo y estado.
func (uc *DocumentUseCase) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.StockDocument, error) {
	if filter.Kind != "" && filter.Kind != entity.DocumentKindReceipt && filter.Kind != entity.DocumentKindIssue {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.docRepo.List(ctx, filter)
}

// Delete elimina un borrador con todas sus líneas. Un documento aprobado no se puede eliminar.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		doc, err := lockDraft(ctx, r, id)
		if err != nil {
			return err
		}
		return r.Documents.Delete(ctx, doc.ID)
	})
}

// AddLine valida y agrega una línea al borrador. Los errores de validación afectan solo a esta línea.
func (uc *DocumentUseCase) AddLine(ctx context.Context, documentID string, in LineInput) (*entity.DocumentLine, error) {
	var line *entity.DocumentLine
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		doc, err := lockDraft(ctx, r, documentID)
		if err != nil {
			return err
		}
		l := &entity.DocumentLine{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Position:   nextPosition(doc.Lines),
		}
		applyLineInput(l, doc.Kind, in)
		if err := validateLine(ctx, r, doc.Kind, l); err != nil {
			return err
		}
		if err := r.Documents.AddLine(ctx, l); err != nil {
			return err
		}
		line = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateLine reemplaza los datos de una línea del borrador y la vuelve a validar.
func (uc *DocumentUseCase) UpdateLine(ctx context.Context, documentID, lineID string, in LineInput) (*entity.DocumentLine, error) {
	var line *entity.DocumentLine
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		doc, err := lockDraft(ctx, r, documentID)
		if err != nil {
			return err
		}
		l, err := r.Documents.GetLine(ctx, doc.ID, lineID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		applyLineInput(l, doc.Kind, in)
		if err := validateLine(ctx, r, doc.Kind, l); err != nil {
			return err
		}
		if err := r.Documents.UpdateLine(ctx, l); err != nil {
			return err
		}
		line = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteLine quita una línea del borrador.
func (uc *DocumentUseCase) DeleteLine(ctx context.Context, documentID, lineID string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		doc, err := lockDraft(ctx, r, documentID)
		if err != nil {
			return err
		}
		l, err := r.Documents.GetLine(ctx, doc.ID, lineID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		return r.Documents.DeleteLine(ctx, doc.ID, lineID)
	})
}

// Totals calcula el valor de cada línea y del documento.
// Entradas: precio con IVA x cantidad nativa. Salidas aprobadas: foto del promedio; borradores: promedio vigente.
func (uc *DocumentUseCase) Totals(ctx context.Context, doc *entity.StockDocument) (*DocumentTotals, error) {
	articles, err := loadArticles(ctx, uc.articles, articleIDs(doc.Lines))
	if err != nil {
		return nil, err
	}
	var vats map[string]*entity.VAT
	if doc.Kind == entity.DocumentKindReceipt {
		if vats, err = loadVATs(ctx, uc.vatRepo, doc.Lines); err != nil {
			return nil, err
		}
	}

	out := &DocumentTotals{Lines: make(map[string]decimal.Decimal, len(doc.Lines)), Total: decimal.Zero}
	for _, l := range doc.Lines {
		qty, err := inventory.ToNative(l.Amount, l.Unit, articles[l.ArticleID].Unit)
		if err != nil {
			return nil, err
		}
		var value decimal.Decimal
		switch {
		case doc.Kind == entity.DocumentKindReceipt:
			if l.PriceWithoutVat != nil && l.VATID != nil && vats[*l.VATID] != nil {
				value = inventory.PriceWithVAT(*l.PriceWithoutVat, vats[*l.VATID].Percentage).Mul(qty)
			}
		case l.AveragePrice != nil:
			value = l.AveragePrice.Mul(qty)
		default:
			value = articles[l.ArticleID].AveragePriceOrZero().Mul(qty)
		}
		out.Lines[l.ID] = value
		out.Total = out.Total.Add(value)
	}
	return out, nil
}

// Movements kardex de un artículo.
func (uc *DocumentUseCase) Movements(ctx context.Context, articleID string, from, to time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	a, err := uc.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 100
	}
	return uc.movements.ListByArticle(ctx, articleID, from, to, limit, offset)
}

func lockDraft(ctx context.Context, r TxRepos, id string) (*entity.StockDocument, error) {
	doc, err := r.Documents.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.Approved {
		return nil, domain.ErrAlreadyApproved
	}
	return doc, nil
}

func applyLineInput(l *entity.DocumentLine, kind string, in LineInput) {
	l.ArticleID = in.ArticleID
	l.Amount = inventory.RoundQuantity(in.Amount)
	l.Unit = in.Unit
	if u, ok := inventory.NormalizeUnit(in.Unit); ok {
		l.Unit = u
	}
	l.Comment = in.Comment
	if kind == entity.DocumentKindReceipt {
		l.PriceWithoutVat = in.PriceWithoutVat
		l.VATID = in.VATID
	} else {
		l.PriceWithoutVat = nil
		l.VATID = nil
	}
}

func validateLine(ctx context.Context, r TxRepos, kind string, l *entity.DocumentLine) error {
	if l.ArticleID == "" {
		return domain.ErrInvalidInput
	}
	article, err := r.Articles.GetByID(ctx, l.ArticleID)
	if err != nil {
		return err
	}
	if article == nil {
		return domain.ErrNotFound
	}
	if kind == entity.DocumentKindIssue {
		return inventory.ValidateIssueLine(l, article)
	}
	if err := inventory.ValidateReceiptLine(l, article); err != nil {
		return err
	}
	vat, err := r.VATs.GetByID(ctx, *l.VATID)
	if err != nil {
		return err
	}
	if vat == nil {
		return domain.ErrMissingTaxRate
	}
	return nil
}

func nextPosition(lines []entity.DocumentLine) int {
	last := 0
	for _, l := range lines {
		if l.Position > last {
			last = l.Position
		}
	}
	return last + 1
}
