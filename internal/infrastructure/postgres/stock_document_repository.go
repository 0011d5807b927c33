package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockDocumentRepository = (*StockDocumentRepo)(nil)

const (
	documentColumns = `id, kind, created_at, created_by, approved, approved_at, approved_by, comment, source_menu_date, source_target_group_id`
	lineColumns     = `id, document_id, position, article_id, amount, unit, price_without_vat, vat_id, average_price, comment`
)

// StockDocumentRepo entradas y salidas de bodega con sus líneas sobre PostgreSQL.
type StockDocumentRepo struct {
	q Querier
}

// NewStockDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockDocumentRepository(q Querier) *StockDocumentRepo {
	return &StockDocumentRepo{q: q}
}

// Create persiste la cabecera del documento.
func (r *StockDocumentRepo) Create(ctx context.Context, doc *entity.StockDocument) error {
	query := `
		INSERT INTO stock_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Kind, doc.CreatedAt, doc.CreatedBy, doc.Approved, doc.ApprovedAt, doc.ApprovedBy,
		doc.Comment, doc.SourceMenuDate, doc.SourceTargetGroupID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock document: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera con sus líneas.
func (r *StockDocumentRepo) GetByID(ctx context.Context, id string) (*entity.StockDocument, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM stock_documents WHERE id = $1`, id)
}

// GetForUpdate obtiene la cabecera bloqueando la fila (SELECT FOR UPDATE) y sus líneas.
func (r *StockDocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockDocument, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM stock_documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockDocumentRepo) get(ctx context.Context, query, id string) (*entity.StockDocument, error) {
	doc, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock document: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+lineColumns+` FROM document_lines WHERE document_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		doc.Lines = append(doc.Lines, *l)
	}
	return doc, rows.Err()
}

// List lista cabeceras filtradas, más recientes primero.
func (r *StockDocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.StockDocument, error) {
	var kind *string
	if f.Kind != "" {
		kind = &f.Kind
	}
	query := `
		SELECT ` + documentColumns + ` FROM stock_documents
		WHERE ($1::text IS NULL OR kind = $1)
		  AND ($2::boolean IS NULL OR approved = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, kind, f.Approved, limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list stock documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// MarkApproved marca el documento aprobado. Un documento ya aprobado no se vuelve a tocar.
func (r *StockDocumentRepo) MarkApproved(ctx context.Context, id string, at time.Time, userID string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_documents SET approved = TRUE, approved_at = $2, approved_by = $3
		WHERE id = $1 AND approved = FALSE`, id, at, userID)
	if err != nil {
		return fmt.Errorf("approve stock document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyApproved
	}
	return nil
}

// Delete elimina la cabecera; las líneas se borran en cascada.
func (r *StockDocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_documents WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete stock document: %w", err)
	}
	return nil
}

// GetLine obtiene una línea del documento.
func (r *StockDocumentRepo) GetLine(ctx context.Context, documentID, lineID string) (*entity.DocumentLine, error) {
	l, err := scanLine(r.q.QueryRow(ctx,
		`SELECT `+lineColumns+` FROM document_lines WHERE document_id = $1 AND id = $2`, documentID, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document line: %w", err)
	}
	return l, nil
}

// AddLine inserta una línea.
func (r *StockDocumentRepo) AddLine(ctx context.Context, l *entity.DocumentLine) error {
	query := `
		INSERT INTO document_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.DocumentID, l.Position, l.ArticleID, l.Amount, l.Unit,
		l.PriceWithoutVat, l.VATID, l.AveragePrice, l.Comment,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

// UpdateLine reemplaza los campos editables de una línea.
func (r *StockDocumentRepo) UpdateLine(ctx context.Context, l *entity.DocumentLine) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE document_lines
		SET article_id = $3, amount = $4, unit = $5, price_without_vat = $6, vat_id = $7, comment = $8
		WHERE document_id = $1 AND id = $2`,
		l.DocumentID, l.ID, l.ArticleID, l.Amount, l.Unit, l.PriceWithoutVat, l.VATID, l.Comment,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update document line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLine elimina una línea del documento.
func (r *StockDocumentRepo) DeleteLine(ctx context.Context, documentID, lineID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM document_lines WHERE document_id = $1 AND id = $2`, documentID, lineID)
	if err != nil {
		return fmt.Errorf("delete document line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetLineAveragePrice guarda la foto del precio promedio de una línea de salida.
func (r *StockDocumentRepo) SetLineAveragePrice(ctx context.Context, lineID string, price decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE document_lines SET average_price = $2 WHERE id = $1`, lineID, price)
	if err != nil {
		return fmt.Errorf("set line average price: %w", err)
	}
	return nil
}

func scanDocument(row pgx.Row) (*entity.StockDocument, error) {
	var d entity.StockDocument
	if err := row.Scan(
		&d.ID, &d.Kind, &d.CreatedAt, &d.CreatedBy, &d.Approved, &d.ApprovedAt, &d.ApprovedBy,
		&d.Comment, &d.SourceMenuDate, &d.SourceTargetGroupID,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanLine(row pgx.Row) (*entity.DocumentLine, error) {
	var l entity.DocumentLine
	if err := row.Scan(
		&l.ID, &l.DocumentID, &l.Position, &l.ArticleID, &l.Amount, &l.Unit,
		&l.PriceWithoutVat, &l.VATID, &l.AveragePrice, &l.Comment,
	); err != nil {
		return nil, err
	}
	return &l, nil
}
