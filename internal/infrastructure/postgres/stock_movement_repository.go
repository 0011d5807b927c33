package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kardex sobre PostgreSQL. Solo inserciones y consultas.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, document_id, line_id, article_id, type, quantity, unit_price, total_price, stock_after, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.DocumentID, m.LineID, m.ArticleID, m.Type, m.Quantity,
		m.UnitPrice, m.TotalPrice, m.StockAfter, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByArticle movimientos del artículo en [from, to), más recientes primero.
func (r *StockMovementRepo) ListByArticle(
	ctx context.Context,
	articleID string,
	from, to time.Time,
	limit, offset int,
) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, document_id, line_id, article_id, type, quantity, unit_price, total_price, stock_after, created_at, created_by
		FROM stock_movements
		WHERE article_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, articleID, optionalTime(from), optionalTime(to), limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.DocumentID, &m.LineID, &m.ArticleID, &m.Type, &m.Quantity,
			&m.UnitPrice, &m.TotalPrice, &m.StockAfter, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
