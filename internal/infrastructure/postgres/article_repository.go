package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

const articleColumns = `id, code, name, unit, on_stock, average_price, min_on_stock, allergens, comment, created_at, updated_at`

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Code, a.Name, a.Unit, a.OnStock, a.AveragePrice, a.MinOnStock,
		allergenCodes(a.Allergens), a.Comment, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return r.getOne(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
}

// GetByCode obtiene un artículo por código.
func (r *ArticleRepo) GetByCode(ctx context.Context, code string) (*entity.Article, error) {
	return r.getOne(ctx, `SELECT `+articleColumns+` FROM articles WHERE code = $1`, code)
}

// GetForUpdate obtiene el artículo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *ArticleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Article, error) {
	return r.getOne(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1 FOR UPDATE`, id)
}

func (r *ArticleRepo) getOne(ctx context.Context, query string, arg string) (*entity.Article, error) {
	a, err := scanArticle(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// Update actualiza los metadatos. No modifica stock ni precio promedio.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	query := `
		UPDATE articles SET code = $2, name = $3, unit = $4, min_on_stock = $5, allergens = $6, comment = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		a.ID, a.Code, a.Name, a.Unit, a.MinOnStock, allergenCodes(a.Allergens), a.Comment, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update article: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe stock y precio promedio (usado solo por el motor de aprobación).
func (r *ArticleRepo) UpdateStock(ctx context.Context, id string, onStock decimal.Decimal, averagePrice *decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE articles SET on_stock = $2, average_price = $3, updated_at = now() WHERE id = $1`,
		id, onStock, averagePrice,
	)
	if err != nil {
		return fmt.Errorf("update article stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista artículos por código con paginación.
func (r *ArticleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY code LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limitOrAll(limit), offset)
}

// ListBelowMinimum artículos con stock bajo el mínimo, mayor déficit primero.
func (r *ArticleRepo) ListBelowMinimum(ctx context.Context) ([]*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + ` FROM articles
		WHERE on_stock < min_on_stock
		ORDER BY (min_on_stock - on_stock) DESC, code`
	return r.list(ctx, query)
}

func (r *ArticleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Article, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete elimina un artículo por ID. Las FK con RESTRICT impiden borrar uno referenciado.
func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrArticleInUse
		}
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// IsReferenced indica si hay líneas de documento o ingredientes que usan el artículo.
func (r *ArticleRepo) IsReferenced(ctx context.Context, id string) (bool, error) {
	var used bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM document_lines WHERE article_id = $1)
		    OR EXISTS (SELECT 1 FROM recipe_ingredients WHERE article_id = $1)`, id,
	).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("article references: %w", err)
	}
	return used, nil
}

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	if err := row.Scan(
		&a.ID, &a.Code, &a.Name, &a.Unit, &a.OnStock, &a.AveragePrice, &a.MinOnStock,
		&a.Allergens, &a.Comment, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func allergenCodes(codes []string) []string {
	if codes == nil {
		return []string{}
	}
	return codes
}

// limitOrAll traduce limit <= 0 a NULL, que en LIMIT significa sin límite.
func limitOrAll(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
