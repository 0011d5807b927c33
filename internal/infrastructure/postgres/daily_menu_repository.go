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
)

var _ repository.DailyMenuRepository = (*DailyMenuRepo)(nil)

const menuColumns = `id, menu_date, amount, target_group_id, meal_type_id, recipe_id, comment, created_at`

// DailyMenuRepo menú diario sobre PostgreSQL.
type DailyMenuRepo struct {
	q Querier
}

// NewDailyMenuRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDailyMenuRepository(q Querier) *DailyMenuRepo {
	return &DailyMenuRepo{q: q}
}

func (r *DailyMenuRepo) Create(ctx context.Context, e *entity.DailyMenu) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO daily_menus (`+menuColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Date, e.Amount, e.TargetGroupID, e.MealTypeID, e.RecipeID, e.Comment, e.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert daily menu: %w", err)
	}
	return nil
}

func (r *DailyMenuRepo) GetByID(ctx context.Context, id string) (*entity.DailyMenu, error) {
	e, err := scanMenu(r.q.QueryRow(ctx, `SELECT `+menuColumns+` FROM daily_menus WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily menu: %w", err)
	}
	return e, nil
}

func (r *DailyMenuRepo) Update(ctx context.Context, e *entity.DailyMenu) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE daily_menus
		SET menu_date = $2, amount = $3, target_group_id = $4, meal_type_id = $5, recipe_id = $6, comment = $7
		WHERE id = $1`,
		e.ID, e.Date, e.Amount, e.TargetGroupID, e.MealTypeID, e.RecipeID, e.Comment,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update daily menu: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DailyMenuRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM daily_menus WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete daily menu: %w", err)
	}
	return nil
}

// ListByDate entradas de la fecha en orden de creación.
func (r *DailyMenuRepo) ListByDate(ctx context.Context, date time.Time, targetGroupID *string) ([]*entity.DailyMenu, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+menuColumns+` FROM daily_menus
		WHERE menu_date = $1 AND ($2::text IS NULL OR target_group_id = $2)
		ORDER BY created_at, id`, date, targetGroupID)
	if err != nil {
		return nil, fmt.Errorf("list daily menus: %w", err)
	}
	defer rows.Close()
	var list []*entity.DailyMenu
	for rows.Next() {
		e, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily menu: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanMenu(row pgx.Row) (*entity.DailyMenu, error) {
	var e entity.DailyMenu
	if err := row.Scan(&e.ID, &e.Date, &e.Amount, &e.TargetGroupID, &e.MealTypeID, &e.RecipeID, &e.Comment, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Date = time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
	return &e, nil
}
