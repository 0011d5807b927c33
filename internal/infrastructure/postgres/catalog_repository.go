package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

var (
	_ repository.VATRepository     = (*VATRepo)(nil)
	_ repository.CatalogRepository = (*CatalogRepo)(nil)
)

// VATRepo tarifas de IVA sobre PostgreSQL.
type VATRepo struct {
	q Querier
}

// NewVATRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVATRepository(q Querier) *VATRepo {
	return &VATRepo{q: q}
}

func (r *VATRepo) Create(ctx context.Context, v *entity.VAT) error {
	_, err := r.q.Exec(ctx, `INSERT INTO vats (id, percentage, name) VALUES ($1, $2, $3)`, v.ID, v.Percentage, v.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vat: %w", err)
	}
	return nil
}

func (r *VATRepo) GetByID(ctx context.Context, id string) (*entity.VAT, error) {
	var v entity.VAT
	err := r.q.QueryRow(ctx, `SELECT id, percentage, name FROM vats WHERE id = $1`, id).Scan(&v.ID, &v.Percentage, &v.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vat: %w", err)
	}
	return &v, nil
}

func (r *VATRepo) List(ctx context.Context) ([]*entity.VAT, error) {
	rows, err := r.q.Query(ctx, `SELECT id, percentage, name FROM vats ORDER BY percentage`)
	if err != nil {
		return nil, fmt.Errorf("list vats: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.VAT, error) {
		var v entity.VAT
		err := row.Scan(&v.ID, &v.Percentage, &v.Name)
		return &v, err
	})
}

// CatalogRepo alérgenos, grupos de comensales y tipos de comida sobre PostgreSQL.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

func (r *CatalogRepo) CreateAllergen(ctx context.Context, a *entity.Allergen) error {
	return r.insert(ctx, "allergen",
		`INSERT INTO allergens (id, code, description) VALUES ($1, $2, $3)`, a.ID, a.Code, a.Description)
}

func (r *CatalogRepo) ListAllergens(ctx context.Context) ([]*entity.Allergen, error) {
	rows, err := r.q.Query(ctx, `SELECT id, code, description FROM allergens ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list allergens: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Allergen, error) {
		var a entity.Allergen
		err := row.Scan(&a.ID, &a.Code, &a.Description)
		return &a, err
	})
}

func (r *CatalogRepo) CreateTargetGroup(ctx context.Context, g *entity.TargetGroup) error {
	return r.insert(ctx, "target group",
		`INSERT INTO target_groups (id, name) VALUES ($1, $2)`, g.ID, g.Name)
}

func (r *CatalogRepo) GetTargetGroup(ctx context.Context, id string) (*entity.TargetGroup, error) {
	var g entity.TargetGroup
	err := r.q.QueryRow(ctx, `SELECT id, name FROM target_groups WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get target group: %w", err)
	}
	return &g, nil
}

func (r *CatalogRepo) ListTargetGroups(ctx context.Context) ([]*entity.TargetGroup, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM target_groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list target groups: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.TargetGroup, error) {
		var g entity.TargetGroup
		err := row.Scan(&g.ID, &g.Name)
		return &g, err
	})
}

func (r *CatalogRepo) CreateMealType(ctx context.Context, m *entity.MealType) error {
	return r.insert(ctx, "meal type",
		`INSERT INTO meal_types (id, name, category) VALUES ($1, $2, $3)`, m.ID, m.Name, m.Category)
}

func (r *CatalogRepo) GetMealType(ctx context.Context, id string) (*entity.MealType, error) {
	var m entity.MealType
	err := r.q.QueryRow(ctx, `SELECT id, name, category FROM meal_types WHERE id = $1`, id).Scan(&m.ID, &m.Name, &m.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meal type: %w", err)
	}
	return &m, nil
}

func (r *CatalogRepo) ListMealTypes(ctx context.Context) ([]*entity.MealType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, category FROM meal_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list meal types: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.MealType, error) {
		var m entity.MealType
		err := row.Scan(&m.ID, &m.Name, &m.Category)
		return &m, err
	})
}

func (r *CatalogRepo) insert(ctx context.Context, what, query string, args ...any) error {
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", what, err)
	}
	return nil
}
