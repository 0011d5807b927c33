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

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas e ingredientes sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Create con ingredientes debe usarse dentro de una tx.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

func (r *RecipeRepo) Create(ctx context.Context, recipe *entity.Recipe) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO recipes (id, name, norm_amount, procedure, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		recipe.ID, recipe.Name, recipe.NormAmount, recipe.Procedure, recipe.Comment, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	for i := range recipe.Ingredients {
		ing := recipe.Ingredients[i]
		ing.RecipeID = recipe.ID
		if err := r.AddIngredient(ctx, &ing); err != nil {
			return err
		}
	}
	return nil
}

func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, `
		SELECT id, name, norm_amount, procedure, comment, created_at, updated_at
		FROM recipes WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Name, &rec.NormAmount, &rec.Procedure, &rec.Comment, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, recipe_id, article_id, amount, unit, comment, position
		FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.ArticleID, &ing.Amount, &ing.Unit, &ing.Comment, &ing.Position); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		rec.Ingredients = append(rec.Ingredients, ing)
	}
	return &rec, rows.Err()
}

func (r *RecipeRepo) Update(ctx context.Context, recipe *entity.Recipe) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE recipes SET name = $2, norm_amount = $3, procedure = $4, comment = $5, updated_at = $6
		WHERE id = $1`,
		recipe.ID, recipe.Name, recipe.NormAmount, recipe.Procedure, recipe.Comment, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecipeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Recipe, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, norm_amount, procedure, comment, created_at, updated_at
		FROM recipes ORDER BY name LIMIT $1 OFFSET $2`, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.NormAmount, &rec.Procedure, &rec.Comment, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Delete elimina la receta y sus ingredientes. Si un menú la usa, retorna domain.ErrConflict.
func (r *RecipeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepo) AddIngredient(ctx context.Context, ing *entity.RecipeIngredient) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO recipe_ingredients (id, recipe_id, article_id, amount, unit, comment, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ing.ID, ing.RecipeID, ing.ArticleID, ing.Amount, ing.Unit, ing.Comment, ing.Position,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert recipe ingredient: %w", err)
	}
	return nil
}

func (r *RecipeRepo) UpdateIngredient(ctx context.Context, ing *entity.RecipeIngredient) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE recipe_ingredients SET article_id = $3, amount = $4, unit = $5, comment = $6
		WHERE recipe_id = $1 AND id = $2`,
		ing.RecipeID, ing.ID, ing.ArticleID, ing.Amount, ing.Unit, ing.Comment,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update recipe ingredient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecipeRepo) DeleteIngredient(ctx context.Context, recipeID, ingredientID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1 AND id = $2`, recipeID, ingredientID)
	if err != nil {
		return fmt.Errorf("delete recipe ingredient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
