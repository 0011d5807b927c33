package repository

import (
	"context"

	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia para recetas y sus ingredientes.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	// GetByID obtiene la receta con sus ingredientes ordenados por posición.
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	Update(ctx context.Context, recipe *entity.Recipe) error
	List(ctx context.Context, limit, offset int) ([]*entity.Recipe, error)
	Delete(ctx context.Context, id string) error

	AddIngredient(ctx context.Context, ing *entity.RecipeIngredient) error
	UpdateIngredient(ctx context.Context, ing *entity.RecipeIngredient) error
	DeleteIngredient(ctx context.Context, recipeID, ingredientID string) error
}
