package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeIngredientRequest ingrediente relativo a norm_amount porciones.
type RecipeIngredientRequest struct {
	ArticleID string          `json:"article_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Unit      string          `json:"unit" validate:"required"`
	Comment   string          `json:"comment" validate:"max=500"`
}

// CreateRecipeRequest entrada para crear una receta con sus ingredientes.
type CreateRecipeRequest struct {
	Name        string                    `json:"name" validate:"required,min=1,max=200"`
	NormAmount  int                       `json:"norm_amount" validate:"required,min=1"`
	Procedure   string                    `json:"procedure"`
	Comment     string                    `json:"comment"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
}

// UpdateRecipeRequest entrada para actualizar la cabecera de una receta.
type UpdateRecipeRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	NormAmount *int    `json:"norm_amount" validate:"omitempty,min=1"`
	Procedure  *string `json:"procedure"`
	Comment    *string `json:"comment"`
}

// RecipeIngredientResponse ingrediente de una receta.
type RecipeIngredientResponse struct {
	ID        string          `json:"id"`
	ArticleID string          `json:"article_id"`
	Amount    decimal.Decimal `json:"amount"`
	Unit      string          `json:"unit"`
	Comment   string          `json:"comment"`
	Position  int             `json:"position"`
}

// RecipeResponse salida de una receta.
type RecipeResponse struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	NormAmount  int                        `json:"norm_amount"`
	Procedure   string                     `json:"procedure"`
	Comment     string                     `json:"comment"`
	Allergens   []string                   `json:"allergens"` // unión de los alérgenos de sus artículos
	Ingredients []RecipeIngredientResponse `json:"ingredients"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// RecipeListResponse lista paginada de recetas (sin ingredientes).
type RecipeListResponse struct {
	Items []RecipeResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// RequirementDTO cantidad requerida de un artículo en su unidad nativa.
type RequirementDTO struct {
	ArticleID   string          `json:"article_id"`
	ArticleName string          `json:"article_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	OnStock     decimal.Decimal `json:"on_stock"`
	Shortage    decimal.Decimal `json:"shortage"` // 0 si alcanza el stock
}

// RecipeExpansionResponse resultado de GET /api/recipes/:id/expand.
type RecipeExpansionResponse struct {
	RecipeID     string           `json:"recipe_id"`
	Portions     int              `json:"portions"`
	Requirements []RequirementDTO `json:"requirements"`
}
