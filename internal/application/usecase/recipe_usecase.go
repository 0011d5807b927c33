package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/inventory"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RecipeUseCase casos de uso para recetas e ingredientes.
type RecipeUseCase struct {
	txRunner ledger.TxRunner
	repo     repository.RecipeRepository
	articles repository.ArticleRepository
}

// NewRecipeUseCase construye el caso de uso. La creación con ingredientes usa una transacción.
func NewRecipeUseCase(
	txRunner ledger.TxRunner,
	repo repository.RecipeRepository,
	articles repository.ArticleRepository,
) *RecipeUseCase {
	return &RecipeUseCase{txRunner: txRunner, repo: repo, articles: articles}
}

// Create crea la receta y sus ingredientes en una sola transacción.
func (uc *RecipeUseCase) Create(ctx context.Context, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if in.NormAmount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	recipe := &entity.Recipe{
		ID:         uuid.New().String(),
		Name:       in.Name,
		NormAmount: in.NormAmount,
		Procedure:  in.Procedure,
		Comment:    in.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var articles map[string]*entity.Article
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		articles = make(map[string]*entity.Article, len(in.Ingredients))
		for i, ing := range in.Ingredients {
			item := entity.RecipeIngredient{
				ID:        uuid.New().String(),
				RecipeID:  recipe.ID,
				ArticleID: ing.ArticleID,
				Amount:    ing.Amount,
				Unit:      ing.Unit,
				Comment:   ing.Comment,
				Position:  i + 1,
			}
			article, err := checkIngredient(ctx, r.Articles, recipe, &item)
			if err != nil {
				return err
			}
			articles[article.ID] = article
			recipe.Ingredients = append(recipe.Ingredients, item)
		}
		return r.Recipes.Create(ctx, recipe)
	})
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe, articles), nil
}

// GetByID obtiene la receta con sus ingredientes y la unión de alérgenos.
func (uc *RecipeUseCase) GetByID(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	recipe, articles, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe, articles), nil
}

// Update actualiza la cabecera de la receta.
func (uc *RecipeUseCase) Update(ctx context.Context, id string, in dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	recipe, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		recipe.Name = *in.Name
	}
	if in.NormAmount != nil {
		if *in.NormAmount <= 0 {
			return nil, domain.ErrInvalidInput
		}
		recipe.NormAmount = *in.NormAmount
	}
	if in.Procedure != nil {
		recipe.Procedure = *in.Procedure
	}
	if in.Comment != nil {
		recipe.Comment = *in.Comment
	}
	recipe.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista recetas sin ingredientes.
func (uc *RecipeUseCase) List(ctx context.Context, limit, offset int) (*dto.RecipeListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		resp := toRecipeResponse(r, nil)
		resp.Ingredients = nil
		items = append(items, *resp)
	}
	return &dto.RecipeListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina una receta. Si está programada en algún menú retorna domain.ErrConflict.
func (uc *RecipeUseCase) Delete(ctx context.Context, id string) error {
	recipe, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// AddIngredient agrega un ingrediente al final de la receta.
func (uc *RecipeUseCase) AddIngredient(ctx context.Context, recipeID string, in dto.RecipeIngredientRequest) (*dto.RecipeResponse, error) {
	recipe, err := uc.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	last := 0
	for _, ing := range recipe.Ingredients {
		if ing.Position > last {
			last = ing.Position
		}
	}
	item := &entity.RecipeIngredient{
		ID:        uuid.New().String(),
		RecipeID:  recipeID,
		ArticleID: in.ArticleID,
		Amount:    in.Amount,
		Unit:      in.Unit,
		Comment:   in.Comment,
		Position:  last + 1,
	}
	if _, err := checkIngredient(ctx, uc.articles, recipe, item); err != nil {
		return nil, err
	}
	if err := uc.repo.AddIngredient(ctx, item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, recipeID)
}

// UpdateIngredient reemplaza artículo, cantidad, unidad y comentario de un ingrediente.
func (uc *RecipeUseCase) UpdateIngredient(ctx context.Context, recipeID, ingredientID string, in dto.RecipeIngredientRequest) (*dto.RecipeResponse, error) {
	recipe, err := uc.repo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	var item *entity.RecipeIngredient
	for i := range recipe.Ingredients {
		if recipe.Ingredients[i].ID == ingredientID {
			item = &recipe.Ingredients[i]
		}
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.ArticleID = in.ArticleID
	item.Amount = in.Amount
	item.Unit = in.Unit
	item.Comment = in.Comment
	if _, err := checkIngredient(ctx, uc.articles, recipe, item); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateIngredient(ctx, item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, recipeID)
}

// DeleteIngredient elimina un ingrediente de la receta.
func (uc *RecipeUseCase) DeleteIngredient(ctx context.Context, recipeID, ingredientID string) error {
	return uc.repo.DeleteIngredient(ctx, recipeID, ingredientID)
}

// Expand escala la receta a portions porciones y compara cada requerimiento con el stock.
func (uc *RecipeUseCase) Expand(ctx context.Context, id string, portions int) (*dto.RecipeExpansionResponse, error) {
	if portions <= 0 {
		return nil, domain.ErrInvalidInput
	}
	recipe, articles, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	reqs, err := inventory.ExpandRecipe(recipe, articles, portions)
	if err != nil {
		return nil, err
	}
	return &dto.RecipeExpansionResponse{
		RecipeID:     recipe.ID,
		Portions:     portions,
		Requirements: toRequirementDTOs(reqs, articles),
	}, nil
}

func (uc *RecipeUseCase) load(ctx context.Context, id string) (*entity.Recipe, map[string]*entity.Article, error) {
	recipe, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if recipe == nil {
		return nil, nil, domain.ErrNotFound
	}
	articles := make(map[string]*entity.Article, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		if _, ok := articles[ing.ArticleID]; ok {
			continue
		}
		a, err := uc.articles.GetByID(ctx, ing.ArticleID)
		if err != nil {
			return nil, nil, err
		}
		if a == nil {
			return nil, nil, fmt.Errorf("artículo %s: %w", ing.ArticleID, domain.ErrNotFound)
		}
		articles[a.ID] = a
	}
	return recipe, articles, nil
}

// checkIngredient normaliza la unidad y verifica que sea convertible a la unidad del artículo.
func checkIngredient(ctx context.Context, repo repository.ArticleRepository, recipe *entity.Recipe, ing *entity.RecipeIngredient) (*entity.Article, error) {
	ing.Amount = inventory.RoundQuantity(ing.Amount)
	if !ing.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	unit, ok := inventory.NormalizeUnit(ing.Unit)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	ing.Unit = unit
	article, err := repo.GetByID(ctx, ing.ArticleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("artículo %s: %w", ing.ArticleID, domain.ErrNotFound)
	}
	if !inventory.Compatible(unit, article.Unit) {
		return nil, &domain.RecipeUnitsError{
			RecipeID:   recipe.ID,
			RecipeName: recipe.Name,
			ArticleID:  article.ID,
			Err:        &domain.IncompatibleUnitsError{From: unit, To: article.Unit},
		}
	}
	return article, nil
}

func toRecipeResponse(r *entity.Recipe, articles map[string]*entity.Article) *dto.RecipeResponse {
	ingredients := make([]dto.RecipeIngredientResponse, 0, len(r.Ingredients))
	seen := map[string]struct{}{}
	allergens := []string{}
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, dto.RecipeIngredientResponse{
			ID:        ing.ID,
			ArticleID: ing.ArticleID,
			Amount:    ing.Amount,
			Unit:      ing.Unit,
			Comment:   ing.Comment,
			Position:  ing.Position,
		})
		if a, ok := articles[ing.ArticleID]; ok {
			for _, code := range a.Allergens {
				if _, dup := seen[code]; !dup {
					seen[code] = struct{}{}
					allergens = append(allergens, code)
				}
			}
		}
	}
	sort.Strings(allergens)
	return &dto.RecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		NormAmount:  r.NormAmount,
		Procedure:   r.Procedure,
		Comment:     r.Comment,
		Allergens:   allergens,
		Ingredients: ingredients,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRequirementDTOs(reqs []inventory.Requirement, articles map[string]*entity.Article) []dto.RequirementDTO {
	out := make([]dto.RequirementDTO, 0, len(reqs))
	for _, r := range reqs {
		item := dto.RequirementDTO{
			ArticleID: r.ArticleID,
			Quantity:  r.Quantity,
			Unit:      r.Unit,
			Shortage:  decimal.Zero,
		}
		if a, ok := articles[r.ArticleID]; ok {
			item.ArticleName = a.Name
			item.OnStock = a.OnStock
			if r.Quantity.GreaterThan(a.OnStock) {
				item.Shortage = r.Quantity.Sub(a.OnStock)
			}
		}
		out = append(out, item)
	}
	return out
}
