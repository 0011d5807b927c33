package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/inventory"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

// MenuExpansion menú de una fecha expandido a consumo por artículo.
// Requirements solo contiene cantidades positivas a la escala del libro.
type MenuExpansion struct {
	Entries      []*entity.DailyMenu
	Articles     map[string]*entity.Article
	Requirements []inventory.Requirement
}

// ExpandMenu carga entradas, recetas y artículos del menú y agrega su consumo.
// Lo usan la vista previa de requerimientos y la salida generada desde menú.
// Sin entradas, o sin ninguna cantidad positiva, retorna domain.ErrNoMenuDefined.
func ExpandMenu(
	ctx context.Context,
	menus repository.DailyMenuRepository,
	recipeRepo repository.RecipeRepository,
	articleRepo repository.ArticleRepository,
	date time.Time,
	targetGroupID *string,
) (*MenuExpansion, error) {
	entries, err := menus.ListByDate(ctx, DateOnly(date), targetGroupID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrNoMenuDefined
	}

	recipes := make(map[string]*entity.Recipe)
	var ids []string
	for _, e := range entries {
		if _, ok := recipes[e.RecipeID]; ok {
			continue
		}
		rec, err := recipeRepo.GetByID(ctx, e.RecipeID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, fmt.Errorf("receta %s: %w", e.RecipeID, domain.ErrNotFound)
		}
		recipes[rec.ID] = rec
		for _, ing := range rec.Ingredients {
			ids = append(ids, ing.ArticleID)
		}
	}
	articles, err := loadArticles(ctx, articleRepo, ids)
	if err != nil {
		return nil, err
	}

	reqs, err := inventory.AggregateMenu(entries, recipes, articles)
	if err != nil {
		return nil, err
	}
	positive := reqs[:0]
	for _, req := range reqs {
		if req.Quantity.IsPositive() {
			positive = append(positive, req)
		}
	}
	if len(positive) == 0 {
		return nil, domain.ErrNoMenuDefined
	}
	return &MenuExpansion{Entries: entries, Articles: articles, Requirements: positive}, nil
}
