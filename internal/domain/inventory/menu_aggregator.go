package inventory

import (
	"fmt"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
)

// AggregateMenu expande cada entrada del menú (receta x porciones) y suma las cantidades por artículo.
// El orden del resultado es el de la primera aparición de cada artículo.
// Un resultado vacío significa "no hay menú", no "consumo cero"; el llamador decide.
func AggregateMenu(
	entries []*entity.DailyMenu,
	recipes map[string]*entity.Recipe,
	articles map[string]*entity.Article,
) ([]Requirement, error) {
	var order []string
	totals := make(map[string]Requirement)

	for _, entry := range entries {
		if entry.Amount <= 0 {
			return nil, fmt.Errorf("menú %s: porciones <= 0: %w", entry.ID, domain.ErrInvalidInput)
		}
		recipe, ok := recipes[entry.RecipeID]
		if !ok || recipe == nil {
			return nil, fmt.Errorf("menú %s: receta %s: %w", entry.ID, entry.RecipeID, domain.ErrNotFound)
		}
		reqs, err := ExpandRecipe(recipe, articles, entry.Amount)
		if err != nil {
			return nil, err
		}
		for _, r := range reqs {
			acc, seen := totals[r.ArticleID]
			if !seen {
				order = append(order, r.ArticleID)
				totals[r.ArticleID] = r
				continue
			}
			acc.Quantity = acc.Quantity.Add(r.Quantity)
			totals[r.ArticleID] = acc
		}
	}

	out := make([]Requirement, 0, len(order))
	for _, id := range order {
		out = append(out, totals[id])
	}
	return out, nil
}
