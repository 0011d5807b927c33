package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas e ingredientes en memoria.
type RecipeRepo struct {
	v *view
}

func (r *RecipeRepo) Create(_ context.Context, recipe *entity.Recipe) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.recipes[recipe.ID]; ok {
			return domain.ErrDuplicate
		}
		h := *recipe
		h.Ingredients = nil
		st.recipes[recipe.ID] = h
		for _, ing := range recipe.Ingredients {
			if _, ok := st.articles[ing.ArticleID]; !ok {
				return domain.ErrNotFound
			}
			ing.RecipeID = recipe.ID
			st.ingredients[ing.ID] = ing
		}
		return nil
	})
}

func (r *RecipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	var out *entity.Recipe
	err := r.v.read(func(st *state) error {
		h, ok := st.recipes[id]
		if !ok {
			return nil
		}
		h.Ingredients = recipeIngredients(st, id)
		out = &h
		return nil
	})
	return out, err
}

func (r *RecipeRepo) Update(_ context.Context, recipe *entity.Recipe) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.recipes[recipe.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = recipe.Name
		cur.NormAmount = recipe.NormAmount
		cur.Procedure = recipe.Procedure
		cur.Comment = recipe.Comment
		cur.UpdatedAt = recipe.UpdatedAt
		st.recipes[recipe.ID] = cur
		return nil
	})
}

func (r *RecipeRepo) List(_ context.Context, limit, offset int) ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	err := r.v.read(func(st *state) error {
		for _, h := range st.recipes {
			c := h
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), err
}

func (r *RecipeRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		for _, m := range st.menus {
			if m.RecipeID == id {
				return domain.ErrConflict
			}
		}
		delete(st.recipes, id)
		for iid, ing := range st.ingredients {
			if ing.RecipeID == id {
				delete(st.ingredients, iid)
			}
		}
		return nil
	})
}

func (r *RecipeRepo) AddIngredient(_ context.Context, ing *entity.RecipeIngredient) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.recipes[ing.RecipeID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.articles[ing.ArticleID]; !ok {
			return domain.ErrNotFound
		}
		st.ingredients[ing.ID] = *ing
		return nil
	})
}

func (r *RecipeRepo) UpdateIngredient(_ context.Context, ing *entity.RecipeIngredient) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.ingredients[ing.ID]
		if !ok || cur.RecipeID != ing.RecipeID {
			return domain.ErrNotFound
		}
		st.ingredients[ing.ID] = *ing
		return nil
	})
}

func (r *RecipeRepo) DeleteIngredient(_ context.Context, recipeID, ingredientID string) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.ingredients[ingredientID]
		if !ok || cur.RecipeID != recipeID {
			return domain.ErrNotFound
		}
		delete(st.ingredients, ingredientID)
		return nil
	})
}

func recipeIngredients(st *state, recipeID string) []entity.RecipeIngredient {
	var out []entity.RecipeIngredient
	for _, ing := range st.ingredients {
		if ing.RecipeID == recipeID {
			out = append(out, ing)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
