package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

var (
	_ repository.VATRepository     = (*VATRepo)(nil)
	_ repository.CatalogRepository = (*CatalogRepo)(nil)
)

// VATRepo tarifas de IVA en memoria.
type VATRepo struct {
	v *view
}

func (r *VATRepo) Create(_ context.Context, vat *entity.VAT) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.vats[vat.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.vats {
			if other.Percentage == vat.Percentage || other.Name == vat.Name {
				return domain.ErrDuplicate
			}
		}
		st.vats[vat.ID] = *vat
		return nil
	})
}

func (r *VATRepo) GetByID(_ context.Context, id string) (*entity.VAT, error) {
	var out *entity.VAT
	err := r.v.read(func(st *state) error {
		if v, ok := st.vats[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *VATRepo) List(_ context.Context) ([]*entity.VAT, error) {
	var out []*entity.VAT
	err := r.v.read(func(st *state) error {
		for _, v := range st.vats {
			c := v
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Percentage < out[j].Percentage })
	return out, err
}

// CatalogRepo alérgenos, grupos de comensales y tipos de comida en memoria.
type CatalogRepo struct {
	v *view
}

func (r *CatalogRepo) CreateAllergen(_ context.Context, a *entity.Allergen) error {
	return r.v.write(func(st *state) error {
		for _, other := range st.allergens {
			if other.Code == a.Code {
				return domain.ErrDuplicate
			}
		}
		st.allergens[a.ID] = *a
		return nil
	})
}

func (r *CatalogRepo) ListAllergens(_ context.Context) ([]*entity.Allergen, error) {
	var out []*entity.Allergen
	err := r.v.read(func(st *state) error {
		for _, a := range st.allergens {
			c := a
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

func (r *CatalogRepo) CreateTargetGroup(_ context.Context, g *entity.TargetGroup) error {
	return r.v.write(func(st *state) error {
		for _, other := range st.targetGroups {
			if other.Name == g.Name {
				return domain.ErrDuplicate
			}
		}
		st.targetGroups[g.ID] = *g
		return nil
	})
}

func (r *CatalogRepo) GetTargetGroup(_ context.Context, id string) (*entity.TargetGroup, error) {
	var out *entity.TargetGroup
	err := r.v.read(func(st *state) error {
		if g, ok := st.targetGroups[id]; ok {
			out = &g
		}
		return nil
	})
	return out, err
}

func (r *CatalogRepo) ListTargetGroups(_ context.Context) ([]*entity.TargetGroup, error) {
	var out []*entity.TargetGroup
	err := r.v.read(func(st *state) error {
		for _, g := range st.targetGroups {
			c := g
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *CatalogRepo) CreateMealType(_ context.Context, m *entity.MealType) error {
	return r.v.write(func(st *state) error {
		for _, other := range st.mealTypes {
			if other.Name == m.Name {
				return domain.ErrDuplicate
			}
		}
		st.mealTypes[m.ID] = *m
		return nil
	})
}

func (r *CatalogRepo) GetMealType(_ context.Context, id string) (*entity.MealType, error) {
	var out *entity.MealType
	err := r.v.read(func(st *state) error {
		if m, ok := st.mealTypes[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *CatalogRepo) ListMealTypes(_ context.Context) ([]*entity.MealType, error) {
	var out []*entity.MealType
	err := r.v.read(func(st *state) error {
		for _, m := range st.mealTypes {
			c := m
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}
