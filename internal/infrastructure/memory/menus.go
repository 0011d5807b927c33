package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

var _ repository.DailyMenuRepository = (*MenuRepo)(nil)

// MenuRepo menú diario en memoria.
type MenuRepo struct {
	v *view
}

func (r *MenuRepo) Create(_ context.Context, e *entity.DailyMenu) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.recipes[e.RecipeID]; !ok {
			return domain.ErrNotFound
		}
		c := *e
		c.Date = dateOnly(c.Date)
		st.menus[e.ID] = c
		return nil
	})
}

func (r *MenuRepo) GetByID(_ context.Context, id string) (*entity.DailyMenu, error) {
	var out *entity.DailyMenu
	err := r.v.read(func(st *state) error {
		if m, ok := st.menus[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *MenuRepo) Update(_ context.Context, e *entity.DailyMenu) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.menus[e.ID]; !ok {
			return domain.ErrNotFound
		}
		c := *e
		c.Date = dateOnly(c.Date)
		st.menus[e.ID] = c
		return nil
	})
}

func (r *MenuRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		delete(st.menus, id)
		return nil
	})
}

func (r *MenuRepo) ListByDate(_ context.Context, date time.Time, targetGroupID *string) ([]*entity.DailyMenu, error) {
	day := dateOnly(date)
	var out []*entity.DailyMenu
	err := r.v.read(func(st *state) error {
		for _, m := range st.menus {
			if !m.Date.Equal(day) {
				continue
			}
			if targetGroupID != nil && m.TargetGroupID != *targetGroupID {
				continue
			}
			c := m
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}
