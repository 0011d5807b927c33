package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo kardex en memoria (solo inserción).
type MovementRepo struct {
	v *view
}

func (r *MovementRepo) Create(_ context.Context, mov *entity.StockMovement) error {
	return r.v.write(func(st *state) error {
		st.movements = append(st.movements, *mov)
		return nil
	})
}

func (r *MovementRepo) ListByArticle(_ context.Context, articleID string, from, to time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.v.read(func(st *state) error {
		// Recorrido inverso: a igual fecha, el más reciente primero.
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.ArticleID != articleID || !inRange(m.CreatedAt, from, to) {
				continue
			}
			c := m
			out = append(out, &c)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), err
}

// inRange [from, to); los extremos en cero no filtran.
func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
