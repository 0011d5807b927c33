package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo artículos en memoria.
type ArticleRepo struct {
	v *view
}

func (r *ArticleRepo) Create(_ context.Context, a *entity.Article) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.articles[a.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.articles {
			if other.Code == a.Code {
				return domain.ErrDuplicate
			}
		}
		st.articles[a.ID] = cloneArticle(*a)
		return nil
	})
}

func (r *ArticleRepo) GetByID(_ context.Context, id string) (*entity.Article, error) {
	var out *entity.Article
	err := r.v.read(func(st *state) error {
		if a, ok := st.articles[id]; ok {
			c := cloneArticle(a)
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria la transacción ya tiene acceso exclusivo al estado.
func (r *ArticleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Article, error) {
	return r.GetByID(ctx, id)
}

func (r *ArticleRepo) GetByCode(_ context.Context, code string) (*entity.Article, error) {
	var out *entity.Article
	err := r.v.read(func(st *state) error {
		for _, a := range st.articles {
			if a.Code == code {
				c := cloneArticle(a)
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ArticleRepo) Update(_ context.Context, a *entity.Article) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.articles[a.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.articles {
			if id != a.ID && other.Code == a.Code {
				return domain.ErrDuplicate
			}
		}
		cur.Code = a.Code
		cur.Name = a.Name
		cur.Unit = a.Unit
		cur.MinOnStock = a.MinOnStock
		cur.Allergens = append([]string(nil), a.Allergens...)
		cur.Comment = a.Comment
		cur.UpdatedAt = a.UpdatedAt
		st.articles[a.ID] = cur
		return nil
	})
}

func (r *ArticleRepo) UpdateStock(_ context.Context, id string, onStock decimal.Decimal, averagePrice *decimal.Decimal) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.articles[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.OnStock = onStock
		cur.AveragePrice = nil
		if averagePrice != nil {
			p := *averagePrice
			cur.AveragePrice = &p
		}
		cur.UpdatedAt = time.Now().UTC()
		st.articles[id] = cur
		return nil
	})
}

func (r *ArticleRepo) List(_ context.Context, limit, offset int) ([]*entity.Article, error) {
	var out []*entity.Article
	err := r.v.read(func(st *state) error {
		out = sortedArticles(st, func(entity.Article) bool { return true })
		return nil
	})
	return page(out, limit, offset), err
}

func (r *ArticleRepo) ListBelowMinimum(_ context.Context) ([]*entity.Article, error) {
	var out []*entity.Article
	err := r.v.read(func(st *state) error {
		out = sortedArticles(st, func(a entity.Article) bool { return a.BelowMinimum() })
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].MinOnStock.Sub(out[i].OnStock)
		dj := out[j].MinOnStock.Sub(out[j].OnStock)
		return di.GreaterThan(dj)
	})
	return out, err
}

func (r *ArticleRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		delete(st.articles, id)
		return nil
	})
}

func (r *ArticleRepo) IsReferenced(_ context.Context, id string) (bool, error) {
	var found bool
	err := r.v.read(func(st *state) error {
		for _, l := range st.lines {
			if l.ArticleID == id {
				found = true
				return nil
			}
		}
		for _, ing := range st.ingredients {
			if ing.ArticleID == id {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func sortedArticles(st *state, keep func(entity.Article) bool) []*entity.Article {
	out := make([]*entity.Article, 0, len(st.articles))
	for _, a := range st.articles {
		if !keep(a) {
			continue
		}
		c := cloneArticle(a)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
