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

var _ repository.StockDocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo entradas y salidas en memoria.
type DocumentRepo struct {
	v *view
}

func (r *DocumentRepo) Create(_ context.Context, doc *entity.StockDocument) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.documents[doc.ID]; ok {
			return domain.ErrDuplicate
		}
		h := *doc
		h.Lines = nil
		st.documents[doc.ID] = h
		return nil
	})
}

func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.StockDocument, error) {
	var out *entity.StockDocument
	err := r.v.read(func(st *state) error {
		h, ok := st.documents[id]
		if !ok {
			return nil
		}
		h.Lines = documentLines(st, id)
		out = &h
		return nil
	})
	return out, err
}

// GetForUpdate en memoria la transacción ya tiene acceso exclusivo al estado.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockDocument, error) {
	return r.GetByID(ctx, id)
}

func (r *DocumentRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.StockDocument, error) {
	var out []*entity.StockDocument
	err := r.v.read(func(st *state) error {
		for _, h := range st.documents {
			if f.Kind != "" && h.Kind != f.Kind {
				continue
			}
			if f.Approved != nil && h.Approved != *f.Approved {
				continue
			}
			c := h
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Limit, f.Offset), err
}

func (r *DocumentRepo) MarkApproved(_ context.Context, id string, at time.Time, userID string) error {
	return r.v.write(func(st *state) error {
		h, ok := st.documents[id]
		if !ok {
			return domain.ErrNotFound
		}
		if h.Approved {
			return domain.ErrAlreadyApproved
		}
		h.Approved = true
		h.ApprovedAt = &at
		h.ApprovedBy = &userID
		st.documents[id] = h
		return nil
	})
}

func (r *DocumentRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		delete(st.documents, id)
		for lid, l := range st.lines {
			if l.DocumentID == id {
				delete(st.lines, lid)
			}
		}
		return nil
	})
}

func (r *DocumentRepo) GetLine(_ context.Context, documentID, lineID string) (*entity.DocumentLine, error) {
	var out *entity.DocumentLine
	err := r.v.read(func(st *state) error {
		if l, ok := st.lines[lineID]; ok && l.DocumentID == documentID {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *DocumentRepo) AddLine(_ context.Context, line *entity.DocumentLine) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.documents[line.DocumentID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.articles[line.ArticleID]; !ok {
			return domain.ErrNotFound
		}
		st.lines[line.ID] = *line
		return nil
	})
}

func (r *DocumentRepo) UpdateLine(_ context.Context, line *entity.DocumentLine) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.lines[line.ID]
		if !ok || cur.DocumentID != line.DocumentID {
			return domain.ErrNotFound
		}
		st.lines[line.ID] = *line
		return nil
	})
}

func (r *DocumentRepo) DeleteLine(_ context.Context, documentID, lineID string) error {
	return r.v.write(func(st *state) error {
		if l, ok := st.lines[lineID]; ok && l.DocumentID == documentID {
			delete(st.lines, lineID)
		}
		return nil
	})
}

func (r *DocumentRepo) SetLineAveragePrice(_ context.Context, lineID string, price decimal.Decimal) error {
	return r.v.write(func(st *state) error {
		l, ok := st.lines[lineID]
		if !ok {
			return domain.ErrNotFound
		}
		l.AveragePrice = &price
		st.lines[lineID] = l
		return nil
	})
}

func documentLines(st *state, documentID string) []entity.DocumentLine {
	var out []entity.DocumentLine
	for _, l := range st.lines {
		if l.DocumentID == documentID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
