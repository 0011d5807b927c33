package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

// lockArticles bloquea los artículos referenciados por las líneas en orden ascendente de ID,
// de modo que dos aprobaciones concurrentes sobre los mismos artículos se serialicen sin deadlock.
func lockArticles(ctx context.Context, repo repository.ArticleRepository, lines []entity.DocumentLine) (map[string]*entity.Article, error) {
	ids := articleIDs(lines)
	sort.Strings(ids)
	out := make(map[string]*entity.Article, len(ids))
	for _, id := range ids {
		a, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, fmt.Errorf("artículo %s: %w", id, domain.ErrNotFound)
		}
		out[id] = a
	}
	return out, nil
}

// loadArticles lectura sin bloqueo (validaciones consultivas y vistas).
func loadArticles(ctx context.Context, repo repository.ArticleRepository, ids []string) (map[string]*entity.Article, error) {
	out := make(map[string]*entity.Article, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		a, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, fmt.Errorf("artículo %s: %w", id, domain.ErrNotFound)
		}
		out[id] = a
	}
	return out, nil
}

func loadVATs(ctx context.Context, repo repository.VATRepository, lines []entity.DocumentLine) (map[string]*entity.VAT, error) {
	out := make(map[string]*entity.VAT)
	for _, l := range lines {
		if l.VATID == nil {
			continue
		}
		if _, ok := out[*l.VATID]; ok {
			continue
		}
		v, err := repo.GetByID(ctx, *l.VATID)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out[v.ID] = v
		}
	}
	return out, nil
}

func articleIDs(lines []entity.DocumentLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ArticleID]; ok {
			continue
		}
		seen[l.ArticleID] = struct{}{}
		ids = append(ids, l.ArticleID)
	}
	return ids
}

// DateOnly trunca a la fecha (UTC 00:00), la granularidad de menús y salidas desde menú.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// outcomeOf clasifica el error de una aprobación para métricas y logs.
func outcomeOf(err error) string {
	var shortage *domain.StockShortageError
	switch {
	case err == nil:
		return OutcomeApproved
	case errors.Is(err, domain.ErrAlreadyApproved):
		return OutcomeAlreadyApproved
	case errors.As(err, &shortage), errors.Is(err, domain.ErrInsufficientStock):
		return OutcomeShortage
	case errors.Is(err, domain.ErrZeroValueDocument):
		return OutcomeZeroValue
	case errors.Is(err, domain.ErrNoMenuDefined):
		return OutcomeNoMenu
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrMissingPrice), errors.Is(err, domain.ErrMissingTaxRate),
		errors.Is(err, domain.ErrIncompatibleUnits):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
