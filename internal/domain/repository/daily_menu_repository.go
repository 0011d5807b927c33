package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
)

// DailyMenuRepository define el puerto de persistencia para el menú diario.
type DailyMenuRepository interface {
	Create(ctx context.Context, entry *entity.DailyMenu) error
	GetByID(ctx context.Context, id string) (*entity.DailyMenu, error)
	Update(ctx context.Context, entry *entity.DailyMenu) error
	Delete(ctx context.Context, id string) error
	// ListByDate entradas de la fecha; targetGroupID nil no filtra por grupo.
	ListByDate(ctx context.Context, date time.Time, targetGroupID *string) ([]*entity.DailyMenu, error)
}
