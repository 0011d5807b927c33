package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
)

// StockMovementRepository define el puerto para el kardex (registro de movimientos aprobados).
// Los movimientos son inmutables: solo se insertan y se consultan.
type StockMovementRepository interface {
	Create(ctx context.Context, mov *entity.StockMovement) error
	// ListByArticle lista movimientos del artículo en [from, to); fechas cero no filtran.
	ListByArticle(ctx context.Context, articleID string, from, to time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
