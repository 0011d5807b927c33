package repository

import (
	"context"

	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ArticleRepository define el puerto de persistencia para Article (DIP).
// OnStock y AveragePrice solo se escriben mediante UpdateStock, que usa el motor de aprobación.
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	GetByCode(ctx context.Context, code string) (*entity.Article, error)
	// Update modifica los metadatos (código, nombre, unidad, mínimo, alérgenos, comentario). No toca stock ni precio.
	Update(ctx context.Context, article *entity.Article) error
	List(ctx context.Context, limit, offset int) ([]*entity.Article, error)
	// ListBelowMinimum artículos con OnStock < MinOnStock, ordenados por mayor déficit.
	ListBelowMinimum(ctx context.Context) ([]*entity.Article, error)
	Delete(ctx context.Context, id string) error
	// IsReferenced indica si alguna línea de documento o ingrediente de receta referencia el artículo.
	IsReferenced(ctx context.Context, id string) (bool, error)

	// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE). Solo dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Article, error)
	UpdateStock(ctx context.Context, id string, onStock decimal.Decimal, averagePrice *decimal.Decimal) error
}
