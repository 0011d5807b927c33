package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DocumentFilter filtros para listar documentos. Kind vacío lista ambos tipos.
type DocumentFilter struct {
	Kind     string
	Approved *bool
	Limit    int
	Offset   int
}

// StockDocumentRepository define el puerto de persistencia para entradas y salidas con sus líneas.
type StockDocumentRepository interface {
	// Create persiste la cabecera. Las líneas se agregan con AddLine.
	Create(ctx context.Context, doc *entity.StockDocument) error
	// GetByID obtiene la cabecera con sus líneas ordenadas por posición.
	GetByID(ctx context.Context, id string) (*entity.StockDocument, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockDocument, error)
	// List devuelve solo cabeceras, más recientes primero.
	List(ctx context.Context, filter DocumentFilter) ([]*entity.StockDocument, error)
	MarkApproved(ctx context.Context, id string, at time.Time, userID string) error
	// Delete elimina la cabecera y sus líneas.
	Delete(ctx context.Context, id string) error

	GetLine(ctx context.Context, documentID, lineID string) (*entity.DocumentLine, error)
	AddLine(ctx context.Context, line *entity.DocumentLine) error
	UpdateLine(ctx context.Context, line *entity.DocumentLine) error
	DeleteLine(ctx context.Context, documentID, lineID string) error
	// SetLineAveragePrice guarda la foto del precio promedio al aprobar una salida.
	SetLineAveragePrice(ctx context.Context, lineID string, price decimal.Decimal) error
}
