package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest entrada para crear un artículo. El stock y el precio inician en cero/nulo.
type CreateArticleRequest struct {
	Code       string          `json:"code" validate:"required,min=1,max=50"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Unit       string          `json:"unit" validate:"required"`
	MinOnStock decimal.Decimal `json:"min_on_stock"`
	Allergens  []string        `json:"allergens"`
	Comment    string          `json:"comment"`
}

// UpdateArticleRequest entrada para actualizar un artículo (sin stock ni precio).
type UpdateArticleRequest struct {
	Code       *string          `json:"code" validate:"omitempty,min=1,max=50"`
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit       *string          `json:"unit"`
	MinOnStock *decimal.Decimal `json:"min_on_stock"`
	Allergens  []string         `json:"allergens"`
	Comment    *string          `json:"comment"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID           string           `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	Unit         string           `json:"unit"`
	OnStock      decimal.Decimal  `json:"on_stock"`
	AveragePrice *decimal.Decimal `json:"average_price"`
	TotalPrice   decimal.Decimal  `json:"total_price"`
	MinOnStock   decimal.Decimal  `json:"min_on_stock"`
	BelowMinimum bool             `json:"below_minimum"`
	Allergens    []string         `json:"allergens"`
	Comment      string           `json:"comment"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ArticleListResponse lista paginada de artículos.
type ArticleListResponse struct {
	Items []ArticleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StockMovementResponse fila del kardex de un artículo.
type StockMovementResponse struct {
	ID         string          `json:"id"`
	DocumentID string          `json:"document_id"`
	LineID     string          `json:"line_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	StockAfter decimal.Decimal `json:"stock_after"`
	CreatedAt  time.Time       `json:"created_at"`
	CreatedBy  string          `json:"created_by"`
}
