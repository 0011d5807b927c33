package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDocumentRequest body para POST /api/documents.
type CreateDocumentRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=RECEIPT ISSUE"`
	Comment string `json:"comment" validate:"max=500"`
}

// DocumentLineRequest body para agregar o editar una línea en borrador.
// price_without_vat y vat_id solo aplican a entradas.
type DocumentLineRequest struct {
	ArticleID       string           `json:"article_id" validate:"required"`
	Amount          decimal.Decimal  `json:"amount"`
	Unit            string           `json:"unit" validate:"required"`
	PriceWithoutVat *decimal.Decimal `json:"price_without_vat,omitempty"`
	VATID           *string          `json:"vat_id,omitempty"`
	Comment         string           `json:"comment" validate:"max=500"`
}

// DocumentLineResponse línea con su valor derivado.
type DocumentLineResponse struct {
	ID              string           `json:"id"`
	Position        int              `json:"position"`
	ArticleID       string           `json:"article_id"`
	Amount          decimal.Decimal  `json:"amount"`
	Unit            string           `json:"unit"`
	PriceWithoutVat *decimal.Decimal `json:"price_without_vat,omitempty"`
	VATID           *string          `json:"vat_id,omitempty"`
	AveragePrice    *decimal.Decimal `json:"average_price,omitempty"`
	Total           decimal.Decimal  `json:"total"`
	Comment         string           `json:"comment"`
}

// DocumentResponse cabecera de un documento; Lines solo en el detalle.
type DocumentResponse struct {
	ID                  string                 `json:"id"`
	Kind                string                 `json:"kind"`
	CreatedAt           time.Time              `json:"created_at"`
	CreatedBy           string                 `json:"created_by"`
	Approved            bool                   `json:"approved"`
	ApprovedAt          *time.Time             `json:"approved_at,omitempty"`
	ApprovedBy          *string                `json:"approved_by,omitempty"`
	Comment             string                 `json:"comment"`
	SourceMenuDate      *string                `json:"source_menu_date,omitempty"`
	SourceTargetGroupID *string                `json:"source_target_group_id,omitempty"`
	Total               *decimal.Decimal       `json:"total,omitempty"`
	Lines               []DocumentLineResponse `json:"lines,omitempty"`
}

// DocumentListResponse lista paginada de cabeceras.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MenuIssueRequest body para POST /api/documents/issues/from-menu.
type MenuIssueRequest struct {
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	TargetGroupID *string `json:"target_group_id,omitempty"`
}

// MenuIssueResponse salida generada y cantidad de líneas.
type MenuIssueResponse struct {
	Document  DocumentResponse `json:"document"`
	LineCount int              `json:"line_count"`
}
