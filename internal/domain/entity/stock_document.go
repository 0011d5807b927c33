package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de bodega.
const (
	DocumentKindReceipt = "RECEIPT" // entrada
	DocumentKindIssue   = "ISSUE"   // salida
)

// StockDocument cabecera de una entrada o salida. Una vez aprobado es inmutable.
type StockDocument struct {
	ID         string
	Kind       string
	CreatedAt  time.Time
	CreatedBy  string
	Approved   bool
	ApprovedAt *time.Time
	ApprovedBy *string
	Comment    string

	// Referencia explícita al menú de origen (solo salidas generadas desde menú).
	SourceMenuDate      *time.Time
	SourceTargetGroupID *string

	Lines []DocumentLine
}

// IsMenuDerived indica si la salida se generó a partir de un menú diario.
func (d *StockDocument) IsMenuDerived() bool {
	return d.Kind == DocumentKindIssue && d.SourceMenuDate != nil
}

// DocumentLine línea de un documento. PriceWithoutVat y VATID aplican solo a entradas;
// AveragePrice es la foto del costo promedio tomada al aprobar una salida.
type DocumentLine struct {
	ID              string
	DocumentID      string
	Position        int
	ArticleID       string
	Amount          decimal.Decimal
	Unit            string
	PriceWithoutVat *decimal.Decimal
	VATID           *string
	AveragePrice    *decimal.Decimal
	Comment         string
}
