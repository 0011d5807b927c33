package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de bodega.
const (
	MovementTypeIN  = "IN"  // entrada aprobada
	MovementTypeOUT = "OUT" // salida aprobada
)

// StockMovement registro inmutable que deja cada línea aprobada (cantidades en unidad nativa).
type StockMovement struct {
	ID         string
	DocumentID string
	LineID     string
	ArticleID  string
	Type       string
	Quantity   decimal.Decimal // positivo entrada, negativo salida
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	StockAfter decimal.Decimal
	CreatedAt  time.Time
	CreatedBy  string
}
