package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardCounts contadores globales de la bodega (proyección de solo lectura).
type DashboardCounts struct {
	Allergens        int
	MealTypes        int
	TargetGroups     int
	VATs             int
	Recipes          int
	Ingredients      int
	Articles         int
	ArticlesBelowMin int
	DraftReceipts    int
	ApprovedReceipts int
	DraftIssues      int
	ApprovedIssues   int
	DocumentLines    int
	DailyMenus       int
	MenuEntriesToday int
	StockValue       decimal.Decimal // suma de OnStock * AveragePrice
}

// ConsumptionResult consumo aprobado (salidas) de un artículo en un período.
type ConsumptionResult struct {
	ArticleID string
	Quantity  decimal.Decimal // positivo, unidad nativa
	Value     decimal.Decimal
}

// AnalyticsRepository consultas de lectura sobre el kardex. No modifica datos.
type AnalyticsRepository interface {
	Counts(ctx context.Context, today time.Time) (*DashboardCounts, error)
	// ConsumptionByArticle suma las salidas aprobadas en [from, to) agrupadas por artículo.
	ConsumptionByArticle(ctx context.Context, from, to time.Time) ([]ConsumptionResult, error)
}
