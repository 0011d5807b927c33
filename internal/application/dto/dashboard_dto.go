package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Contadores globales de la bodega más el Top-5 de artículos consumidos en el mes.
type DashboardSummaryDTO struct {
	Allergens        int             `json:"allergens"`
	MealTypes        int             `json:"meal_types"`
	TargetGroups     int             `json:"target_groups"`
	VATs             int             `json:"vats"`
	Recipes          int             `json:"recipes"`
	Ingredients      int             `json:"ingredients"`
	Articles         int             `json:"articles"`
	ArticlesBelowMin int             `json:"articles_below_min"`
	DraftReceipts    int             `json:"draft_receipts"`
	ApprovedReceipts int             `json:"approved_receipts"`
	DraftIssues      int             `json:"draft_issues"`
	ApprovedIssues   int             `json:"approved_issues"`
	DocumentLines    int             `json:"document_lines"`
	DailyMenus       int             `json:"daily_menus"`
	MenuEntriesToday int             `json:"menu_entries_today"`
	StockValue       decimal.Decimal `json:"stock_value"` // suma de on_stock * average_price

	// Top 5 artículos por valor consumido en el mes en curso
	TopConsumed []ConsumedArticleDTO `json:"top_consumed"`

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}

// ConsumedArticleDTO consumo aprobado de un artículo en el período.
type ConsumedArticleDTO struct {
	ArticleID   string          `json:"article_id"`
	Code        string          `json:"code"`
	ArticleName string          `json:"article_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Value       decimal.Decimal `json:"value"`
}
