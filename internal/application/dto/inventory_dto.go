package dto

import "github.com/shopspring/decimal"

// ReplenishmentSuggestionDTO sugerencia de reposición para un artículo bajo su mínimo.
type ReplenishmentSuggestionDTO struct {
	ArticleID          string          `json:"article_id"`
	Code               string          `json:"code"`
	ArticleName        string          `json:"article_name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinOnStock         decimal.Decimal `json:"min_on_stock"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // MinOnStock * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // precio promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	ConsumedLast30Days decimal.Decimal `json:"consumed_last_30d"`    // salidas aprobadas recientes
	Priority           int             `json:"priority"`             // 1 = más urgente
}
