package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de bodega.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// Counts contadores globales en una sola consulta.
func (r *AnalyticsRepo) Counts(ctx context.Context, today time.Time) (*repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM allergens)                                               AS allergens,
	    (SELECT COUNT(*) FROM meal_types)                                              AS meal_types,
	    (SELECT COUNT(*) FROM target_groups)                                           AS target_groups,
	    (SELECT COUNT(*) FROM vats)                                                    AS vats,
	    (SELECT COUNT(*) FROM recipes)                                                 AS recipes,
	    (SELECT COUNT(*) FROM recipe_ingredients)                                      AS ingredients,
	    (SELECT COUNT(*) FROM articles)                                                AS articles,
	    (SELECT COUNT(*) FROM articles WHERE on_stock < min_on_stock)                  AS below_min,
	    (SELECT COUNT(*) FROM stock_documents WHERE kind = 'RECEIPT' AND NOT approved) AS draft_receipts,
	    (SELECT COUNT(*) FROM stock_documents WHERE kind = 'RECEIPT' AND approved)     AS approved_receipts,
	    (SELECT COUNT(*) FROM stock_documents WHERE kind = 'ISSUE' AND NOT approved)   AS draft_issues,
	    (SELECT COUNT(*) FROM stock_documents WHERE kind = 'ISSUE' AND approved)       AS approved_issues,
	    (SELECT COUNT(*) FROM document_lines)                                          AS document_lines,
	    (SELECT COUNT(*) FROM daily_menus)                                             AS daily_menus,
	    (SELECT COUNT(*) FROM daily_menus WHERE menu_date = $1)                        AS menu_today,
	    (SELECT COALESCE(SUM(on_stock * COALESCE(average_price, 0)), 0) FROM articles) AS stock_value`

	var c repository.DashboardCounts
	err := r.q.QueryRow(ctx, query, today).Scan(
		&c.Allergens, &c.MealTypes, &c.TargetGroups, &c.VATs, &c.Recipes, &c.Ingredients,
		&c.Articles, &c.ArticlesBelowMin, &c.DraftReceipts, &c.ApprovedReceipts,
		&c.DraftIssues, &c.ApprovedIssues, &c.DocumentLines, &c.DailyMenus, &c.MenuEntriesToday,
		&c.StockValue,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &c, nil
}

// ConsumptionByArticle consumo (salidas aprobadas) por artículo en [from, to), mayor valor primero.
func (r *AnalyticsRepo) ConsumptionByArticle(ctx context.Context, from, to time.Time) ([]repository.ConsumptionResult, error) {
	const query = `
	SELECT article_id,
	       SUM(ABS(quantity)) AS quantity,
	       SUM(total_price)   AS value
	FROM stock_movements
	WHERE type = 'OUT'
	  AND created_at >= $1 AND created_at < $2
	GROUP BY article_id
	ORDER BY value DESC, article_id`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("consumption by article: %w", err)
	}
	defer rows.Close()
	var out []repository.ConsumptionResult
	for rows.Next() {
		var c repository.ConsumptionResult
		if err := rows.Scan(&c.ArticleID, &c.Quantity, &c.Value); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
