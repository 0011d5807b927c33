package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo proyecciones de solo lectura en memoria.
type AnalyticsRepo struct {
	v *view
}

func (r *AnalyticsRepo) Counts(_ context.Context, today time.Time) (*repository.DashboardCounts, error) {
	out := &repository.DashboardCounts{StockValue: decimal.Zero}
	day := dateOnly(today)
	err := r.v.read(func(st *state) error {
		out.Allergens = len(st.allergens)
		out.MealTypes = len(st.mealTypes)
		out.TargetGroups = len(st.targetGroups)
		out.VATs = len(st.vats)
		out.Ingredients = len(st.ingredients)
		out.DocumentLines = len(st.lines)
		out.DailyMenus = len(st.menus)
		out.Articles = len(st.articles)
		for _, a := range st.articles {
			if a.BelowMinimum() {
				out.ArticlesBelowMin++
			}
			out.StockValue = out.StockValue.Add(a.TotalPrice())
		}
		out.Recipes = len(st.recipes)
		for _, d := range st.documents {
			switch {
			case d.Kind == entity.DocumentKindReceipt && d.Approved:
				out.ApprovedReceipts++
			case d.Kind == entity.DocumentKindReceipt:
				out.DraftReceipts++
			case d.Approved:
				out.ApprovedIssues++
			default:
				out.DraftIssues++
			}
		}
		for _, m := range st.menus {
			if m.Date.Equal(day) {
				out.MenuEntriesToday++
			}
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) ConsumptionByArticle(_ context.Context, from, to time.Time) ([]repository.ConsumptionResult, error) {
	totals := map[string]*repository.ConsumptionResult{}
	err := r.v.read(func(st *state) error {
		for _, m := range st.movements {
			if m.Type != entity.MovementTypeOUT || !inRange(m.CreatedAt, from, to) {
				continue
			}
			acc, ok := totals[m.ArticleID]
			if !ok {
				acc = &repository.ConsumptionResult{ArticleID: m.ArticleID, Quantity: decimal.Zero, Value: decimal.Zero}
				totals[m.ArticleID] = acc
			}
			acc.Quantity = acc.Quantity.Add(m.Quantity.Abs())
			acc.Value = acc.Value.Add(m.TotalPrice)
		}
		return nil
	})
	out := make([]repository.ConsumptionResult, 0, len(totals))
	for _, c := range totals {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
	return out, err
}
