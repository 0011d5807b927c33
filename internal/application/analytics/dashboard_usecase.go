// Package analytics contiene las proyecciones de solo lectura del dashboard de bodega.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
)

const dashboardTopConsumed = 5 // número de artículos en el widget de consumo

// DashboardUseCase genera el resumen de la bodega: contadores globales y consumo del mes.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y ArticleRepository para
// completar nombre y unidad de los artículos más consumidos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	articleRepo   repository.ArticleRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, articleRepo repository.ArticleRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, articleRepo: articleRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos consultas en paralelo:
//  1. Counts(hoy)                     → contadores y valor del stock
//  2. ConsumptionByArticle(mes, hoy)  → Top-5 consumidos
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().UTC()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := today.AddDate(0, 0, 1)

	// ── Goroutines para paralelizar las consultas ──────────────────────────────
	type countsResult struct {
		counts *repository.DashboardCounts
		err    error
	}
	type consumptionResult struct {
		rows []repository.ConsumptionResult
		err  error
	}

	countsCh := make(chan countsResult, 1)
	consCh := make(chan consumptionResult, 1)

	go func() {
		c, err := uc.analyticsRepo.Counts(ctx, today)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.ConsumptionByArticle(ctx, monthStart, monthEnd)
		consCh <- consumptionResult{rows, err}
	}()

	counts := <-countsCh
	cons := <-consCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: contadores: %w", counts.err)
	}
	if cons.err != nil {
		return nil, fmt.Errorf("dashboard: consumo del mes: %w", cons.err)
	}

	// ── Top consumidos ─────────────────────────────────────────────────────────
	top := make([]dto.ConsumedArticleDTO, 0, dashboardTopConsumed)
	for _, row := range cons.rows {
		if len(top) == dashboardTopConsumed {
			break
		}
		item := dto.ConsumedArticleDTO{
			ArticleID: row.ArticleID,
			Quantity:  row.Quantity,
			Value:     row.Value.Round(2),
		}
		if a, err := uc.articleRepo.GetByID(ctx, row.ArticleID); err == nil && a != nil {
			item.Code = a.Code
			item.ArticleName = a.Name
			item.Unit = a.Unit
		}
		top = append(top, item)
	}

	c := counts.counts
	return &dto.DashboardSummaryDTO{
		Allergens:        c.Allergens,
		MealTypes:        c.MealTypes,
		TargetGroups:     c.TargetGroups,
		VATs:             c.VATs,
		Recipes:          c.Recipes,
		Ingredients:      c.Ingredients,
		Articles:         c.Articles,
		ArticlesBelowMin: c.ArticlesBelowMin,
		DraftReceipts:    c.DraftReceipts,
		ApprovedReceipts: c.ApprovedReceipts,
		DraftIssues:      c.DraftIssues,
		ApprovedIssues:   c.ApprovedIssues,
		DocumentLines:    c.DocumentLines,
		DailyMenus:       c.DailyMenus,
		MenuEntriesToday: c.MenuEntriesToday,
		StockValue:       c.StockValue.Round(2),
		TopConsumed:      top,
		DateLabel:        monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
