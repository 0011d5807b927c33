package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/application/dto"
	"github.com/jhoicas/kitchen-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// consumptionWindow período de consumo usado para desempatar prioridades.
const consumptionWindow = 30 * 24 * time.Hour

// ReplenishmentUseCase genera la lista de reposición de la bodega.
// Combina el déficit bajo el mínimo con el consumo reciente para priorizar los artículos críticos.
type ReplenishmentUseCase struct {
	articleRepo   repository.ArticleRepository
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	articleRepo repository.ArticleRepository,
	analyticsRepo repository.AnalyticsRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		articleRepo:   articleRepo,
		analyticsRepo: analyticsRepo,
		now:           time.Now,
	}
}

// GenerateReplenishmentList devuelve los artículos bajo su stock mínimo con la cantidad sugerida
// de pedido y un ranking de prioridad (mayor déficit relativo primero, luego mayor consumo).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {

	// 1. Artículos por debajo del mínimo
	articles, err := uc.articleRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Consumo aprobado de los últimos 30 días (si falla se prioriza solo por déficit)
	end := uc.now().UTC()
	start := end.Add(-consumptionWindow)
	consumption, _ := uc.analyticsRepo.ConsumptionByArticle(ctx, start, end)

	consumedByID := make(map[string]decimal.Decimal, len(consumption))
	for _, c := range consumption {
		consumedByID[c.ArticleID] = c.Quantity
	}

	// 3. Construir las sugerencias
	factor := decimal.RequireFromString("1.5")
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(articles))
	deficit := make(map[string]decimal.Decimal, len(articles))
	for _, a := range articles {
		idealStock := a.MinOnStock.Mul(factor)
		suggestedQty := idealStock.Sub(a.OnStock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		unitCost := a.AveragePriceOrZero()

		// déficit relativo: fracción del mínimo que falta (0..1)
		if a.MinOnStock.GreaterThan(decimal.Zero) {
			deficit[a.ID] = a.MinOnStock.Sub(a.OnStock).Div(a.MinOnStock)
		}

		consumed, ok := consumedByID[a.ID]
		if !ok {
			consumed = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ArticleID:          a.ID,
			Code:               a.Code,
			ArticleName:        a.Name,
			Unit:               a.Unit,
			CurrentStock:       a.OnStock,
			MinOnStock:         a.MinOnStock,
			IdealStock:         idealStock,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           unitCost,
			EstimatedOrderCost: suggestedQty.Mul(unitCost).Round(2),
			ConsumedLast30Days: consumed,
		})
	}

	// 4. Ordenar: mayor déficit relativo, luego mayor consumo reciente, luego código.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		da, db := deficit[a.ArticleID], deficit[b.ArticleID]
		if !da.Equal(db) {
			return da.GreaterThan(db)
		}
		if !a.ConsumedLast30Days.Equal(b.ConsumedLast30Days) {
			return a.ConsumedLast30Days.GreaterThan(b.ConsumedLast30Days)
		}
		return a.Code < b.Code
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}
