package inventory

import (
	"fmt"

	"github.com/jhoicas/kitchen-ledger/internal/domain"
	"github.com/jhoicas/kitchen-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LineEffect efecto de una línea aprobada sobre su artículo.
type LineEffect struct {
	LineID     string
	ArticleID  string
	Quantity   decimal.Decimal // unidad nativa del artículo, siempre positiva
	UnitPrice  decimal.Decimal // sin IVA (entrada) o promedio vigente (salida)
	Value      decimal.Decimal // valor de la línea usado para el total del documento
	StockAfter decimal.Decimal
}

// Plan resultado de aplicar un documento sobre copias de los artículos.
// Articles contiene el estado final; el llamador lo persiste dentro de su transacción.
type Plan struct {
	Effects  []LineEffect
	Articles map[string]*entity.Article
	Total    decimal.Decimal
}

// ValidateReceiptLine validación de escritura de una línea de entrada (borrador).
func ValidateReceiptLine(line *entity.DocumentLine, article *entity.Article) error {
	if _, err := nativeQuantity(line, article); err != nil {
		return err
	}
	if line.PriceWithoutVat == nil {
		return domain.ErrMissingPrice
	}
	if line.PriceWithoutVat.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if line.VATID == nil || *line.VATID == "" {
		return domain.ErrMissingTaxRate
	}
	return nil
}

// ValidateIssueLine validación de escritura de una línea de salida contra el stock actual (consultiva).
func ValidateIssueLine(line *entity.DocumentLine, article *entity.Article) error {
	qty, err := nativeQuantity(line, article)
	if err != nil {
		return err
	}
	if article.OnStock.Sub(qty).LessThan(decimal.Zero) {
		return &domain.InsufficientStockError{
			ArticleID:   article.ID,
			ArticleName: article.Name,
			Unit:        article.Unit,
			Available:   article.OnStock,
			Requested:   qty,
		}
	}
	return nil
}

// PlanReceipt calcula el nuevo stock y el precio promedio ponderado de cada artículo.
// Las líneas se aplican en orden, de modo que dos líneas del mismo artículo se promedian en cadena.
func PlanReceipt(
	lines []entity.DocumentLine,
	articles map[string]*entity.Article,
	vats map[string]*entity.VAT,
) (*Plan, error) {
	plan := &Plan{Articles: cloneArticles(articles), Total: decimal.Zero}
	for i := range lines {
		line := &lines[i]
		article, ok := plan.Articles[line.ArticleID]
		if !ok {
			return nil, fmt.Errorf("línea %s: artículo %s: %w", line.ID, line.ArticleID, domain.ErrNotFound)
		}
		if err := ValidateReceiptLine(line, article); err != nil {
			return nil, err
		}
		vat, ok := vats[*line.VATID]
		if !ok {
			return nil, domain.ErrMissingTaxRate
		}
		qty, _ := nativeQuantity(line, article)
		price := *line.PriceWithoutVat

		newAvg := CostCalculator(article.OnStock, article.AveragePrice, qty, price)
		article.OnStock = article.OnStock.Add(qty)
		article.AveragePrice = &newAvg

		value := PriceWithVAT(price, vat.Percentage).Mul(qty)
		plan.Total = plan.Total.Add(value)
		plan.Effects = append(plan.Effects, LineEffect{
			LineID:     line.ID,
			ArticleID:  article.ID,
			Quantity:   qty,
			UnitPrice:  price,
			Value:      value,
			StockAfter: article.OnStock,
		})
	}
	return plan, nil
}

// IssueTotal valor de una salida al precio promedio vigente de cada artículo.
func IssueTotal(lines []entity.DocumentLine, articles map[string]*entity.Article) (decimal.Decimal, error) {
	total := decimal.Zero
	for i := range lines {
		article, ok := articles[lines[i].ArticleID]
		if !ok {
			return decimal.Zero, fmt.Errorf("línea %s: artículo %s: %w", lines[i].ID, lines[i].ArticleID, domain.ErrNotFound)
		}
		qty, err := nativeQuantity(&lines[i], article)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(qty.Mul(article.AveragePriceOrZero()))
	}
	return total, nil
}

// CheckIssue (paso A) verifica sin mutar nada que el consumo total por artículo no supere su stock.
// Devuelve todos los faltantes, uno por artículo, en orden de primera aparición.
func CheckIssue(lines []entity.DocumentLine, articles map[string]*entity.Article) ([]*domain.InsufficientStockError, error) {
	var order []string
	requested := make(map[string]decimal.Decimal)
	for i := range lines {
		article, ok := articles[lines[i].ArticleID]
		if !ok {
			return nil, fmt.Errorf("línea %s: artículo %s: %w", lines[i].ID, lines[i].ArticleID, domain.ErrNotFound)
		}
		qty, err := nativeQuantity(&lines[i], article)
		if err != nil {
			return nil, err
		}
		if _, seen := requested[article.ID]; !seen {
			order = append(order, article.ID)
		}
		requested[article.ID] = requested[article.ID].Add(qty)
	}

	var shortages []*domain.InsufficientStockError
	for _, id := range order {
		article := articles[id]
		if article.OnStock.Sub(requested[id]).LessThan(decimal.Zero) {
			shortages = append(shortages, &domain.InsufficientStockError{
				ArticleID:   article.ID,
				ArticleName: article.Name,
				Unit:        article.Unit,
				Available:   article.OnStock,
				Requested:   requested[id],
			})
		}
	}
	return shortages, nil
}

// ApplyIssue (paso B) descuenta el stock y toma la foto del precio promedio por línea.
// Solo debe invocarse cuando CheckIssue no reportó faltantes.
func ApplyIssue(lines []entity.DocumentLine, articles map[string]*entity.Article) (*Plan, error) {
	plan := &Plan{Articles: cloneArticles(articles), Total: decimal.Zero}
	for i := range lines {
		line := &lines[i]
		article, ok := plan.Articles[line.ArticleID]
		if !ok {
			return nil, fmt.Errorf("línea %s: artículo %s: %w", line.ID, line.ArticleID, domain.ErrNotFound)
		}
		qty, err := nativeQuantity(line, article)
		if err != nil {
			return nil, err
		}
		after := article.OnStock.Sub(qty)
		if after.LessThan(decimal.Zero) {
			return nil, domain.ErrInsufficientStock
		}
		price := article.AveragePriceOrZero()
		article.OnStock = after

		value := qty.Mul(price)
		plan.Total = plan.Total.Add(value)
		plan.Effects = append(plan.Effects, LineEffect{
			LineID:     line.ID,
			ArticleID:  article.ID,
			Quantity:   qty,
			UnitPrice:  price,
			Value:      value,
			StockAfter: after,
		})
	}
	return plan, nil
}

// nativeQuantity cantidad de la línea en la unidad del artículo, a la escala del libro.
// Una cantidad que a esa escala queda en cero es inválida.
func nativeQuantity(line *entity.DocumentLine, article *entity.Article) (decimal.Decimal, error) {
	if !RoundQuantity(line.Amount).IsPositive() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	qty, err := ToNative(RoundQuantity(line.Amount), line.Unit, article.Unit)
	if err != nil {
		return decimal.Zero, err
	}
	if !qty.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s %s es cero en %s: %w", line.Amount, line.Unit, article.Unit, domain.ErrInvalidInput)
	}
	return qty, nil
}

func cloneArticles(in map[string]*entity.Article) map[string]*entity.Article {
	out := make(map[string]*entity.Article, len(in))
	for id, a := range in {
		c := *a
		if a.AveragePrice != nil {
			p := *a.AveragePrice
			c.AveragePrice = &p
		}
		out[id] = &c
	}
	return out
}
