package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// costoActual nil equivale a cero (artículo sin entradas previas). Si el divisor es <= 0 retorna 0.
func CostCalculator(stockActual decimal.Decimal, costoActual *decimal.Decimal, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	current := decimal.Zero
	if costoActual != nil {
		current = *costoActual
	}
	num := stockActual.Mul(current).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// PriceWithVAT precio con IVA derivado (no se persiste): price * (1 + percentage/100).
func PriceWithVAT(price decimal.Decimal, percentage int) decimal.Decimal {
	rate := decimal.NewFromInt(int64(percentage)).Div(decimal.NewFromInt(100))
	return price.Mul(decimal.NewFromInt(1).Add(rate))
}
