package fifo

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
)

// QuoteStatus discrimina el resultado de una cotización FIFO. El caller
// ramifica sobre el estado; el precio nunca viaja mezclado con un mensaje
// de error.
type QuoteStatus string

const (
	QuotePriced            QuoteStatus = "priced"
	QuoteZeroQuantity      QuoteStatus = "zero_quantity"
	QuoteProductNotFound   QuoteStatus = "product_not_found"
	QuoteInsufficientStock QuoteStatus = "insufficient_stock"
)

// CostQuote resultado de cotizar el consumo de una cantidad bajo FIFO.
// UnitCost solo es significativo cuando Status es QuotePriced (en
// QuoteZeroQuantity vale 0.00).
type CostQuote struct {
	Status   QuoteStatus
	UnitCost decimal.Decimal
}

// FormattedUnitCost devuelve el costo con dos decimales ("10.83"), el
// contrato de formato del borde de presentación.
func (q CostQuote) FormattedUnitCost() string {
	return q.UnitCost.StringFixed(2)
}

// QuoteCost cotiza el costo unitario promedio de consumir quantity unidades
// contra los lotes reconstruidos (puro; la verificación de existencia del
// producto es responsabilidad del caller).
//
// Orden de verificación: primero stock disponible, después cantidad cero;
// así una cantidad cero sobre stock corrupto (negativo) se reporta como
// insuficiente y no como 0.00.
//
// Consume lotes en orden ascendente acumulando used × unitPrice y devuelve
// cost/quantity redondeado a 2 decimales con half-up (Decimal.Round, mitad
// lejos de cero; equivalente para los montos positivos de este dominio).
// Ese redondeo ocurre una sola vez aquí: el valor cotizado es bit a bit el
// que se persiste.
func QuoteCost(batches []*entity.Batch, available, quantity decimal.Decimal) CostQuote {
	if quantity.GreaterThan(available) {
		return CostQuote{Status: QuoteInsufficientStock}
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return CostQuote{Status: QuoteZeroQuantity, UnitCost: decimal.Zero}
	}

	totalCost := decimal.Zero
	remaining := quantity
	for _, batch := range batches {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		used := decimal.Min(remaining, batch.AvailableQuantity)
		totalCost = totalCost.Add(used.Mul(batch.UnitPrice))
		remaining = remaining.Sub(used)
	}

	return CostQuote{
		Status:   QuotePriced,
		UnitCost: totalCost.Div(quantity).Round(2),
	}
}
