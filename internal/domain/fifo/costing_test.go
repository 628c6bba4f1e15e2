package fifo_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
	"github.com/jhoicas/fifo-costing-api/internal/domain/fifo"
)

func quoteFor(t *testing.T, inbound, outbound []*entity.Transaction, quantity string) fifo.CostQuote {
	t.Helper()
	available := decimal.Zero
	for _, in := range inbound {
		available = available.Add(in.Quantity)
	}
	for _, out := range outbound {
		available = available.Sub(out.Quantity)
	}
	batches := fifo.RebuildBatches(inbound, outbound)
	return fifo.QuoteCost(batches, available, decimal.RequireFromString(quantity))
}

// TestQuoteCost_PromedioPonderado es el vector de referencia del motor:
// lotes (100@10.00, 50@15.00) en orden de fecha, cotizar 120 unidades
// ⇒ (100×10 + 20×15)/120 = 10.83 (redondeo half-up a 2 decimales).
func TestQuoteCost_PromedioPonderado(t *testing.T) {
	inbound := []*entity.Transaction{
		tx(1, entity.DirectionIn, "100", "10.00", 0),
		tx(2, entity.DirectionIn, "50", "15.00", 10),
	}

	quote := quoteFor(t, inbound, nil, "120")

	require.Equal(t, fifo.QuotePriced, quote.Status)
	assert.Equal(t, "10.83", quote.FormattedUnitCost(),
		"(100×10 + 20×15)/120 = 10.8333… ⇒ 10.83")
}

// TestQuoteCost_CantidadCero: cotizar cero unidades siempre devuelve 0.00
// sin importar el estado del stock.
func TestQuoteCost_CantidadCero(t *testing.T) {
	inbound := []*entity.Transaction{
		tx(1, entity.DirectionIn, "100", "10.00", 0),
	}

	quote := quoteFor(t, inbound, nil, "0")

	assert.Equal(t, fifo.QuoteZeroQuantity, quote.Status)
	assert.Equal(t, "0.00", quote.FormattedUnitCost())

	// También sobre stock vacío.
	empty := fifo.QuoteCost(nil, decimal.Zero, decimal.Zero)
	assert.Equal(t, fifo.QuoteZeroQuantity, empty.Status)
	assert.Equal(t, "0.00", empty.FormattedUnitCost())
}

// TestQuoteCost_FronteraStockInsuficiente: pedir exactamente el stock
// disponible cotiza; pedir 0.01 más falla como stock insuficiente.
func TestQuoteCost_FronteraStockInsuficiente(t *testing.T) {
	inbound := []*entity.Transaction{
		tx(1, entity.DirectionIn, "100", "10.00", 0),
	}

	exact := quoteFor(t, inbound, nil, "100")
	assert.Equal(t, fifo.QuotePriced, exact.Status)
	assert.Equal(t, "10.00", exact.FormattedUnitCost())

	over := quoteFor(t, inbound, nil, "100.01")
	assert.Equal(t, fifo.QuoteInsufficientStock, over.Status)
}

// TestQuoteCost_EscenarioEndToEnd reproduce el escenario completo:
// entrada 100@10.00 (día D), entrada 50@15.00 (D+10); salida de 30 ⇒
// precio 10.00; salida de 80 más ⇒ consume 70@10.00 + 10@15.00 ⇒
// (70×10 + 10×15)/80 = 10.625 ⇒ 10.63.
func TestQuoteCost_EscenarioEndToEnd(t *testing.T) {
	inbound := []*entity.Transaction{
		tx(1, entity.DirectionIn, "100", "10.00", 0),
		tx(2, entity.DirectionIn, "50", "15.00", 10),
	}

	first := quoteFor(t, inbound, nil, "30")
	require.Equal(t, fifo.QuotePriced, first.Status)
	assert.Equal(t, "10.00", first.FormattedUnitCost())

	outbound := []*entity.Transaction{
		tx(3, entity.DirectionOut, "30", "10.00", 15),
	}
	second := quoteFor(t, inbound, outbound, "80")
	require.Equal(t, fifo.QuotePriced, second.Status)
	assert.Equal(t, "10.63", second.FormattedUnitCost(),
		"consume los 70 restantes a 10.00 y 10 a 15.00: 850/80 = 10.625")
}

// TestQuoteCost_LoteCasiAgotado: tras una salida de 70, cotizar 40 cruza
// al segundo lote ⇒ (30×10 + 10×15)/40 = 11.25.
func TestQuoteCost_LoteCasiAgotado(t *testing.T) {
	inbound := []*entity.Transaction{
		tx(1, entity.DirectionIn, "100", "10.00", 0),
		tx(2, entity.DirectionIn, "50", "15.00", 10),
	}
	outbound := []*entity.Transaction{
		tx(3, entity.DirectionOut, "70", "10.00", 15),
	}

	quote := quoteFor(t, inbound, outbound, "40")
	require.Equal(t, fifo.QuotePriced, quote.Status)
	assert.Equal(t, "11.25", quote.FormattedUnitCost(),
		"quedan 30@10.00 y 50@15.00: (300+150)/40 = 11.25")
}

// TestQuoteCost_StockNegativoNoSeOculta: con datos corruptos (disponible
// negativo), cualquier cantidad, incluso cero, se reporta como stock
// insuficiente; el dato malo se delata, no se tapa.
func TestQuoteCost_StockNegativoNoSeOculta(t *testing.T) {
	negative := decimal.RequireFromString("-5")

	quote := fifo.QuoteCost(nil, negative, decimal.Zero)
	assert.Equal(t, fifo.QuoteInsufficientStock, quote.Status)
}
