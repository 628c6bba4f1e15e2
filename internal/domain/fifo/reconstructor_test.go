package fifo_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
	"github.com/jhoicas/fifo-costing-api/internal/domain/fifo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var baseDate = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func tx(id int64, direction string, quantity, unitPrice string, daysOffset int) *entity.Transaction {
	qty := decimal.RequireFromString(quantity)
	price := decimal.RequireFromString(unitPrice)
	return &entity.Transaction{
		ID:              id,
		ProductID:       "p1",
		Direction:       direction,
		Quantity:        qty,
		UnitPrice:       price,
		TotalAmount:     qty.Mul(price),
		TransactionDate: baseDate.AddDate(0, 0, daysOffset),
	}
}

// TestRebuildBatches_ReplayHistorico verifica que las salidas se reproducen
// en orden histórico consumiendo siempre el lote más antiguo disponible.
func TestRebuildBatches_ReplayHistorico(t *testing.T) {
	inbound := []*entity.Transaction{
		tx(1, entity.DirectionIn, "100", "10.00", 0),
		tx(2, entity.DirectionIn, "50", "15.00", 10),
	}
	outbound := []*entity.Transaction{
		tx(3, entity.DirectionOut, "30", "10.00", 15),
	}

	batches := fifo.RebuildBatches(inbound, outbound)

	require.Len(t, batches, 2)
	assert.Equal(t, int64(1), batches[0].SourceTransactionID)
	assert.True(t, batches[0].AvailableQuantity.Equal(decimal.RequireFromString("70")),
		"la salida de 30 debe consumir del lote más antiguo")
	assert.True(t, batches[0].OriginalQuantity.Equal(decimal.RequireFromString("100")),
		"OriginalQuantity no cambia al consumir")
	assert.True(t, batches[1].AvailableQuantity.Equal(decimal.RequireFromString("50")),
		"el segundo lote permanece intacto")
}

// TestRebuildBatches_LoteAgotadoDesaparece verifica que un lote totalmente
// consumido no aparece en el resultado y que el consumo continúa en el
// siguiente lote.
func TestRebuildBatches_LoteAgotadoDesaparece(t *testing.T) {
	inbound := []*entity.Transaction{
		tx(1, entity.DirectionIn, "100", "10.00", 0),
		tx(2, entity.DirectionIn, "50", "15.00", 10),
	}
	outbound := []*entity.Transaction{
		tx(3, entity.DirectionOut, "120", "10.83", 20),
	}

	batches := fifo.RebuildBatches(inbound, outbound)

	require.Len(t, batches, 1)
	assert.Equal(t, int64(2), batches[0].SourceTransactionID)
	assert.True(t, batches[0].AvailableQuantity.Equal(decimal.RequireFromString("30")),
		"120 = 100 del primer lote + 20 del segundo")
}

// TestRebuildBatches_ExcesoSeDescarta: si las salidas exceden las entradas
// (datos corregidos o retro-fechados), el exceso se descarta en silencio en
// vez de fallar. Comportamiento documentado.
func TestRebuildBatches_ExcesoSeDescarta(t *testing.T) {
	inbound := []*entity.Transaction{
		tx(1, entity.DirectionIn, "10", "5.00", 0),
	}
	outbound := []*entity.Transaction{
		tx(2, entity.DirectionOut, "25", "5.00", 1),
	}

	batches := fifo.RebuildBatches(inbound, outbound)

	assert.Empty(t, batches, "el exceso de 15 unidades se descarta sin error")
}

// TestRebuildBatches_SinTransacciones: historial vacío produce cero lotes.
func TestRebuildBatches_SinTransacciones(t *testing.T) {
	assert.Empty(t, fifo.RebuildBatches(nil, nil))
}

// TestRebuildBatches_OrdenPreservado verifica que los lotes vivos conservan
// el orden (transaction_date, id) ascendente con el que llegan las entradas,
// incluyendo el desempate por ID entre fechas iguales.
func TestRebuildBatches_OrdenPreservado(t *testing.T) {
	// Dos entradas con la misma fecha: el ID ascendente desempata.
	inbound := []*entity.Transaction{
		tx(7, entity.DirectionIn, "20", "8.00", 0),
		tx(9, entity.DirectionIn, "20", "9.00", 0),
		tx(11, entity.DirectionIn, "20", "10.00", 5),
	}
	outbound := []*entity.Transaction{
		tx(12, entity.DirectionOut, "25", "8.20", 6),
	}

	batches := fifo.RebuildBatches(inbound, outbound)

	require.Len(t, batches, 2)
	assert.Equal(t, int64(9), batches[0].SourceTransactionID,
		"el lote 7 se agota primero por desempate de ID")
	assert.True(t, batches[0].AvailableQuantity.Equal(decimal.RequireFromString("15")))
	assert.Equal(t, int64(11), batches[1].SourceTransactionID)
}

// TestInventoryValue reproduce la propiedad de consistencia del valor:
// entradas 100@10 + 50@20, salida de 120 ⇒ valor restante = 30×20 = 600.
func TestInventoryValue(t *testing.T) {
	inbound := []*entity.Transaction{
		tx(1, entity.DirectionIn, "100", "10.00", 0),
		tx(2, entity.DirectionIn, "50", "20.00", 10),
	}
	outbound := []*entity.Transaction{
		tx(3, entity.DirectionOut, "120", "11.67", 20),
	}

	batches := fifo.RebuildBatches(inbound, outbound)
	value := fifo.InventoryValue(batches)

	assert.True(t, value.Equal(decimal.RequireFromString("600")),
		"tras consumir un lote completo su aporte al valor cae a cero: valor = %s", value)
}

// TestInventoryValue_SinLotes: sin lotes el valor es cero.
func TestInventoryValue_SinLotes(t *testing.T) {
	assert.True(t, fifo.InventoryValue(nil).IsZero())
}
