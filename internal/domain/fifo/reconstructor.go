package fifo

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
)

// RebuildBatches reconstruye el estado vivo de los lotes de un producto
// reproduciendo el historial completo (servicio de dominio, puro).
//
// Las entradas materializan un lote cada una con AvailableQuantity igual a
// la cantidad original. Las salidas se reproducen en orden histórico
// consumiendo siempre el lote más antiguo con disponibilidad (FIFO). Ambos
// slices deben venir ya ordenados por (transaction_date, id) ascendente,
// que es el orden que garantiza TransactionRepository.ListByProduct.
//
// Siempre es un replay completo, sin memoización: O(entradas × salidas) en
// el peor caso, a cambio de reproducir exactamente el estado de stock que
// existió después de cada venta sin importar cuándo se consulte.
//
// Si las salidas exceden el total de entradas (datos corregidos o
// retro-fechados), el exceso se descarta en silencio; es el comportamiento
// documentado, no un error.
func RebuildBatches(inbound, outbound []*entity.Transaction) []*entity.Batch {
	batches := make([]*entity.Batch, 0, len(inbound))
	for _, tx := range inbound {
		batches = append(batches, &entity.Batch{
			SourceTransactionID: tx.ID,
			UnitPrice:           tx.UnitPrice,
			OriginalQuantity:    tx.Quantity,
			AvailableQuantity:   tx.Quantity,
			TransactionDate:     tx.TransactionDate,
		})
	}

	for _, out := range outbound {
		remaining := out.Quantity
		for _, batch := range batches {
			if !remaining.GreaterThan(decimal.Zero) {
				break
			}
			if !batch.AvailableQuantity.GreaterThan(decimal.Zero) {
				continue
			}
			deduct := decimal.Min(remaining, batch.AvailableQuantity)
			batch.AvailableQuantity = batch.AvailableQuantity.Sub(deduct)
			remaining = remaining.Sub(deduct)
		}
	}

	// Solo lotes con disponibilidad, preservando el orden ascendente.
	live := batches[:0]
	for _, batch := range batches {
		if batch.AvailableQuantity.GreaterThan(decimal.Zero) {
			live = append(live, batch)
		}
	}
	return live
}

// InventoryValue calcula el valor libro del inventario restante:
// Σ(AvailableQuantity × UnitPrice) sobre los lotes reconstruidos.
func InventoryValue(batches []*entity.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, batch := range batches {
		total = total.Add(batch.AvailableQuantity.Mul(batch.UnitPrice))
	}
	return total
}
