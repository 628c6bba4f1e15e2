package fifo

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-costing-api/internal/domain"
	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
	"github.com/jhoicas/fifo-costing-api/internal/domain/fifo"
	"github.com/jhoicas/fifo-costing-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura del motor FIFO: cotización,
// stock disponible, valor de inventario, lotes y transacciones. Cada
// consulta es un cómputo autocontenido sobre el estado actual del store;
// no hay caché de lotes entre llamadas.
type QueryUseCase struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) (*QueryUseCase, error) {
	if txRepo == nil || productRepo == nil {
		return nil, domain.ErrRegistryMisconfigured
	}
	return &QueryUseCase{txRepo: txRepo, productRepo: productRepo}, nil
}

// QuoteFifoCost cotiza el costo unitario promedio de consumir quantity
// unidades del producto ahora mismo, sin escribir nada.
func (uc *QueryUseCase) QuoteFifoCost(productID string, quantity decimal.Decimal) (fifo.CostQuote, error) {
	exists, err := uc.productRepo.Exists(productID)
	if err != nil {
		return fifo.CostQuote{}, fmt.Errorf("verificar producto: %w", err)
	}
	if !exists {
		return fifo.CostQuote{Status: fifo.QuoteProductNotFound}, nil
	}

	available, err := uc.AvailableStock(productID)
	if err != nil {
		return fifo.CostQuote{}, err
	}
	batches, err := uc.StockByBatch(productID)
	if err != nil {
		return fifo.CostQuote{}, err
	}
	return fifo.QuoteCost(batches, available, quantity), nil
}

// AvailableStock devuelve Σ entradas − Σ salidas del producto. Cero cuando
// no hay transacciones; no se recorta si el dato está corrupto (negativo).
func (uc *QueryUseCase) AvailableStock(productID string) (decimal.Decimal, error) {
	return availableStock(uc.txRepo, productID)
}

// StockByBatch reconstruye los lotes vivos del producto en orden FIFO.
func (uc *QueryUseCase) StockByBatch(productID string) ([]*entity.Batch, error) {
	inbound, err := uc.txRepo.ListByProduct(productID, entity.DirectionIn)
	if err != nil {
		return nil, fmt.Errorf("listar entradas: %w", err)
	}
	outbound, err := uc.txRepo.ListByProduct(productID, entity.DirectionOut)
	if err != nil {
		return nil, fmt.Errorf("listar salidas: %w", err)
	}
	return fifo.RebuildBatches(inbound, outbound), nil
}

// CurrentInventoryValue devuelve el valor libro del inventario restante:
// Σ(AvailableQuantity × UnitPrice) sobre los lotes reconstruidos.
func (uc *QueryUseCase) CurrentInventoryValue(productID string) (decimal.Decimal, error) {
	batches, err := uc.StockByBatch(productID)
	if err != nil {
		return decimal.Zero, err
	}
	return fifo.InventoryValue(batches), nil
}

// GetTransactions lista todas las transacciones del producto ordenadas por
// (transaction_date, id) ascendente.
func (uc *QueryUseCase) GetTransactions(productID string) ([]*entity.Transaction, error) {
	return uc.txRepo.ListByProduct(productID, "")
}
