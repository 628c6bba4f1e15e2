package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para transacciones
// FIFO (append-only: sin update ni delete individual).
type TransactionRepository interface {
	// Create persiste la transacción y asigna su ID (autoincremental).
	Create(tx *entity.Transaction) error
	// ListByProduct lista transacciones del producto ordenadas por
	// (transaction_date, id) ascendente. direction "" = todas.
	ListByProduct(productID, direction string) ([]*entity.Transaction, error)
	// SumQuantity suma las cantidades del producto para una dirección.
	// Devuelve cero si no hay transacciones.
	SumQuantity(productID, direction string) (decimal.Decimal, error)
	// CountByProduct cuenta todas las transacciones del producto.
	CountByProduct(productID string) (int64, error)
	// DeleteAllByProduct elimina todas las transacciones del producto y
	// devuelve cuántas eliminó. Solo para el borrado forzado de productos.
	DeleteAllByProduct(productID string) (int64, error)
}
