package fifo

import (
	"context"

	"github.com/jhoicas/fifo-costing-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando
// repositorios atados a esa transacción. Garantiza atomicidad para los
// caminos de escritura del motor FIFO: o se confirma todo o nada queda
// escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		productRepo repository.ProductRepository,
	) error) error
}
