package fifo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fifo-costing-api/internal/application/dto"
	"github.com/jhoicas/fifo-costing-api/internal/domain"
	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
	"github.com/jhoicas/fifo-costing-api/internal/domain/repository"
)

// ProductUseCase ciclo de vida de productos en el registro: alta, consulta
// y los dos modos de borrado (bloqueado por transacciones vs. forzado).
type ProductUseCase struct {
	txRunner    TxRunner
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner TxRunner, txRepo repository.TransactionRepository, productRepo repository.ProductRepository) (*ProductUseCase, error) {
	if txRunner == nil || txRepo == nil || productRepo == nil {
		return nil, domain.ErrRegistryMisconfigured
	}
	return &ProductUseCase{txRunner: txRunner, txRepo: txRepo, productRepo: productRepo}, nil
}

// Create registra un producto nuevo en el registro.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto, o ErrProductNotFound.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto sin transacciones. Si tiene transacciones
// asociadas devuelve ProductInUseError con el conteo; el conteo y el delete
// corren en la misma transacción con la fila bloqueada, así no puede
// colarse una transacción nueva entre ambos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		ok, err := productRepo.ExistsForUpdate(id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrProductNotFound
		}
		count, err := txRepo.CountByProduct(id)
		if err != nil {
			return fmt.Errorf("contar transacciones: %w", err)
		}
		if count > 0 {
			return &domain.ProductInUseError{ProductID: id, Transactions: count}
		}
		return productRepo.Delete(id)
	})
}

// ForceDelete elimina todas las transacciones del producto y después el
// producto, en una sola transacción (todo-o-nada). Destructivo e
// irreversible; devuelve cuántas transacciones se eliminaron.
func (uc *ProductUseCase) ForceDelete(ctx context.Context, id string) (int64, error) {
	var deleted int64
	err := uc.txRunner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		ok, err := productRepo.ExistsForUpdate(id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrProductNotFound
		}
		deleted, err = txRepo.DeleteAllByProduct(id)
		if err != nil {
			return fmt.Errorf("eliminar transacciones: %w", err)
		}
		return productRepo.Delete(id)
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}
