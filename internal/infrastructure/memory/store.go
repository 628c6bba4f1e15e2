// Package memory implementa los puertos del motor FIFO sobre estructuras en
// memoria. Se usa en los tests de aplicación/handlers y en modo dev sin
// PostgreSQL. La semántica de concurrencia imita a la de postgres: Run
// serializa escritores como lo hace el FOR UPDATE sobre la fila del
// producto, y restaura un snapshot si el callback falla (rollback).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	appfifo "github.com/jhoicas/fifo-costing-api/internal/application/fifo"
	"github.com/jhoicas/fifo-costing-api/internal/domain"
	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
	"github.com/jhoicas/fifo-costing-api/internal/domain/repository"
)

var _ appfifo.TxRunner = (*Store)(nil)

// Store almacén en memoria: transacciones FIFO + registro de productos.
type Store struct {
	mu      sync.RWMutex // protege los datos
	writeMu sync.Mutex   // serializa escritores (equivalente al FOR UPDATE)

	nextID       int64
	transactions []*entity.Transaction
	products     map[string]*entity.Product
	skus         map[string]string // sku -> product id
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		skus:     make(map[string]string),
	}
}

// TransactionRepository devuelve la vista del puerto de transacciones.
func (s *Store) TransactionRepository() repository.TransactionRepository {
	return &transactionRepo{s: s}
}

// ProductRepository devuelve la vista del puerto del registro de productos.
func (s *Store) ProductRepository() repository.ProductRepository {
	return &productRepo{s: s}
}

// Run ejecuta fn como una transacción: un solo escritor a la vez y, si fn
// devuelve error, el estado vuelve al snapshot previo (todo-o-nada).
func (s *Store) Run(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	prevID := s.nextID
	prevTxs := make([]*entity.Transaction, len(s.transactions))
	copy(prevTxs, s.transactions)
	prevProducts := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		prevProducts[id] = p
	}
	prevSKUs := make(map[string]string, len(s.skus))
	for sku, id := range s.skus {
		prevSKUs[sku] = id
	}
	s.mu.Unlock()

	if err := fn(s.TransactionRepository(), s.ProductRepository()); err != nil {
		s.mu.Lock()
		s.nextID = prevID
		s.transactions = prevTxs
		s.products = prevProducts
		s.skus = prevSKUs
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── Transacciones ─────────────────────────────────────────────────────────

type transactionRepo struct {
	s *Store
}

func (r *transactionRepo) Create(tx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextID++
	tx.ID = r.s.nextID
	r.s.transactions = append(r.s.transactions, tx)
	return nil
}

func (r *transactionRepo) ListByProduct(productID, direction string) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	var list []*entity.Transaction
	for _, tx := range r.s.transactions {
		if tx.ProductID != productID {
			continue
		}
		if direction != "" && tx.Direction != direction {
			continue
		}
		list = append(list, tx)
	}
	r.s.mu.RUnlock()

	// Mismo orden que el store real: (transaction_date, id) ascendente.
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].TransactionDate.Equal(list[j].TransactionDate) {
			return list[i].TransactionDate.Before(list[j].TransactionDate)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *transactionRepo) SumQuantity(productID, direction string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, tx := range r.s.transactions {
		if tx.ProductID == productID && tx.Direction == direction {
			sum = sum.Add(tx.Quantity)
		}
	}
	return sum, nil
}

func (r *transactionRepo) CountByProduct(productID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, tx := range r.s.transactions {
		if tx.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *transactionRepo) DeleteAllByProduct(productID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.transactions[:0]
	var deleted int64
	for _, tx := range r.s.transactions {
		if tx.ProductID == productID {
			deleted++
			continue
		}
		kept = append(kept, tx)
	}
	r.s.transactions = kept
	return deleted, nil
}

// ── Productos ─────────────────────────────────────────────────────────────

type productRepo struct {
	s *Store
}

func (r *productRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.skus[product.SKU]; dup {
		return domain.ErrDuplicate
	}
	if _, dup := r.s.products[product.ID]; dup {
		return domain.ErrDuplicate
	}
	r.s.products[product.ID] = product
	r.s.skus[product.SKU] = product.ID
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.products[id], nil
}

func (r *productRepo) Exists(id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.products[id]
	return ok, nil
}

// ExistsForUpdate en memoria equivale a Exists: el escritor ya está
// serializado por Run.
func (r *productRepo) ExistsForUpdate(id string) (bool, error) {
	return r.Exists(id)
}

func (r *productRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		delete(r.s.skus, p.SKU)
		delete(r.s.products, id)
	}
	return nil
}
