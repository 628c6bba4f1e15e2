package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
	"github.com/jhoicas/fifo-costing-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre
// PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción FIFO y asigna su ID (BIGSERIAL).
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO fifo_transactions (product_id, direction, quantity, unit_price, total_amount, transaction_date, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	reference := (*string)(nil)
	if tx.Reference != "" {
		reference = &tx.Reference
	}
	err := r.q.QueryRow(context.Background(), query,
		tx.ProductID, tx.Direction, tx.Quantity, tx.UnitPrice, tx.TotalAmount,
		tx.TransactionDate, reference, tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("create fifo transaction: %w", err)
	}
	return nil
}

// ListByProduct lista transacciones del producto ordenadas por
// (transaction_date, id) ascendente; el id desempata fechas iguales por
// orden de inserción. direction "" = todas.
func (r *TransactionRepo) ListByProduct(productID, direction string) ([]*entity.Transaction, error) {
	query := `
		SELECT id, product_id, direction, quantity, unit_price, total_amount, transaction_date, reference, created_at
		FROM fifo_transactions WHERE product_id = $1`
	args := []any{productID}
	if direction != "" {
		query += ` AND direction = $2`
		args = append(args, direction)
	}
	query += ` ORDER BY transaction_date ASC, id ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		var reference *string
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Direction, &t.Quantity, &t.UnitPrice,
			&t.TotalAmount, &t.TransactionDate, &reference, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if reference != nil {
			t.Reference = *reference
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SumQuantity suma cantidades del producto para una dirección (0 sin filas).
func (r *TransactionRepo) SumQuantity(productID, direction string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM fifo_transactions WHERE product_id = $1 AND direction = $2`,
		productID, direction,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum quantity: %w", err)
	}
	return sum, nil
}

// CountByProduct cuenta todas las transacciones del producto.
func (r *TransactionRepo) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM fifo_transactions WHERE product_id = $1`,
		productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// DeleteAllByProduct elimina todas las transacciones del producto y
// devuelve cuántas eliminó.
func (r *TransactionRepo) DeleteAllByProduct(productID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM fifo_transactions WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	return cmd.RowsAffected(), nil
}
