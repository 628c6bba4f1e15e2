package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de una transacción FIFO.
const (
	DirectionIn  = "in"  // entrada (compra/recepción)
	DirectionOut = "out" // salida (venta/consumo)
)

// Transaction representa un movimiento de stock inmutable una vez persistido.
// UnitPrice en entradas es el precio de compra; en salidas es el costo FIFO
// calculado al momento del consumo (nunca lo aporta el caller).
// El orden FIFO lo determina TransactionDate; empates se resuelven por ID
// ascendente (orden de inserción).
type Transaction struct {
	ID              int64
	ProductID       string
	Direction       string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	TotalAmount     decimal.Decimal // Quantity * UnitPrice, redundante para auditoría
	TransactionDate time.Time
	Reference       string
	CreatedAt       time.Time
}

// IsInbound indica si la transacción es una entrada.
func (t *Transaction) IsInbound() bool {
	return t.Direction == DirectionIn
}

// IsOutbound indica si la transacción es una salida.
func (t *Transaction) IsOutbound() bool {
	return t.Direction == DirectionOut
}
