package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch es el remanente vivo de una transacción de entrada. Se reconstruye
// bajo demanda desde el historial; no se persiste y no tiene identidad propia
// más allá de su transacción de origen.
type Batch struct {
	SourceTransactionID int64
	UnitPrice           decimal.Decimal
	OriginalQuantity    decimal.Decimal
	AvailableQuantity   decimal.Decimal // nunca negativa ni mayor que OriginalQuantity
	TransactionDate     time.Time
}
