package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// ProductResponse representación de un producto del registro.
type ProductResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// InboundRequest body para POST /api/fifo/inbound.
type InboundRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Reference string          `json:"reference,omitempty"`
}

// OutboundRequest body para POST /api/fifo/outbound. El costo unitario no
// lo envía el caller: lo calcula el motor FIFO.
type OutboundRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference,omitempty"`
}

// InboundResponse respuesta de una entrada registrada.
type InboundResponse struct {
	TransactionID int64 `json:"transaction_id"`
}

// OutboundResponse respuesta de una salida registrada. FifoUnitCost con el
// formato de dos decimales del borde de presentación.
type OutboundResponse struct {
	TransactionID int64  `json:"transaction_id"`
	FifoUnitCost  string `json:"fifo_unit_cost"`
}

// PriceResponse respuesta de GET /api/fifo/:productId/price.
type PriceResponse struct {
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost string          `json:"unit_cost"`
}

// StockResponse stock disponible de un producto.
type StockResponse struct {
	ProductID      string          `json:"product_id"`
	AvailableStock decimal.Decimal `json:"available_stock"`
}

// ValueResponse valor libro del inventario restante de un producto.
type ValueResponse struct {
	ProductID      string          `json:"product_id"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// BatchResponse lote vivo reconstruido (derivado, no persistido).
type BatchResponse struct {
	SourceTransactionID int64           `json:"source_transaction_id"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	OriginalQuantity    decimal.Decimal `json:"original_quantity"`
	AvailableQuantity   decimal.Decimal `json:"available_quantity"`
	TransactionDate     time.Time       `json:"transaction_date"`
}

// TransactionResponse transacción persistida.
type TransactionResponse struct {
	ID              int64           `json:"id"`
	ProductID       string          `json:"product_id"`
	Direction       string          `json:"direction"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	TransactionDate time.Time       `json:"transaction_date"`
	Reference       string          `json:"reference,omitempty"`
}

// DeleteProductResponse respuesta del borrado (forzado o no).
type DeleteProductResponse struct {
	Deleted             bool  `json:"deleted"`
	DeletedTransactions int64 `json:"deleted_transactions"`
}

// TokenRequest body para POST /api/auth/token.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse token emitido.
type TokenResponse struct {
	Token string `json:"token"`
}
