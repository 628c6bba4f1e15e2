package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-costing-api/internal/application/dto"
	appfifo "github.com/jhoicas/fifo-costing-api/internal/application/fifo"
	"github.com/jhoicas/fifo-costing-api/internal/domain"
	"github.com/jhoicas/fifo-costing-api/internal/domain/entity"
	"github.com/jhoicas/fifo-costing-api/internal/domain/fifo"
)

// FifoHandler maneja las peticiones HTTP del motor FIFO (protegido).
type FifoHandler struct {
	recorder *appfifo.RecorderUseCase
	queries  *appfifo.QueryUseCase
}

// NewFifoHandler construye el handler.
func NewFifoHandler(recorder *appfifo.RecorderUseCase, queries *appfifo.QueryUseCase) *FifoHandler {
	return &FifoHandler{recorder: recorder, queries: queries}
}

// RegisterInbound maneja POST /api/fifo/inbound: registra una entrada de
// stock (compra/recepción) con su precio unitario.
func (h *FifoHandler) RegisterInbound(c *fiber.Ctx) error {
	var in dto.InboundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	txID, err := h.recorder.RegisterInbound(c.Context(), in.ProductID, in.Quantity, in.UnitPrice, in.Reference)
	if err != nil {
		return mapRecorderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InboundResponse{TransactionID: txID})
}

// RegisterOutbound maneja POST /api/fifo/outbound: registra una salida; el
// costo unitario lo cotiza el motor FIFO y se devuelve con dos decimales.
func (h *FifoHandler) RegisterOutbound(c *fiber.Ctx) error {
	var in dto.OutboundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.recorder.RegisterOutbound(c.Context(), in.ProductID, in.Quantity, in.Reference)
	if err != nil {
		return mapRecorderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OutboundResponse{
		TransactionID: result.TransactionID,
		FifoUnitCost:  result.FifoUnitCost.StringFixed(2),
	})
}

// Price maneja GET /api/fifo/:productId/price?quantity=Q: cotiza sin
// escribir. El precio viaja como string de dos decimales solo en este
// borde; internamente siempre es un CostQuote tipado.
func (h *FifoHandler) Price(c *fiber.Ctx) error {
	productID := c.Params("productId")
	quantity, err := decimal.NewFromString(c.Query("quantity", "0"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity inválida"})
	}
	quote, err := h.queries.QuoteFifoCost(productID, quantity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	switch quote.Status {
	case fifo.QuoteProductNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
	case fifo.QuoteInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	}
	return c.JSON(dto.PriceResponse{Quantity: quantity, UnitCost: quote.FormattedUnitCost()})
}

// Stock maneja GET /api/fifo/:productId/stock.
func (h *FifoHandler) Stock(c *fiber.Ctx) error {
	productID := c.Params("productId")
	available, err := h.queries.AvailableStock(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StockResponse{ProductID: productID, AvailableStock: available})
}

// Value maneja GET /api/fifo/:productId/value: valor libro del inventario
// restante.
func (h *FifoHandler) Value(c *fiber.Ctx) error {
	productID := c.Params("productId")
	value, err := h.queries.CurrentInventoryValue(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ValueResponse{ProductID: productID, InventoryValue: value})
}

// Batches maneja GET /api/fifo/:productId/batches: lotes vivos en orden FIFO.
func (h *FifoHandler) Batches(c *fiber.Ctx) error {
	productID := c.Params("productId")
	batches, err := h.queries.StockByBatch(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.BatchResponse{
			SourceTransactionID: b.SourceTransactionID,
			UnitPrice:           b.UnitPrice,
			OriginalQuantity:    b.OriginalQuantity,
			AvailableQuantity:   b.AvailableQuantity,
			TransactionDate:     b.TransactionDate,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "batches": out})
}

// Transactions maneja GET /api/fifo/:productId/transactions.
func (h *FifoHandler) Transactions(c *fiber.Ctx) error {
	productID := c.Params("productId")
	txs, err := h.queries.GetTransactions(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	return c.JSON(fiber.Map{"total": len(out), "transactions": out})
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		Direction:       t.Direction,
		Quantity:        t.Quantity,
		UnitPrice:       t.UnitPrice,
		TotalAmount:     t.TotalAmount,
		TransactionDate: t.TransactionDate,
		Reference:       t.Reference,
	}
}

// mapRecorderError traduce errores de dominio a códigos HTTP.
func mapRecorderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida (debe ser positiva, máx. 2 decimales)"})
	case errors.Is(err, domain.ErrInvalidPrice):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PRICE", Message: "precio inválido (debe ser positivo, máx. 2 decimales)"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
