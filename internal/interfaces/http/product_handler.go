package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fifo-costing-api/internal/application/dto"
	appfifo "github.com/jhoicas/fifo-costing-api/internal/application/fifo"
	"github.com/jhoicas/fifo-costing-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP del registro de productos
// (protegido).
type ProductHandler struct {
	uc *appfifo.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *appfifo.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create maneja POST /api/products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y name son obligatorios"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un producto con ese SKU"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetByID maneja GET /api/products/:id.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(product)
}

// Delete maneja DELETE /api/products/:id. Sin ?force=true falla con 409 si
// el producto tiene transacciones; con ?force=true elimina transacciones y
// producto en una sola transacción y reporta cuántas borró.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if c.QueryBool("force") {
		deleted, err := h.uc.ForceDelete(c.Context(), id)
		if err != nil {
			return mapDeleteError(c, err)
		}
		return c.JSON(dto.DeleteProductResponse{Deleted: true, DeletedTransactions: deleted})
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapDeleteError(c, err)
	}
	return c.JSON(dto.DeleteProductResponse{Deleted: true})
}

func mapDeleteError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
	}
	var inUse *domain.ProductInUseError
	if errors.As(err, &inUse) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRODUCT_IN_USE", Message: inUse.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
