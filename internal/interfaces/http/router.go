package http

import (
	"github.com/gofiber/fiber/v2"

	appfifo "github.com/jhoicas/fifo-costing-api/internal/application/fifo"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Recorder  *appfifo.RecorderUseCase
	Queries   *appfifo.QueryUseCase
	ProductUC *appfifo.ProductUseCase
	Auth      AuthConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público): intercambio API key -> JWT
	authHandler := NewAuthHandler(deps.Auth)
	api.Post("/auth/token", authHandler.Token)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Auth.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Delete("/:id", productHandler.Delete)

	// Motor FIFO (protegido)
	fifoGroup := protected.Group("/fifo")
	fifoHandler := NewFifoHandler(deps.Recorder, deps.Queries)
	fifoGroup.Post("/inbound", fifoHandler.RegisterInbound)
	fifoGroup.Post("/outbound", fifoHandler.RegisterOutbound)
	fifoGroup.Get("/:productId/price", fifoHandler.Price)
	fifoGroup.Get("/:productId/stock", fifoHandler.Stock)
	fifoGroup.Get("/:productId/value", fifoHandler.Value)
	fifoGroup.Get("/:productId/batches", fifoHandler.Batches)
	fifoGroup.Get("/:productId/transactions", fifoHandler.Transactions)
}
