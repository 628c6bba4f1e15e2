package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fifo-costing-api/internal/application/dto"
	"github.com/jhoicas/fifo-costing-api/pkg/jwt"
)

// AuthConfig configuración del intercambio API key -> JWT.
type AuthConfig struct {
	APIKey     string
	JWTSecret  string
	Issuer     string
	ExpMinutes int
}

// AuthHandler emite tokens JWT a servicios que presentan la API key.
type AuthHandler struct {
	cfg AuthConfig
}

// NewAuthHandler construye el handler.
func NewAuthHandler(cfg AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Token maneja POST /api/auth/token: valida la API key configurada y emite
// un JWT de servicio.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in dto.TokenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if h.cfg.APIKey == "" || subtle.ConstantTimeCompare([]byte(in.APIKey), []byte(h.cfg.APIKey)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_API_KEY", Message: "api key inválida"})
	}
	token, err := jwt.Generate(h.cfg.JWTSecret, "service", h.cfg.Issuer, h.cfg.ExpMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.TokenResponse{Token: token})
}
