package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcamposl/gestock-api/internal/application/auth"
	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/pkg/validator"
)

// AuthHandler maneja login y validación de tokens (público).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica al usuario y devuelve un JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if msg := validator.ValidateStruct(in); msg != "" {
		return badRequest(c, "VALIDATION", msg)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ValidateToken verifica un token ya emitido. Responde siempre 200 con un
// booleano; nunca revela por qué un token es inválido.
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var in dto.ValidateTokenRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if msg := validator.ValidateStruct(in); msg != "" {
		return badRequest(c, "VALIDATION", msg)
	}
	return c.JSON(dto.ValidateTokenResponse{IsValid: h.uc.ValidateToken(in.Token)})
}
