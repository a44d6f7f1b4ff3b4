package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sosmedical/clubsos-api/internal/application/auth"
	"github.com/sosmedical/clubsos-api/internal/application/dto"
)

// AuthHandler maneja la verificación de teléfono por OTP y la puerta de sesión.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// EnviarCodigo godoc
// @Summary      Solicitar código OTP por SMS
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnviarCodigoRequest  true  "pais, indicativo, telefono"
// @Success      201   {object}  dto.EnviarCodigoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/codigo [post]
func (h *AuthHandler) EnviarCodigo(c *fiber.Ctx) error {
	var in dto.EnviarCodigoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.EnviarCodigo(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReenviarCodigo godoc
// @Summary      Reenviar código OTP tras el cooldown
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReenviarCodigoRequest  true  "verificacion_id"
// @Success      201   {object}  dto.EnviarCodigoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/codigo/reenviar [post]
func (h *AuthHandler) ReenviarCodigo(c *fiber.Ctx) error {
	var in dto.ReenviarCodigoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.VerificacionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "verificacion_id es requerido"})
	}
	out, err := h.uc.ReenviarCodigo(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Verificar godoc
// @Summary      Canjear el código OTP por una sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerificarCodigoRequest  true  "verificacion_id, codigo"
// @Success      200   {object}  dto.SesionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/verificar [post]
func (h *AuthHandler) Verificar(c *fiber.Ctx) error {
	var in dto.VerificarCodigoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.VerificacionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "verificacion_id es requerido"})
	}
	out, err := h.uc.VerificarCodigo(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sesion godoc
// @Summary      Puerta de sesión al abrir la app
// @Description  Resuelve el destino de navegación. Sin sesión o con token
// @Description  inválido responde bienvenida, nunca 401.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SesionResponse
// @Router       /api/auth/sesion [get]
func (h *AuthHandler) Sesion(c *fiber.Ctx) error {
	return c.JSON(h.uc.ResolverSesion(c.UserContext(), GetAuthUserID(c)))
}

// CerrarSesion godoc
// @Summary      Cerrar sesión
// @Description  La sesión es un JWT sin estado: cerrar es descartarlo en el
// @Description  cliente. El endpoint existe para que el flujo sea explícito.
// @Tags         auth
// @Success      204
// @Router       /api/auth/sesion [delete]
func (h *AuthHandler) CerrarSesion(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
