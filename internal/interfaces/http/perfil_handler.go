package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sosmedical/clubsos-api/internal/application/dto"
	"github.com/sosmedical/clubsos-api/internal/application/usecase"
)

// PerfilHandler maneja el perfil del miembro, su grupo familiar y su empresa.
type PerfilHandler struct {
	uc *usecase.PerfilUseCase
}

// NewPerfilHandler construye el handler de perfil.
func NewPerfilHandler(uc *usecase.PerfilUseCase) *PerfilHandler {
	return &PerfilHandler{uc: uc}
}

// Obtener godoc
// @Summary      Perfil del miembro autenticado
// @Tags         perfil
// @Produce      json
// @Success      200  {object}  dto.MiembroResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/perfil [get]
func (h *PerfilHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.UserContext(), GetAuthUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Actualizar godoc
// @Summary      Actualizar datos de contacto del perfil
// @Tags         perfil
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ActualizarPerfilRequest  true  "correo o sin_correo"
// @Success      200   {object}  dto.MiembroResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/perfil [patch]
func (h *PerfilHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarPerfilRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.UserContext(), GetAuthUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Parientes godoc
// @Summary      Grupo familiar del miembro autenticado
// @Tags         perfil
// @Produce      json
// @Success      200  {array}  dto.MiembroResponse
// @Router       /api/perfil/parientes [get]
func (h *PerfilHandler) Parientes(c *fiber.Ctx) error {
	out, err := h.uc.Parientes(c.UserContext(), GetAuthUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Empresa godoc
// @Summary      Empresa del miembro autenticado
// @Tags         perfil
// @Produce      json
// @Param        id   path      string  true  "ID de la empresa vinculada"
// @Success      200  {object}  dto.EmpresaResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [get]
func (h *PerfilHandler) Empresa(c *fiber.Ctx) error {
	out, err := h.uc.Empresa(c.UserContext(), GetAuthUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
