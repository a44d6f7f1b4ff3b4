package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sosmedical/clubsos-api/internal/application/dto"
	"github.com/sosmedical/clubsos-api/internal/application/onboarding"
)

// OnboardingHandler maneja los pasos del asistente de vinculación.
type OnboardingHandler struct {
	uc *onboarding.OnboardingUseCase
}

// NewOnboardingHandler construye el handler del asistente.
func NewOnboardingHandler(uc *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{uc: uc}
}

// Estado godoc
// @Summary      Estado completo del asistente (rehidratación)
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  dto.EstadoOnboardingResponse
// @Router       /api/onboarding/estado [get]
func (h *OnboardingHandler) Estado(c *fiber.Ctx) error {
	out, err := h.uc.Estado(c.UserContext(), GetAuthUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ValidarEmpresa godoc
// @Summary      Buscar empresa por código (sin comprometer)
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidarEmpresaRequest  true  "codigo"
// @Success      200   {object}  dto.EmpresaEncontradaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/onboarding/empresa/validar [post]
func (h *OnboardingHandler) ValidarEmpresa(c *fiber.Ctx) error {
	var in dto.ValidarEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ValidarEmpresa(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConfirmarEmpresa godoc
// @Summary      Confirmar la empresa encontrada
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmarEmpresaRequest  true  "empresa_id"
// @Success      200   {object}  dto.EstadoOnboardingResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/onboarding/empresa/confirmar [post]
func (h *OnboardingHandler) ConfirmarEmpresa(c *fiber.Ctx) error {
	var in dto.ConfirmarEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EmpresaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa_id es requerido"})
	}
	out, err := h.uc.ConfirmarEmpresa(c.UserContext(), GetAuthUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Parentesco godoc
// @Summary      Seleccionar el tipo de miembro
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ParentescoRequest  true  "parentesco: titular|conyuge|hijo|familiar"
// @Success      200   {object}  dto.EstadoOnboardingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/onboarding/parentesco [post]
func (h *OnboardingHandler) Parentesco(c *fiber.Ctx) error {
	var in dto.ParentescoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SeleccionarParentesco(c.UserContext(), GetAuthUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BuscarTitular godoc
// @Summary      Buscar al titular por nombre y documento
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BuscarTitularRequest  true  "nombre_completo, documento_identidad"
// @Success      200   {object}  dto.TitularEncontradoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/titular/buscar [post]
func (h *OnboardingHandler) BuscarTitular(c *fiber.Ctx) error {
	var in dto.BuscarTitularRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.BuscarTitular(c.UserContext(), GetAuthUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConfirmarTitular godoc
// @Summary      Confirmar la vinculación con el titular hallado
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmarTitularRequest  true  "miembro_id"
// @Success      200   {object}  dto.EstadoOnboardingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/onboarding/titular/confirmar [post]
func (h *OnboardingHandler) ConfirmarTitular(c *fiber.Ctx) error {
	var in dto.ConfirmarTitularRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.MiembroID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "miembro_id es requerido"})
	}
	out, err := h.uc.ConfirmarTitular(c.UserContext(), GetAuthUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Borrador godoc
// @Summary      Borrador de datos personales (rehidratación del formulario)
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  dto.BorradorResponse
// @Router       /api/onboarding/borrador [get]
func (h *OnboardingHandler) Borrador(c *fiber.Ctx) error {
	out, err := h.uc.Borrador(c.UserContext(), GetAuthUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GuardarBorrador godoc
// @Summary      Validar y guardar los datos personales
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BorradorRequest  true  "datos personales"
// @Success      200   {object}  dto.BorradorResponse
// @Failure      400   {object}  dto.ValidacionResponse
// @Router       /api/onboarding/borrador [put]
func (h *OnboardingHandler) GuardarBorrador(c *fiber.Ctx) error {
	var in dto.BorradorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.GuardarBorrador(c.UserContext(), GetAuthUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Finalizar godoc
// @Summary      Crear el miembro (pendiente de activación)
// @Tags         onboarding
// @Produce      json
// @Success      201  {object}  dto.SesionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/onboarding/finalizar [post]
func (h *OnboardingHandler) Finalizar(c *fiber.Ctx) error {
	out, err := h.uc.Finalizar(c.UserContext(), GetAuthUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Activacion godoc
// @Summary      Consultar si la cuenta ya fue activada
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  dto.ActivacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/onboarding/activacion [get]
func (h *OnboardingHandler) Activacion(c *fiber.Ctx) error {
	out, err := h.uc.Activacion(c.UserContext(), GetAuthUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
