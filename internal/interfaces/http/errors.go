package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sosmedical/clubsos-api/internal/application/dto"
	"github.com/sosmedical/clubsos-api/internal/application/onboarding"
	"github.com/sosmedical/clubsos-api/internal/domain"
)

// respondError traduce errores de dominio a códigos HTTP y cuerpos uniformes.
// Los errores de estado del asistente van como 409: el cliente debe devolver
// al usuario al paso que indica el mensaje.
func respondError(c *fiber.Ctx, err error) error {
	var validacion *onboarding.ErroresValidacion
	if errors.As(err, &validacion) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidacionResponse{
			Code:    "VALIDATION",
			Message: "revisa los campos marcados",
			Errores: validacion.Campos,
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrCodigoInvalido):
		return respond(c, fiber.StatusUnauthorized, "CODIGO_INVALIDO", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, domain.ErrEmpresaNotFound):
		return respond(c, fiber.StatusNotFound, "EMPRESA_NO_ENCONTRADA", err)
	case errors.Is(err, domain.ErrTitularNoEncontrado):
		return respond(c, fiber.StatusNotFound, "TITULAR_NO_ENCONTRADO", err)
	case errors.Is(err, domain.ErrMiembroNotFound):
		return respond(c, fiber.StatusNotFound, "MIEMBRO_NO_ENCONTRADO", err)
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrEmpresaNoDisponible):
		return respond(c, fiber.StatusUnprocessableEntity, "EMPRESA_NO_DISPONIBLE", err)
	case errors.Is(err, domain.ErrTitularAmbiguo):
		return respond(c, fiber.StatusConflict, "TITULAR_AMBIGUO", err)
	case errors.Is(err, domain.ErrCorreoRegistrado):
		return respond(c, fiber.StatusConflict, "CORREO_REGISTRADO", err)
	case errors.Is(err, domain.ErrMiembroYaExiste):
		return respond(c, fiber.StatusConflict, "MIEMBRO_EXISTE", err)
	case errors.Is(err, domain.ErrCooldownActivo):
		return respond(c, fiber.StatusTooManyRequests, "COOLDOWN_ACTIVO", err)
	case errors.Is(err, domain.ErrParentescoInvalido), errors.Is(err, domain.ErrSexoInvalido):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrEmpresaSinConfirmar),
		errors.Is(err, domain.ErrParentescoSinSeleccionar),
		errors.Is(err, domain.ErrTitularSinConfirmar),
		errors.Is(err, domain.ErrSesionIncompleta),
		errors.Is(err, domain.ErrPasoTitularNoAplica):
		return respond(c, fiber.StatusConflict, "SESION_INCONSISTENTE", err)
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err)
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
