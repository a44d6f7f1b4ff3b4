package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrMiembroNotFound     = errors.New("miembro no encontrado")
	ErrEmpresaNotFound     = errors.New("no se encontró ninguna empresa con ese código")
	ErrEmpresaNoDisponible = errors.New("esta empresa no está disponible para vinculación")
	ErrTitularNoEncontrado = errors.New("no se encontró ningún titular con los datos ingresados")
	ErrTitularAmbiguo      = errors.New("se encontraron múltiples titulares, verifica los datos")
	ErrCodigoInvalido      = errors.New("código inválido o expirado")
	ErrCooldownActivo      = errors.New("espera antes de solicitar un nuevo código")
	ErrCorreoRegistrado    = errors.New("el correo ya está registrado por otro miembro")
	ErrMiembroYaExiste     = errors.New("ya existe un miembro para esta cuenta")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")

	// Estado del asistente de onboarding. La ausencia de un paso obligatorio
	// indica una sesión corrupta o reanudada a medias: se devuelve al usuario
	// al paso faltante en lugar de asumir un valor por defecto.
	ErrParentescoInvalido        = errors.New("parentesco inválido")
	ErrSexoInvalido              = errors.New("sexo inválido")
	ErrEmpresaSinConfirmar       = errors.New("no se encontró la empresa vinculada, vuelve al paso de empresa")
	ErrParentescoSinSeleccionar  = errors.New("no se encontró el tipo de miembro, vuelve al paso de parentesco")
	ErrTitularSinConfirmar       = errors.New("no se encontró el titular vinculado, vuelve al paso de titular")
	ErrPasoTitularNoAplica       = errors.New("la vinculación de titular no aplica para parentesco titular")
	ErrSesionIncompleta          = errors.New("faltan datos personales, vuelve al paso de datos")
)
