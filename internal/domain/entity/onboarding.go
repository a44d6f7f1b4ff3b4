package entity

import (
	"time"

	"github.com/sosmedical/clubsos-api/internal/domain"
)

// VersionEstadoOnboarding versiona el esquema del estado persistido del
// asistente. Un estado guardado con otra versión se descarta al hidratar en
// lugar de rellenar el formulario con campos incompatibles.
const VersionEstadoOnboarding = 1

// Pasos del asistente de onboarding, en orden de avance. El asistente solo
// avanza hacia adelante; la navegación hacia atrás rehidrata desde el estado
// persistido sin mutarlo.
const (
	PasoEmpresa    = "empresa"
	PasoParentesco = "parentesco"
	PasoTitular    = "titular"
	PasoDatos      = "datos"
	PasoFinalizar  = "finalizar"
	PasoActivacion = "activacion"
)

// EstadoOnboarding es el contexto tipado del asistente: todo lo que los pasos
// anteriores confirmaron y el borrador de datos personales. Escritor único
// (el usuario autenticado); los pasos posteriores solo leen lo ya confirmado.
type EstadoOnboarding struct {
	AuthUserID       string
	Version          int
	Paso             string
	Telefono         string // E.164 verificado por OTP
	EmpresaID        string
	EmpresaNombre    string
	Parentesco       string
	TitularMiembroID string
	TitularNombre    string // snapshot al momento de confirmar
	TitularDocumento string // snapshot al momento de confirmar
	Borrador         map[string]any
	ActualizadoEn    time.Time
}

// NuevoEstadoOnboarding crea el contexto inicial tras verificar el teléfono.
func NuevoEstadoOnboarding(authUserID, telefono string, ahora time.Time) *EstadoOnboarding {
	return &EstadoOnboarding{
		AuthUserID:    authUserID,
		Version:       VersionEstadoOnboarding,
		Paso:          PasoEmpresa,
		Telefono:      telefono,
		Borrador:      map[string]any{},
		ActualizadoEn: ahora,
	}
}

// ConfirmarEmpresa compromete la empresa validada. Cambiar de empresa invalida
// la vinculación de titular previa (pertenecía al pool anterior); reconfirmar
// la misma empresa no altera nada más (idempotente).
func (e *EstadoOnboarding) ConfirmarEmpresa(empresaID, nombre string, ahora time.Time) {
	if e.EmpresaID != "" && e.EmpresaID != empresaID {
		e.limpiarTitular()
	}
	e.EmpresaID = empresaID
	e.EmpresaNombre = nombre
	if e.Paso == PasoEmpresa {
		e.Paso = PasoParentesco
	}
	e.ActualizadoEn = ahora
}

// SeleccionarParentesco registra el tipo de miembro y ramifica el flujo:
// titular salta la vinculación y va directo a datos personales. Cambiar de
// parentesco descarta cualquier titular confirmado con el valor anterior.
func (e *EstadoOnboarding) SeleccionarParentesco(parentesco string, ahora time.Time) error {
	if !ParentescoValido(parentesco) {
		return domain.ErrParentescoInvalido
	}
	if e.EmpresaID == "" {
		return domain.ErrEmpresaSinConfirmar
	}
	if e.Parentesco != "" && e.Parentesco != parentesco {
		e.limpiarTitular()
	}
	e.Parentesco = parentesco
	if parentesco == ParentescoTitular {
		e.limpiarTitular()
		e.Paso = PasoDatos
	} else if e.TitularMiembroID == "" {
		e.Paso = PasoTitular
	}
	e.ActualizadoEn = ahora
	return nil
}

// RequiereTitular indica si el flujo exige vincular un titular
// (todo parentesco distinto de titular).
func (e *EstadoOnboarding) RequiereTitular() bool {
	return e.Parentesco != "" && e.Parentesco != ParentescoTitular
}

// ConfirmarTitular compromete la vinculación con el titular encontrado.
// Nunca es alcanzable para parentesco = titular.
func (e *EstadoOnboarding) ConfirmarTitular(miembroID, nombre, documento string, ahora time.Time) error {
	if !e.RequiereTitular() {
		return domain.ErrPasoTitularNoAplica
	}
	e.TitularMiembroID = miembroID
	e.TitularNombre = nombre
	e.TitularDocumento = documento
	e.Paso = PasoDatos
	e.ActualizadoEn = ahora
	return nil
}

// FusionarBorrador mezcla campos nuevos sobre el borrador existente sin
// descartar claves no incluidas (merge, no replace). Un valor nil explícito
// se conserva como ausencia explícita (distinto de "todavía no provisto").
func (e *EstadoOnboarding) FusionarBorrador(campos map[string]any, ahora time.Time) {
	if e.Borrador == nil {
		e.Borrador = map[string]any{}
	}
	for k, v := range campos {
		e.Borrador[k] = v
	}
	e.Paso = PasoFinalizar
	e.ActualizadoEn = ahora
}

// ListoParaFinalizar valida que todos los pasos obligatorios hayan confirmado
// su estado. La ausencia de empresa o parentesco indica una sesión corrupta o
// reanudada a medias: el llamador debe devolver al usuario al paso faltante.
func (e *EstadoOnboarding) ListoParaFinalizar() error {
	if e.EmpresaID == "" {
		return domain.ErrEmpresaSinConfirmar
	}
	if e.Parentesco == "" {
		return domain.ErrParentescoSinSeleccionar
	}
	if e.RequiereTitular() && e.TitularMiembroID == "" {
		return domain.ErrTitularSinConfirmar
	}
	return nil
}

func (e *EstadoOnboarding) limpiarTitular() {
	e.TitularMiembroID = ""
	e.TitularNombre = ""
	e.TitularDocumento = ""
}
