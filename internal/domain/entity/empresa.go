package entity

import "time"

// Estados posibles de una Empresa. Solo EstadoActivo permite la vinculación
// de nuevos miembros durante el onboarding.
const (
	EstadoActivo     = "activo"
	EstadoSuspendido = "suspendido"
	EstadoInactivo   = "inactivo"
)

// Empresa representa una empresa patrocinadora cuyo código vincula a sus
// miembros con el pool de beneficios de Club SOS.
type Empresa struct {
	ID        string
	Codigo    string // código único de vinculación, almacenado normalizado (mayúsculas, sin espacios)
	Nombre    string
	Estado    string // ver constantes Estado*
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PermiteVinculacion indica si la empresa acepta nuevos miembros.
// Cualquier estado distinto de "activo" es un rechazo terminal para ese código.
func (e *Empresa) PermiteVinculacion() bool {
	return e.Estado == EstadoActivo
}
