package entity

import "time"

// Parentescos válidos para Miembro. Todo valor distinto de "titular" requiere
// vinculación con el titular de la membresía.
const (
	ParentescoTitular  = "titular"
	ParentescoConyuge  = "conyuge"
	ParentescoHijo     = "hijo"
	ParentescoFamiliar = "familiar"
)

// Sexos válidos para Miembro (exactamente dos opciones, sin valor por defecto).
const (
	SexoMasculino = "masculino"
	SexoFemenino  = "femenino"
)

// RolMiembro es el rol asignado a todo miembro creado desde la app.
const RolMiembro = "miembro"

// ParentescoValido verifica que el valor pertenezca a la enumeración.
func ParentescoValido(p string) bool {
	switch p {
	case ParentescoTitular, ParentescoConyuge, ParentescoHijo, ParentescoFamiliar:
		return true
	}
	return false
}

// SexoValido verifica que el valor pertenezca a la enumeración.
func SexoValido(s string) bool {
	return s == SexoMasculino || s == SexoFemenino
}

// Miembro representa un registro de membresía (titular o dependiente) de una
// Empresa. Activo lo controla el administrador de la empresa, nunca el cliente:
// todo miembro se crea con Activo = false y queda en revisión.
type Miembro struct {
	ID                  string
	EmpresaID           string
	AuthUserID          string // identidad autenticada por teléfono (único por miembro)
	Parentesco          string // ver constantes Parentesco*
	NombreCompleto      string
	DocumentoIdentidad  string
	FechaNacimiento     time.Time // solo fecha calendario
	Sexo                string    // ver constantes Sexo*
	Telefono            string    // E.164, copiado de la identidad verificada
	Correo              *string   // nil = sin correo (ausencia explícita)
	TitularMiembroID    *string   // nil cuando Parentesco = titular
	Rol                 string
	Activo              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EsTitular indica si el miembro es el titular de la membresía.
func (m *Miembro) EsTitular() bool {
	return m.Parentesco == ParentescoTitular
}
