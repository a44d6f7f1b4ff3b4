package dto

import "time"

// MiembroResponse salida de un miembro.
type MiembroResponse struct {
	ID                 string    `json:"id"`
	EmpresaID          string    `json:"empresa_id"`
	Parentesco         string    `json:"parentesco"`
	NombreCompleto     string    `json:"nombre_completo"`
	DocumentoIdentidad string    `json:"documento_identidad"`
	FechaNacimiento    string    `json:"fecha_nacimiento"` // DD/MM/AAAA
	Sexo               string    `json:"sexo"`
	Telefono           string    `json:"telefono"`
	Correo             *string   `json:"correo"`
	TitularMiembroID   *string   `json:"titular_miembro_id"`
	Activo             bool      `json:"activo"`
	CreatedAt          time.Time `json:"created_at"`
}

// ActualizarPerfilRequest campos de contacto editables por el propio miembro.
// Parentesco, empresa y activo nunca son escribibles desde el cliente.
type ActualizarPerfilRequest struct {
	Correo    *string `json:"correo"`
	SinCorreo bool    `json:"sin_correo"`
}

// EmpresaResponse salida de una empresa.
type EmpresaResponse struct {
	ID     string `json:"id"`
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
	Estado string `json:"estado"`
}
