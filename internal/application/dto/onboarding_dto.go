package dto

// ValidarEmpresaRequest entrada con el código tal como lo escribió el usuario;
// el caso de uso lo normaliza (trim + mayúsculas) antes de buscar.
type ValidarEmpresaRequest struct {
	Codigo string `json:"codigo"`
}

// EmpresaEncontradaResponse empresa hallada y pendiente de confirmación
// explícita. Validar nunca compromete la vinculación.
type EmpresaEncontradaResponse struct {
	EmpresaID string `json:"empresa_id"`
	Nombre    string `json:"nombre"`
	Estado    string `json:"estado"`
}

// ConfirmarEmpresaRequest entrada del paso explícito de confirmación.
type ConfirmarEmpresaRequest struct {
	EmpresaID string `json:"empresa_id"`
}

// ParentescoRequest entrada de la clasificación de tipo de miembro.
type ParentescoRequest struct {
	Parentesco string `json:"parentesco"`
}

// BuscarTitularRequest entrada de la búsqueda del titular a vincular.
type BuscarTitularRequest struct {
	NombreCompleto     string `json:"nombre_completo"`
	DocumentoIdentidad string `json:"documento_identidad"`
}

// TitularEncontradoResponse única coincidencia, pendiente de confirmación.
type TitularEncontradoResponse struct {
	MiembroID          string `json:"miembro_id"`
	NombreCompleto     string `json:"nombre_completo"`
	DocumentoIdentidad string `json:"documento_identidad"`
	EmpresaNombre      string `json:"empresa_nombre"`
}

// ConfirmarTitularRequest entrada del paso explícito de confirmación.
type ConfirmarTitularRequest struct {
	MiembroID string `json:"miembro_id"`
}

// BorradorRequest campos del formulario de datos personales. La fecha llega
// enmascarada DD/MM/AAAA; el teléfono nunca viene del cliente (se toma de la
// identidad verificada). SinCorreo marca la ausencia explícita de correo,
// distinta de "todavía no provisto".
type BorradorRequest struct {
	NombreCompleto     string `json:"nombre_completo"`
	DocumentoIdentidad string `json:"documento_identidad"`
	FechaNacimiento    string `json:"fecha_nacimiento"`
	Sexo               string `json:"sexo"`
	Correo             string `json:"correo"`
	SinCorreo          bool   `json:"sin_correo"`
}

// BorradorResponse borrador hidratado para reentrar al formulario.
type BorradorResponse struct {
	NombreCompleto     string  `json:"nombre_completo"`
	DocumentoIdentidad string  `json:"documento_identidad"`
	FechaNacimiento    string  `json:"fecha_nacimiento"` // DD/MM/AAAA
	Sexo               string  `json:"sexo"`
	Correo             *string `json:"correo"`
	SinCorreo          bool    `json:"sin_correo"`
	Telefono           string  `json:"telefono"` // solo lectura, de la identidad verificada
}

// EstadoOnboardingResponse contexto completo del asistente para rehidratar
// cualquier paso al navegar hacia atrás.
type EstadoOnboardingResponse struct {
	Paso             string             `json:"paso"`
	Telefono         string             `json:"telefono"`
	EmpresaID        string             `json:"empresa_id,omitempty"`
	EmpresaNombre    string             `json:"empresa_nombre,omitempty"`
	Parentesco       string             `json:"parentesco,omitempty"`
	TitularMiembroID string             `json:"titular_miembro_id,omitempty"`
	TitularNombre    string             `json:"titular_nombre,omitempty"`
	TitularDocumento string             `json:"titular_documento,omitempty"`
	Borrador         *BorradorResponse  `json:"borrador,omitempty"`
}

// ActivacionResponse salida de la puerta de activación: si el administrador
// ya aprobó la cuenta, destino inicio; si no, permanece en activación sin error.
type ActivacionResponse struct {
	Activo  bool   `json:"activo"`
	Destino string `json:"destino"`
}
