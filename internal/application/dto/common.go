package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidacionResponse error de validación con detalle por campo. Todos los
// campos inválidos se reportan a la vez, cada uno con su propio mensaje.
type ValidacionResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errores map[string]string `json:"errores,omitempty"`
}
