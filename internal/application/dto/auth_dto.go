package dto

// EnviarCodigoRequest entrada para solicitar un código OTP por SMS.
// Pais es el código ISO del país (por defecto NI) e Indicativo el prefijo
// telefónico internacional sin el signo +.
type EnviarCodigoRequest struct {
	Pais       string `json:"pais"`
	Indicativo string `json:"indicativo"`
	Telefono   string `json:"telefono"`
}

// EnviarCodigoResponse salida con la sesión de verificación creada.
type EnviarCodigoResponse struct {
	VerificacionID    string `json:"verificacion_id"`
	Telefono          string `json:"telefono"` // E.164
	ReenvioEnSegundos int    `json:"reenvio_en_segundos"`
}

// ReenviarCodigoRequest entrada para reenviar el código tras el cooldown.
type ReenviarCodigoRequest struct {
	VerificacionID string `json:"verificacion_id"`
}

// VerificarCodigoRequest entrada para canjear el código por una sesión.
type VerificarCodigoRequest struct {
	VerificacionID string `json:"verificacion_id"`
	Codigo         string `json:"codigo"`
}

// Destinos de navegación que resuelve la puerta de sesión/identidad.
const (
	DestinoBienvenida = "bienvenida"
	DestinoOnboarding = "onboarding"
	DestinoActivacion = "activacion"
	DestinoInicio     = "inicio"
)

// SesionResponse salida de la puerta de sesión y de la verificación OTP:
// token (cuando se emitió uno nuevo), destino de navegación y el miembro si
// ya existe.
type SesionResponse struct {
	Token   string            `json:"token,omitempty"`
	Destino string            `json:"destino"`
	Paso    string            `json:"paso,omitempty"` // paso de reanudación cuando destino = onboarding
	Miembro *MiembroResponse  `json:"miembro,omitempty"`
}
