// Package forms contiene las reglas puras de captura y validación del
// onboarding: teléfono, fecha de nacimiento enmascarada, entrada de código
// OTP y normalizaciones. Sin estado y sin dependencias de infraestructura,
// para poder probarlas de forma exhaustiva.
package forms

import (
	"fmt"
	"strings"
)

// PaisPorDefecto es el país preseleccionado en el ingreso de teléfono.
// Nicaragua usa números locales de exactamente 8 dígitos.
const (
	PaisPorDefecto       = "NI"
	IndicativoPorDefecto = "505"

	digitosNI    = 8
	digitosMin   = 6
	digitosMax   = 15
)

// ValidacionTelefono es el resultado de validar la entrada de teléfono.
// Mensaje queda vacío mientras no se haya ingresado ningún dígito: un campo
// intacto no muestra error.
type ValidacionTelefono struct {
	Valido  bool
	Mensaje string
}

// SoloDigitos elimina todo carácter no numérico de la entrada.
func SoloDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidarTelefono aplica la regla de dígitos por país: para el país por
// defecto exactamente 8; para el resto entre 6 y 15. Se reevalúa en cada
// pulsación sobre la entrada ya despojada de separadores.
func ValidarTelefono(pais, entrada string) ValidacionTelefono {
	digitos := SoloDigitos(entrada)
	if len(digitos) == 0 {
		return ValidacionTelefono{}
	}
	if pais == PaisPorDefecto {
		if len(digitos) == digitosNI {
			return ValidacionTelefono{Valido: true}
		}
		return ValidacionTelefono{Mensaje: "Ingresa 8 dígitos"}
	}
	if len(digitos) >= digitosMin && len(digitos) <= digitosMax {
		return ValidacionTelefono{Valido: true}
	}
	return ValidacionTelefono{Mensaje: "Ingresa entre 6 y 15 dígitos"}
}

// ComponerE164 arma el teléfono internacional sin separadores:
// "+" + indicativo + dígitos locales.
func ComponerE164(indicativo, entrada string) string {
	return "+" + SoloDigitos(indicativo) + SoloDigitos(entrada)
}

// FormatearTelefono devuelve el número para mostrar. Los números de 8 dígitos
// (estilo Nicaragua) se presentan como +505 8888-8888.
func FormatearTelefono(indicativo, entrada string) string {
	digitos := SoloDigitos(entrada)
	ind := SoloDigitos(indicativo)
	if ind == "" || digitos == "" {
		return ""
	}
	if len(digitos) == digitosNI {
		return fmt.Sprintf("+%s %s-%s", ind, digitos[:4], digitos[4:])
	}
	return fmt.Sprintf("+%s %s", ind, digitos)
}

// FormatearCooldown presenta los segundos restantes del reenvío como MM:SS.
func FormatearCooldown(segundos int) string {
	if segundos < 0 {
		segundos = 0
	}
	return fmt.Sprintf("%02d:%02d", segundos/60, segundos%60)
}
