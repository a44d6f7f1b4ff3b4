package forms

import (
	"regexp"
	"strings"
)

// correoRe valida la forma local@dominio.tld sin espacios.
var correoRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizarCodigoEmpresa prepara un código de empresa para la búsqueda
// exacta: recorta espacios y pasa a mayúsculas. Idempotente.
func NormalizarCodigoEmpresa(codigo string) string {
	return strings.ToUpper(strings.TrimSpace(codigo))
}

// NormalizarDocumento elimina todo carácter no alfanumérico (espacios,
// guiones, símbolos) y pasa a mayúsculas. Idempotente.
func NormalizarDocumento(documento string) string {
	var b strings.Builder
	for _, r := range documento {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizarCorreo recorta espacios y pasa a minúsculas.
func NormalizarCorreo(correo string) string {
	return strings.ToLower(strings.TrimSpace(correo))
}

// CorreoValido verifica la forma local@dominio.tld.
func CorreoValido(correo string) bool {
	return correoRe.MatchString(strings.TrimSpace(correo))
}
