package forms

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Errores de validación de fecha de nacimiento.
var (
	ErrFechaFormato  = errors.New("formato inválido, use DD/MM/AAAA")
	ErrFechaInvalida = errors.New("fecha inválida")
	ErrFechaFutura   = errors.New("la fecha no puede ser futura")
)

// MascaraFecha rederiva la presentación DD/MM/AAAA a partir solo de los
// dígitos de la entrada, nunca de la cadena enmascarada anterior, evitando
// que el cursor y el formato se desincronicen al editar.
func MascaraFecha(texto string) string {
	digitos := SoloDigitos(texto)
	if len(digitos) > 8 {
		digitos = digitos[:8]
	}
	switch {
	case len(digitos) <= 2:
		return digitos
	case len(digitos) <= 4:
		return digitos[:2] + "/" + digitos[2:]
	default:
		return digitos[:2] + "/" + digitos[2:4] + "/" + digitos[4:]
	}
}

// ParseFechaNacimiento valida y convierte una fecha enmascarada DD/MM/AAAA a
// fecha calendario. Rechaza fechas inexistentes (p. ej. 31/02/2020) y fechas
// posteriores a ahora.
func ParseFechaNacimiento(mascara string, ahora time.Time) (time.Time, error) {
	partes := strings.Split(strings.TrimSpace(mascara), "/")
	if len(partes) != 3 || len(partes[2]) != 4 {
		return time.Time{}, ErrFechaFormato
	}
	dia, err1 := strconv.Atoi(partes[0])
	mes, err2 := strconv.Atoi(partes[1])
	anio, err3 := strconv.Atoi(partes[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, ErrFechaFormato
	}
	if mes < 1 || mes > 12 || dia < 1 || anio < 1 {
		return time.Time{}, ErrFechaInvalida
	}
	fecha := time.Date(anio, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
	// time.Date normaliza desbordes (31/02 → 02/03): si no coincide con lo
	// ingresado, la fecha no existe en el calendario.
	if fecha.Day() != dia || int(fecha.Month()) != mes || fecha.Year() != anio {
		return time.Time{}, ErrFechaInvalida
	}
	if fecha.After(ahora) {
		return time.Time{}, ErrFechaFutura
	}
	return fecha, nil
}

// FormatearFecha presenta una fecha calendario como DD/MM/AAAA.
func FormatearFecha(t time.Time) string {
	return t.Format("02/01/2006")
}
