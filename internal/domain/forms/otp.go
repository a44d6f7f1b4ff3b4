package forms

// LongitudOTP celdas del código de verificación.
const LongitudOTP = 6

// CamposOTP modela las 6 celdas independientes de un solo carácter del
// ingreso de código, con avance automático al escribir y retroceso con
// borrado al presionar backspace sobre una celda vacía.
type CamposOTP struct {
	Celdas [LongitudOTP]string
	Foco   int
}

// NuevosCamposOTP devuelve las celdas vacías con el foco en la primera.
func NuevosCamposOTP() CamposOTP {
	return CamposOTP{}
}

// Escribir procesa la entrada sobre la celda enfocada. Una cadena de varios
// caracteres (pegado) se distribuye desde el índice enfocado, descartando los
// no numéricos y recortando al total de celdas.
func (c CamposOTP) Escribir(texto string) CamposOTP {
	digitos := SoloDigitos(texto)
	if digitos == "" {
		c.Celdas[c.Foco] = ""
		return c
	}
	if len(digitos) > LongitudOTP {
		digitos = digitos[:LongitudOTP]
	}
	if len(digitos) > 1 {
		for i := 0; i < len(digitos) && c.Foco+i < LongitudOTP; i++ {
			c.Celdas[c.Foco+i] = string(digitos[i])
		}
		c.Foco = min(c.Foco+len(digitos), LongitudOTP-1)
		return c
	}
	c.Celdas[c.Foco] = digitos
	if c.Foco < LongitudOTP-1 {
		c.Foco++
	}
	return c
}

// Retroceder procesa backspace: sobre una celda vacía retrocede el foco y
// limpia la celda anterior; sobre una celda con dígito solo la limpia.
func (c CamposOTP) Retroceder() CamposOTP {
	if c.Celdas[c.Foco] == "" && c.Foco > 0 {
		c.Foco--
	}
	c.Celdas[c.Foco] = ""
	return c
}

// Limpiar vacía todas las celdas y devuelve el foco a la primera. Se usa tras
// un código rechazado: los dígitos se descartan pero el teléfono y la sesión
// de verificación se conservan para reintentar sin reenviar.
func (c CamposOTP) Limpiar() CamposOTP {
	return CamposOTP{}
}

// Codigo devuelve el código concatenado y si las 6 celdas están completas.
func (c CamposOTP) Codigo() (string, bool) {
	var s string
	for _, d := range c.Celdas {
		s += d
	}
	return s, len(s) == LongitudOTP
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
