package entity

import "time"

// LongitudCodigoOTP dígitos del código de verificación enviado por SMS.
const LongitudCodigoOTP = 6

// VerificacionTelefono es una sesión de verificación de teléfono por OTP.
// El código nunca se almacena en claro: solo su hash bcrypt.
type VerificacionTelefono struct {
	ID         string // id de sesión de verificación que recibe el cliente
	Telefono   string // E.164
	CodigoHash string
	AuthUserID string // identidad que quedará autenticada al verificar
	Intentos   int
	Verificado bool
	ExpiraEn   time.Time
	CreadoEn   time.Time
}

// Expirada indica si la sesión de verificación ya no acepta códigos.
func (v *VerificacionTelefono) Expirada(ahora time.Time) bool {
	return ahora.After(v.ExpiraEn)
}

// CooldownRestante devuelve los segundos que faltan para poder reenviar el
// código, o 0 si el cooldown ya venció.
func (v *VerificacionTelefono) CooldownRestante(ahora time.Time, cooldown time.Duration) int {
	fin := v.CreadoEn.Add(cooldown)
	if !ahora.Before(fin) {
		return 0
	}
	return int(fin.Sub(ahora).Round(time.Second).Seconds())
}
