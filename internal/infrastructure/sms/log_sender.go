package sms

import (
	"context"

	"github.com/sosmedical/clubsos-api/internal/application/ports"
	"github.com/sosmedical/clubsos-api/pkg/logger"
)

// Verificar en tiempo de compilación que LogSender implementa SMSSender.
var _ ports.SMSSender = (*LogSender)(nil)

// LogSender escribe el SMS en el log en lugar de enviarlo. Para desarrollo
// local sin gateway (el código OTP aparece en consola).
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el emisor de consola.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

// Enviar registra el mensaje sin despacharlo.
func (s *LogSender) Enviar(_ context.Context, telefonoE164, mensaje string) error {
	s.log.Info().Str("telefono", telefonoE164).Str("mensaje", mensaje).Msg("SMS simulado")
	return nil
}
