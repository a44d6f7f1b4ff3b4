package repository

import (
	"context"

	"github.com/sosmedical/clubsos-api/internal/domain/entity"
)

// VerificacionRepository define el puerto de persistencia para las sesiones
// de verificación de teléfono por OTP.
type VerificacionRepository interface {
	Create(ctx context.Context, v *entity.VerificacionTelefono) error
	GetByID(ctx context.Context, id string) (*entity.VerificacionTelefono, error)
	Update(ctx context.Context, v *entity.VerificacionTelefono) error
	// AuthUserIDByTelefono devuelve la identidad de la última verificación
	// exitosa del teléfono, o cadena vacía si nunca se verificó. Permite que
	// un usuario recurrente conserve la misma identidad entre sesiones.
	AuthUserIDByTelefono(ctx context.Context, telefono string) (string, error)
	// DeletePendientesByTelefono invalida toda verificación pendiente del
	// teléfono antes de iniciar una nueva (se ignora la ausencia).
	DeletePendientesByTelefono(ctx context.Context, telefono string) error
}
