package onboarding

import (
	"context"

	"github.com/sosmedical/clubsos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la creación del miembro y la
// limpieza del estado del asistente sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		miembroRepo repository.MiembroRepository,
		estadoRepo repository.OnboardingRepository,
	) error) error
}
