package repository

import (
	"context"

	"github.com/sosmedical/clubsos-api/internal/domain/entity"
)

// OnboardingRepository define el puerto de persistencia para el estado del
// asistente de onboarding (un registro por identidad autenticada).
type OnboardingRepository interface {
	// Get devuelve nil sin error cuando no hay estado guardado. Un estado con
	// versión de esquema distinta a la actual se trata como inexistente.
	Get(ctx context.Context, authUserID string) (*entity.EstadoOnboarding, error)
	Save(ctx context.Context, e *entity.EstadoOnboarding) error
	Delete(ctx context.Context, authUserID string) error
}
