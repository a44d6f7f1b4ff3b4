package repository

import (
	"context"

	"github.com/sosmedical/clubsos-api/internal/domain/entity"
)

// MiembroRepository define el puerto de persistencia para Miembro (DIP).
type MiembroRepository interface {
	Create(ctx context.Context, m *entity.Miembro) error
	GetByID(ctx context.Context, id string) (*entity.Miembro, error)
	// GetByAuthUserID devuelve nil sin error cuando la identidad todavía no
	// tiene miembro (puerta de sesión y reanudación del onboarding).
	GetByAuthUserID(ctx context.Context, authUserID string) (*entity.Miembro, error)
	GetByCorreo(ctx context.Context, correo string) (*entity.Miembro, error)
	// BuscarTitulares lista los titulares de la empresa que coinciden
	// exactamente en nombre y documento normalizado (0..N resultados; el caso
	// de uso decide cómo tratar 0, 1 o más).
	BuscarTitulares(ctx context.Context, empresaID, nombreCompleto, documento string) ([]*entity.Miembro, error)
	// ListByTitular lista los dependientes vinculados a un titular.
	ListByTitular(ctx context.Context, titularMiembroID string) ([]*entity.Miembro, error)
	Update(ctx context.Context, m *entity.Miembro) error
}
