package postgres

import (
	"context"
	"fmt"

	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
)

// Asegura que OnboardingRepo implementa repository.OnboardingRepository.
var _ repository.OnboardingRepository = (*OnboardingRepo)(nil)

// OnboardingRepo implementación del puerto OnboardingRepository sobre
// PostgreSQL. Un registro por identidad; el borrador va en JSONB.
type OnboardingRepo struct {
	q Querier
}

// NewOnboardingRepository construye el adaptador de persistencia para el
// estado del asistente de onboarding. Pasar pool o tx (Querier).
func NewOnboardingRepository(q Querier) *OnboardingRepo {
	return &OnboardingRepo{q: q}
}

// Get obtiene el estado del asistente. Un estado persistido con una versión
// de esquema distinta a la actual se trata como inexistente: rehidratar
// campos incompatibles es peor que reiniciar el asistente.
func (r *OnboardingRepo) Get(ctx context.Context, authUserID string) (*entity.EstadoOnboarding, error) {
	query := `
		SELECT auth_user_id, version, paso, telefono, empresa_id, empresa_nombre,
		       parentesco, titular_miembro_id, titular_nombre, titular_documento,
		       borrador, actualizado_en
		FROM onboarding_estados WHERE auth_user_id = $1`
	var e entity.EstadoOnboarding
	err := r.q.QueryRow(ctx, query, authUserID).Scan(
		&e.AuthUserID, &e.Version, &e.Paso, &e.Telefono, &e.EmpresaID, &e.EmpresaNombre,
		&e.Parentesco, &e.TitularMiembroID, &e.TitularNombre, &e.TitularDocumento,
		&e.Borrador, &e.ActualizadoEn,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estado onboarding: %w", err)
	}
	if e.Version != entity.VersionEstadoOnboarding {
		return nil, nil
	}
	return &e, nil
}

// Save inserta o reemplaza el estado del asistente (upsert por identidad).
func (r *OnboardingRepo) Save(ctx context.Context, e *entity.EstadoOnboarding) error {
	query := `
		INSERT INTO onboarding_estados
			(auth_user_id, version, paso, telefono, empresa_id, empresa_nombre,
			 parentesco, titular_miembro_id, titular_nombre, titular_documento,
			 borrador, actualizado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (auth_user_id) DO UPDATE SET
			version = EXCLUDED.version,
			paso = EXCLUDED.paso,
			telefono = EXCLUDED.telefono,
			empresa_id = EXCLUDED.empresa_id,
			empresa_nombre = EXCLUDED.empresa_nombre,
			parentesco = EXCLUDED.parentesco,
			titular_miembro_id = EXCLUDED.titular_miembro_id,
			titular_nombre = EXCLUDED.titular_nombre,
			titular_documento = EXCLUDED.titular_documento,
			borrador = EXCLUDED.borrador,
			actualizado_en = EXCLUDED.actualizado_en`
	_, err := r.q.Exec(ctx, query,
		e.AuthUserID, e.Version, e.Paso, e.Telefono, e.EmpresaID, e.EmpresaNombre,
		e.Parentesco, e.TitularMiembroID, e.TitularNombre, e.TitularDocumento,
		e.Borrador, e.ActualizadoEn,
	)
	if err != nil {
		return fmt.Errorf("save estado onboarding: %w", err)
	}
	return nil
}

// Delete elimina el estado del asistente (al crear el miembro).
func (r *OnboardingRepo) Delete(ctx context.Context, authUserID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM onboarding_estados WHERE auth_user_id = $1`, authUserID); err != nil {
		return fmt.Errorf("delete estado onboarding: %w", err)
	}
	return nil
}
