package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
)

// Asegura que VerificacionRepo implementa repository.VerificacionRepository.
var _ repository.VerificacionRepository = (*VerificacionRepo)(nil)

// VerificacionRepo implementación del puerto VerificacionRepository sobre
// PostgreSQL. El código OTP solo se persiste como hash bcrypt.
type VerificacionRepo struct {
	pool *pgxpool.Pool
}

// NewVerificacionRepository construye el adaptador de persistencia para
// sesiones de verificación de teléfono.
func NewVerificacionRepository(pool *pgxpool.Pool) *VerificacionRepo {
	return &VerificacionRepo{pool: pool}
}

// Create persiste una nueva sesión de verificación.
func (r *VerificacionRepo) Create(ctx context.Context, v *entity.VerificacionTelefono) error {
	query := `
		INSERT INTO verificaciones_telefono
			(id, telefono, codigo_hash, auth_user_id, intentos, verificado, expira_en, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		v.ID, v.Telefono, v.CodigoHash, v.AuthUserID,
		v.Intentos, v.Verificado, v.ExpiraEn, v.CreadoEn,
	)
	if err != nil {
		return fmt.Errorf("insert verificacion: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión de verificación por ID.
func (r *VerificacionRepo) GetByID(ctx context.Context, id string) (*entity.VerificacionTelefono, error) {
	query := `
		SELECT id, telefono, codigo_hash, auth_user_id, intentos, verificado, expira_en, creado_en
		FROM verificaciones_telefono WHERE id = $1`
	var v entity.VerificacionTelefono
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Telefono, &v.CodigoHash, &v.AuthUserID,
		&v.Intentos, &v.Verificado, &v.ExpiraEn, &v.CreadoEn,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get verificacion: %w", err)
	}
	return &v, nil
}

// Update actualiza intentos y bandera de verificado.
func (r *VerificacionRepo) Update(ctx context.Context, v *entity.VerificacionTelefono) error {
	query := `
		UPDATE verificaciones_telefono SET intentos = $2, verificado = $3
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, v.ID, v.Intentos, v.Verificado)
	if err != nil {
		return fmt.Errorf("update verificacion: %w", err)
	}
	return nil
}

// AuthUserIDByTelefono devuelve la identidad de la última verificación
// exitosa del teléfono, o cadena vacía si el número nunca se verificó.
func (r *VerificacionRepo) AuthUserIDByTelefono(ctx context.Context, telefono string) (string, error) {
	query := `
		SELECT auth_user_id FROM verificaciones_telefono
		WHERE telefono = $1 AND verificado
		ORDER BY creado_en DESC LIMIT 1`
	var authUserID string
	err := r.pool.QueryRow(ctx, query, telefono).Scan(&authUserID)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("get auth_user_id by telefono: %w", err)
	}
	return authUserID, nil
}

// DeletePendientesByTelefono invalida toda verificación pendiente del
// teléfono. La ausencia de filas no es un error.
func (r *VerificacionRepo) DeletePendientesByTelefono(ctx context.Context, telefono string) error {
	query := `DELETE FROM verificaciones_telefono WHERE telefono = $1 AND NOT verificado`
	if _, err := r.pool.Exec(ctx, query, telefono); err != nil {
		return fmt.Errorf("delete verificaciones pendientes: %w", err)
	}
	return nil
}
