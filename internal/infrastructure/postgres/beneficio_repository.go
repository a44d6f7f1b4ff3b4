package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
)

// Asegura que BeneficioRepo implementa repository.BeneficioRepository.
var _ repository.BeneficioRepository = (*BeneficioRepo)(nil)

// BeneficioRepo implementación del puerto BeneficioRepository sobre PostgreSQL.
type BeneficioRepo struct {
	pool *pgxpool.Pool
}

// NewBeneficioRepository construye el adaptador de persistencia para beneficios.
func NewBeneficioRepository(pool *pgxpool.Pool) *BeneficioRepo {
	return &BeneficioRepo{pool: pool}
}

// ListByEmpresa lista los beneficios activos del pool de la empresa más los
// globales (empresa_id nulo). El descuento NUMERIC se escanea directo a
// decimal.Decimal vía el codec registrado en el pool.
func (r *BeneficioRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Beneficio, error) {
	query := `
		SELECT id, empresa_id, titulo, descripcion, categoria, descuento, activo, created_at, updated_at
		FROM beneficios
		WHERE activo AND (empresa_id = $1 OR empresa_id IS NULL)
		ORDER BY empresa_id NULLS LAST, categoria, titulo`
	rows, err := r.pool.Query(ctx, query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list beneficios: %w", err)
	}
	defer rows.Close()

	var list []*entity.Beneficio
	for rows.Next() {
		var b entity.Beneficio
		if err := rows.Scan(&b.ID, &b.EmpresaID, &b.Titulo, &b.Descripcion, &b.Categoria,
			&b.Descuento, &b.Activo, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan beneficio: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
