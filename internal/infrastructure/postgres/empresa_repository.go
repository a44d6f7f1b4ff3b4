package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
)

// Asegura que EmpresaRepo implementa repository.EmpresaRepository.
var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación del puerto EmpresaRepository sobre PostgreSQL.
type EmpresaRepo struct {
	pool *pgxpool.Pool
}

// NewEmpresaRepository construye el adaptador de persistencia para empresas.
func NewEmpresaRepository(pool *pgxpool.Pool) *EmpresaRepo {
	return &EmpresaRepo{pool: pool}
}

// GetByID obtiene una empresa por ID.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	query := `
		SELECT id, codigo, nombre, estado, created_at, updated_at
		FROM empresas WHERE id = $1`
	var e entity.Empresa
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Codigo, &e.Nombre, &e.Estado, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}

// GetByCodigo obtiene una empresa por su código ya normalizado. El código se
// almacena normalizado, así que la comparación es por igualdad exacta.
func (r *EmpresaRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Empresa, error) {
	query := `
		SELECT id, codigo, nombre, estado, created_at, updated_at
		FROM empresas WHERE codigo = $1`
	var e entity.Empresa
	err := r.pool.QueryRow(ctx, query, codigo).Scan(
		&e.ID, &e.Codigo, &e.Nombre, &e.Estado, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa by codigo: %w", err)
	}
	return &e, nil
}
