package repository

import (
	"context"

	"github.com/sosmedical/clubsos-api/internal/domain/entity"
)

// EmpresaRepository define el puerto de persistencia para Empresa (DIP).
type EmpresaRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	// GetByCodigo busca por código exacto ya normalizado. Devuelve nil sin
	// error cuando no hay coincidencia.
	GetByCodigo(ctx context.Context, codigo string) (*entity.Empresa, error)
}
