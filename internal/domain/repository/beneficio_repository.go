package repository

import (
	"context"

	"github.com/sosmedical/clubsos-api/internal/domain/entity"
)

// BeneficioRepository define el puerto de persistencia para Beneficio (DIP).
type BeneficioRepository interface {
	// ListByEmpresa lista los beneficios activos de la empresa más los
	// globales (EmpresaID nulo).
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Beneficio, error)
}
