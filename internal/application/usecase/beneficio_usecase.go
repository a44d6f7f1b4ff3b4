package usecase

import (
	"context"

	"github.com/sosmedical/clubsos-api/internal/application/dto"
	"github.com/sosmedical/clubsos-api/internal/domain"
	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
)

// BeneficioUseCase aplica reglas de negocio para el catálogo de beneficios.
type BeneficioUseCase struct {
	beneficioRepo repository.BeneficioRepository
	miembroRepo   repository.MiembroRepository
}

// NewBeneficioUseCase construye el caso de uso con sus puertos de persistencia.
func NewBeneficioUseCase(beneficioRepo repository.BeneficioRepository, miembroRepo repository.MiembroRepository) *BeneficioUseCase {
	return &BeneficioUseCase{beneficioRepo: beneficioRepo, miembroRepo: miembroRepo}
}

// ListarParaMiembro lista los beneficios del pool de la empresa del miembro
// autenticado más los globales. Solo miembros activos ven el catálogo.
func (uc *BeneficioUseCase) ListarParaMiembro(ctx context.Context, authUserID string) (*dto.BeneficioListResponse, error) {
	miembro, err := uc.miembroRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if miembro == nil {
		return nil, domain.ErrMiembroNotFound
	}
	if !miembro.Activo {
		return nil, domain.ErrForbidden
	}
	list, err := uc.beneficioRepo.ListByEmpresa(ctx, miembro.EmpresaID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BeneficioResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *entityToBeneficioResponse(b))
	}
	return &dto.BeneficioListResponse{Items: items}, nil
}

func entityToBeneficioResponse(b *entity.Beneficio) *dto.BeneficioResponse {
	if b == nil {
		return nil
	}
	return &dto.BeneficioResponse{
		ID:          b.ID,
		Titulo:      b.Titulo,
		Descripcion: b.Descripcion,
		Categoria:   b.Categoria,
		Descuento:   b.Descuento,
		Global:      b.EmpresaID == nil,
	}
}
