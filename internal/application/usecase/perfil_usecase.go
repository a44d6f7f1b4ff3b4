package usecase

import (
	"context"

	"github.com/sosmedical/clubsos-api/internal/application/dto"
	"github.com/sosmedical/clubsos-api/internal/domain"
	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/internal/domain/forms"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
)

// PerfilUseCase aplica reglas de negocio para el perfil del miembro
// autenticado y su grupo familiar.
type PerfilUseCase struct {
	miembroRepo repository.MiembroRepository
	empresaRepo repository.EmpresaRepository

	ahora nowFunc
}

// NewPerfilUseCase construye el caso de uso con sus puertos de persistencia.
func NewPerfilUseCase(miembroRepo repository.MiembroRepository, empresaRepo repository.EmpresaRepository) *PerfilUseCase {
	return &PerfilUseCase{miembroRepo: miembroRepo, empresaRepo: empresaRepo, ahora: defaultNow}
}

// Obtener devuelve el perfil del miembro autenticado.
func (uc *PerfilUseCase) Obtener(ctx context.Context, authUserID string) (*dto.MiembroResponse, error) {
	miembro, err := uc.miembroRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if miembro == nil {
		return nil, domain.ErrMiembroNotFound
	}
	return entityToMiembroResponse(miembro), nil
}

// Actualizar modifica los datos de contacto editables por el propio miembro.
// Parentesco, empresa y la bandera activo nunca son escribibles desde el
// cliente. SinCorreo borra el correo de forma explícita.
func (uc *PerfilUseCase) Actualizar(ctx context.Context, authUserID string, in dto.ActualizarPerfilRequest) (*dto.MiembroResponse, error) {
	miembro, err := uc.miembroRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if miembro == nil {
		return nil, domain.ErrMiembroNotFound
	}

	if in.SinCorreo {
		miembro.Correo = nil
	} else if in.Correo != nil {
		c := forms.NormalizarCorreo(*in.Correo)
		if c == "" || !forms.CorreoValido(c) {
			return nil, domain.ErrInvalidInput
		}
		existente, err := uc.miembroRepo.GetByCorreo(ctx, c)
		if err != nil {
			return nil, err
		}
		if existente != nil && existente.ID != miembro.ID {
			return nil, domain.ErrCorreoRegistrado
		}
		miembro.Correo = &c
	}

	miembro.UpdatedAt = uc.ahora()
	if err := uc.miembroRepo.Update(ctx, miembro); err != nil {
		return nil, err
	}
	return entityToMiembroResponse(miembro), nil
}

// Parientes lista el grupo familiar visible para el miembro autenticado: los
// dependientes vinculados si es titular, o el resto del grupo de su titular.
func (uc *PerfilUseCase) Parientes(ctx context.Context, authUserID string) ([]dto.MiembroResponse, error) {
	miembro, err := uc.miembroRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if miembro == nil {
		return nil, domain.ErrMiembroNotFound
	}

	var grupo []*entity.Miembro
	if miembro.EsTitular() {
		grupo, err = uc.miembroRepo.ListByTitular(ctx, miembro.ID)
	} else if miembro.TitularMiembroID != nil {
		grupo, err = uc.miembroRepo.ListByTitular(ctx, *miembro.TitularMiembroID)
		if err == nil {
			titular, errT := uc.miembroRepo.GetByID(ctx, *miembro.TitularMiembroID)
			if errT == nil && titular != nil {
				grupo = append([]*entity.Miembro{titular}, grupo...)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.MiembroResponse, 0, len(grupo))
	for _, m := range grupo {
		if m.ID == miembro.ID {
			continue
		}
		items = append(items, *entityToMiembroResponse(m))
	}
	return items, nil
}

// Empresa devuelve la empresa a la que pertenece el miembro autenticado. El
// id solicitado debe coincidir con su vinculación.
func (uc *PerfilUseCase) Empresa(ctx context.Context, authUserID, empresaID string) (*dto.EmpresaResponse, error) {
	miembro, err := uc.miembroRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if miembro == nil {
		return nil, domain.ErrMiembroNotFound
	}
	if miembro.EmpresaID != empresaID {
		return nil, domain.ErrForbidden
	}

	empresa, err := uc.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrEmpresaNotFound
	}
	return &dto.EmpresaResponse{
		ID:     empresa.ID,
		Codigo: empresa.Codigo,
		Nombre: empresa.Nombre,
		Estado: empresa.Estado,
	}, nil
}

func entityToMiembroResponse(m *entity.Miembro) *dto.MiembroResponse {
	if m == nil {
		return nil
	}
	return &dto.MiembroResponse{
		ID:                 m.ID,
		EmpresaID:          m.EmpresaID,
		Parentesco:         m.Parentesco,
		NombreCompleto:     m.NombreCompleto,
		DocumentoIdentidad: m.DocumentoIdentidad,
		FechaNacimiento:    forms.FormatearFecha(m.FechaNacimiento),
		Sexo:               m.Sexo,
		Telefono:           m.Telefono,
		Correo:             m.Correo,
		TitularMiembroID:   m.TitularMiembroID,
		Activo:             m.Activo,
		CreatedAt:          m.CreatedAt,
	}
}
