package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosmedical/clubsos-api/internal/application/dto"
	"github.com/sosmedical/clubsos-api/internal/domain"
	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/internal/domain/forms"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
	"github.com/sosmedical/clubsos-api/pkg/logger"
)

var ahoraFija = time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

// ---- fakes en memoria ----

type estadoRepoFake struct {
	estados map[string]*entity.EstadoOnboarding
	saveErr error
}

func nuevoEstadoRepoFake() *estadoRepoFake {
	return &estadoRepoFake{estados: map[string]*entity.EstadoOnboarding{}}
}

func (f *estadoRepoFake) Get(_ context.Context, authUserID string) (*entity.EstadoOnboarding, error) {
	return f.estados[authUserID], nil
}

func (f *estadoRepoFake) Save(_ context.Context, e *entity.EstadoOnboarding) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.estados[e.AuthUserID] = e
	return nil
}

func (f *estadoRepoFake) Delete(_ context.Context, authUserID string) error {
	delete(f.estados, authUserID)
	return nil
}

type empresaRepoFake struct {
	empresas []*entity.Empresa
}

func (f *empresaRepoFake) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	for _, e := range f.empresas {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *empresaRepoFake) GetByCodigo(_ context.Context, codigo string) (*entity.Empresa, error) {
	for _, e := range f.empresas {
		if e.Codigo == codigo {
			return e, nil
		}
	}
	return nil, nil
}

type miembroRepoFake struct {
	miembros  []*entity.Miembro
	createErr error
}

func (f *miembroRepoFake) Create(_ context.Context, m *entity.Miembro) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, e := range f.miembros {
		if e.AuthUserID == m.AuthUserID {
			return domain.ErrMiembroYaExiste
		}
	}
	f.miembros = append(f.miembros, m)
	return nil
}

func (f *miembroRepoFake) GetByID(_ context.Context, id string) (*entity.Miembro, error) {
	for _, m := range f.miembros {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *miembroRepoFake) GetByAuthUserID(_ context.Context, authUserID string) (*entity.Miembro, error) {
	for _, m := range f.miembros {
		if m.AuthUserID == authUserID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *miembroRepoFake) GetByCorreo(_ context.Context, correo string) (*entity.Miembro, error) {
	for _, m := range f.miembros {
		if m.Correo != nil && *m.Correo == correo {
			return m, nil
		}
	}
	return nil, nil
}

func (f *miembroRepoFake) BuscarTitulares(_ context.Context, empresaID, nombre, documento string) ([]*entity.Miembro, error) {
	var res []*entity.Miembro
	for _, m := range f.miembros {
		if m.EsTitular() && m.EmpresaID == empresaID &&
			m.NombreCompleto == nombre && forms.NormalizarDocumento(m.DocumentoIdentidad) == documento {
			res = append(res, m)
		}
	}
	return res, nil
}

func (f *miembroRepoFake) ListByTitular(_ context.Context, titularID string) ([]*entity.Miembro, error) {
	var res []*entity.Miembro
	for _, m := range f.miembros {
		if m.TitularMiembroID != nil && *m.TitularMiembroID == titularID {
			res = append(res, m)
		}
	}
	return res, nil
}

func (f *miembroRepoFake) Update(_ context.Context, m *entity.Miembro) error {
	for i, e := range f.miembros {
		if e.ID == m.ID {
			f.miembros[i] = m
			return nil
		}
	}
	return domain.ErrMiembroNotFound
}

// txRunnerFake ejecuta el callback sin transacción real, con los mismos fakes.
type txRunnerFake struct {
	miembros *miembroRepoFake
	estados  *estadoRepoFake
}

func (f *txRunnerFake) Run(_ context.Context, fn func(
	miembroRepo repository.MiembroRepository,
	estadoRepo repository.OnboardingRepository,
) error) error {
	return fn(f.miembros, f.estados)
}

type entorno struct {
	uc       *OnboardingUseCase
	estados  *estadoRepoFake
	empresas *empresaRepoFake
	miembros *miembroRepoFake
}

func nuevoEntorno() *entorno {
	estados := nuevoEstadoRepoFake()
	empresas := &empresaRepoFake{empresas: []*entity.Empresa{
		{ID: "emp-1", Codigo: "ACME2024", Nombre: "ACME S.A.", Estado: entity.EstadoActivo},
		{ID: "emp-2", Codigo: "SUSP", Nombre: "Suspendida S.A.", Estado: entity.EstadoSuspendido},
	}}
	miembros := &miembroRepoFake{}
	tx := &txRunnerFake{miembros: miembros, estados: estados}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := NewOnboardingUseCase(estados, empresas, miembros, tx, log)
	uc.ahora = func() time.Time { return ahoraFija }
	return &entorno{uc: uc, estados: estados, empresas: empresas, miembros: miembros}
}

func (e *entorno) conEstado(authUserID, telefono string) *entity.EstadoOnboarding {
	estado := entity.NuevoEstadoOnboarding(authUserID, telefono, ahoraFija)
	e.estados.estados[authUserID] = estado
	return estado
}

func (e *entorno) conTitular(id, empresaID, nombre, documento string) *entity.Miembro {
	t := &entity.Miembro{
		ID:                 id,
		EmpresaID:          empresaID,
		AuthUserID:         "auth-" + id,
		Parentesco:         entity.ParentescoTitular,
		NombreCompleto:     nombre,
		DocumentoIdentidad: documento,
		Rol:                entity.RolMiembro,
		Activo:             true,
	}
	e.miembros.miembros = append(e.miembros.miembros, t)
	return t
}

// ---- validar y confirmar empresa ----

func TestValidarEmpresa(t *testing.T) {
	env := nuevoEntorno()
	ctx := context.Background()

	t.Run("normaliza el código antes de buscar", func(t *testing.T) {
		resp, err := env.uc.ValidarEmpresa(ctx, dto.ValidarEmpresaRequest{Codigo: "  acme2024  "})
		require.NoError(t, err)
		assert.Equal(t, "emp-1", resp.EmpresaID)
		assert.Equal(t, "ACME S.A.", resp.Nombre)
	})

	t.Run("código inexistente", func(t *testing.T) {
		_, err := env.uc.ValidarEmpresa(ctx, dto.ValidarEmpresaRequest{Codigo: "NOEXISTE"})
		assert.ErrorIs(t, err, domain.ErrEmpresaNotFound)
	})

	t.Run("empresa suspendida se rechaza sin ofrecer confirmación", func(t *testing.T) {
		_, err := env.uc.ValidarEmpresa(ctx, dto.ValidarEmpresaRequest{Codigo: "susp"})
		assert.ErrorIs(t, err, domain.ErrEmpresaNoDisponible)
	})

	t.Run("código vacío", func(t *testing.T) {
		_, err := env.uc.ValidarEmpresa(ctx, dto.ValidarEmpresaRequest{Codigo: "   "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("validar no compromete la vinculación", func(t *testing.T) {
		assert.Empty(t, env.estados.estados)
	})
}

func TestConfirmarEmpresa(t *testing.T) {
	env := nuevoEntorno()
	ctx := context.Background()
	env.conEstado("auth-1", "+50588887777")

	resp, err := env.uc.ConfirmarEmpresa(ctx, "auth-1", dto.ConfirmarEmpresaRequest{EmpresaID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.PasoParentesco, resp.Paso)
	assert.Equal(t, "emp-1", resp.EmpresaID)
	assert.Equal(t, "ACME S.A.", resp.EmpresaNombre)

	t.Run("el estado de la empresa se revalida al confirmar", func(t *testing.T) {
		_, err := env.uc.ConfirmarEmpresa(ctx, "auth-1", dto.ConfirmarEmpresaRequest{EmpresaID: "emp-2"})
		assert.ErrorIs(t, err, domain.ErrEmpresaNoDisponible)
	})

	t.Run("fallo al persistir bloquea la transición", func(t *testing.T) {
		env.estados.saveErr = errors.New("sin conexión")
		_, err := env.uc.ConfirmarEmpresa(ctx, "auth-1", dto.ConfirmarEmpresaRequest{EmpresaID: "emp-1"})
		assert.Error(t, err)
		env.estados.saveErr = nil
	})
}

// ---- parentesco y titular ----

func TestSeleccionarParentesco(t *testing.T) {
	env := nuevoEntorno()
	ctx := context.Background()
	estado := env.conEstado("auth-1", "+50588887777")
	estado.ConfirmarEmpresa("emp-1", "ACME S.A.", ahoraFija)

	t.Run("titular salta la vinculación", func(t *testing.T) {
		resp, err := env.uc.SeleccionarParentesco(ctx, "auth-1", dto.ParentescoRequest{Parentesco: entity.ParentescoTitular})
		require.NoError(t, err)
		assert.Equal(t, entity.PasoDatos, resp.Paso)
	})

	t.Run("dependiente pasa por la vinculación de titular", func(t *testing.T) {
		resp, err := env.uc.SeleccionarParentesco(ctx, "auth-1", dto.ParentescoRequest{Parentesco: entity.ParentescoHijo})
		require.NoError(t, err)
		assert.Equal(t, entity.PasoTitular, resp.Paso)
	})

	t.Run("parentesco fuera del catálogo", func(t *testing.T) {
		_, err := env.uc.SeleccionarParentesco(ctx, "auth-1", dto.ParentescoRequest{Parentesco: "primo"})
		assert.ErrorIs(t, err, domain.ErrParentescoInvalido)
	})

	t.Run("sin empresa confirmada", func(t *testing.T) {
		env.conEstado("auth-2", "+50511112222")
		_, err := env.uc.SeleccionarParentesco(ctx, "auth-2", dto.ParentescoRequest{Parentesco: entity.ParentescoHijo})
		assert.ErrorIs(t, err, domain.ErrEmpresaSinConfirmar)
	})
}

func TestBuscarTitular(t *testing.T) {
	env := nuevoEntorno()
	ctx := context.Background()
	env.conTitular("tit-1", "emp-1", "MARIA LOPEZ", "0011234567890A")

	estado := env.conEstado("auth-1", "+50588887777")
	estado.ConfirmarEmpresa("emp-1", "ACME S.A.", ahoraFija)
	require.NoError(t, estado.SeleccionarParentesco(entity.ParentescoHijo, ahoraFija))

	t.Run("una coincidencia exacta con documento normalizado", func(t *testing.T) {
		resp, err := env.uc.BuscarTitular(ctx, "auth-1", dto.BuscarTitularRequest{
			NombreCompleto:     "MARIA LOPEZ",
			DocumentoIdentidad: "001-123456-7890a",
		})
		require.NoError(t, err)
		assert.Equal(t, "tit-1", resp.MiembroID)
		assert.Equal(t, "ACME S.A.", resp.EmpresaNombre)
	})

	t.Run("cero coincidencias", func(t *testing.T) {
		_, err := env.uc.BuscarTitular(ctx, "auth-1", dto.BuscarTitularRequest{
			NombreCompleto:     "PEDRO PEREZ",
			DocumentoIdentidad: "001-123456-7890A",
		})
		assert.ErrorIs(t, err, domain.ErrTitularNoEncontrado)
	})

	t.Run("múltiples coincidencias nunca se resuelven solas", func(t *testing.T) {
		env.conTitular("tit-2", "emp-1", "MARIA LOPEZ", "0011234567890A")
		_, err := env.uc.BuscarTitular(ctx, "auth-1", dto.BuscarTitularRequest{
			NombreCompleto:     "MARIA LOPEZ",
			DocumentoIdentidad: "0011234567890A",
		})
		assert.ErrorIs(t, err, domain.ErrTitularAmbiguo)
	})

	t.Run("ambos campos son obligatorios", func(t *testing.T) {
		_, err := env.uc.BuscarTitular(ctx, "auth-1", dto.BuscarTitularRequest{NombreCompleto: "MARIA LOPEZ"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("no aplica para parentesco titular", func(t *testing.T) {
		otro := env.conEstado("auth-3", "+50533334444")
		otro.ConfirmarEmpresa("emp-1", "ACME S.A.", ahoraFija)
		require.NoError(t, otro.SeleccionarParentesco(entity.ParentescoTitular, ahoraFija))
		_, err := env.uc.BuscarTitular(ctx, "auth-3", dto.BuscarTitularRequest{
			NombreCompleto:     "MARIA LOPEZ",
			DocumentoIdentidad: "0011234567890A",
		})
		assert.ErrorIs(t, err, domain.ErrPasoTitularNoAplica)
	})
}

func TestConfirmarTitular(t *testing.T) {
	env := nuevoEntorno()
	ctx := context.Background()
	env.conTitular("tit-1", "emp-1", "MARIA LOPEZ", "0011234567890A")
	env.conTitular("tit-otro", "emp-2", "JUAN RUIZ", "1234567890")

	estado := env.conEstado("auth-1", "+50588887777")
	estado.ConfirmarEmpresa("emp-1", "ACME S.A.", ahoraFija)
	require.NoError(t, estado.SeleccionarParentesco(entity.ParentescoConyuge, ahoraFija))

	t.Run("confirma y avanza a datos con snapshots", func(t *testing.T) {
		resp, err := env.uc.ConfirmarTitular(ctx, "auth-1", dto.ConfirmarTitularRequest{MiembroID: "tit-1"})
		require.NoError(t, err)
		assert.Equal(t, entity.PasoDatos, resp.Paso)
		assert.Equal(t, "tit-1", resp.TitularMiembroID)
		assert.Equal(t, "MARIA LOPEZ", resp.TitularNombre)
	})

	t.Run("titular de otra empresa se rechaza", func(t *testing.T) {
		_, err := env.uc.ConfirmarTitular(ctx, "auth-1", dto.ConfirmarTitularRequest{MiembroID: "tit-otro"})
		assert.ErrorIs(t, err, domain.ErrTitularNoEncontrado)
	})
}

// ---- borrador de datos personales ----

func estadoEnDatos(env *entorno, authUserID string) *entity.EstadoOnboarding {
	estado := env.conEstado(authUserID, "+50588887777")
	estado.ConfirmarEmpresa("emp-1", "ACME S.A.", ahoraFija)
	_ = estado.SeleccionarParentesco(entity.ParentescoTitular, ahoraFija)
	return estado
}

func TestGuardarBorrador(t *testing.T) {
	env := nuevoEntorno()
	ctx := context.Background()
	estadoEnDatos(env, "auth-1")

	t.Run("todos los campos inválidos se reportan a la vez", func(t *testing.T) {
		_, err := env.uc.GuardarBorrador(ctx, "auth-1", dto.BorradorRequest{
			FechaNacimiento: "31/02/1990",
			Correo:          "no-es-correo",
		})
		var ev *ErroresValidacion
		require.ErrorAs(t, err, &ev)
		assert.Contains(t, ev.Campos, "nombre_completo")
		assert.Contains(t, ev.Campos, "documento_identidad")
		assert.Equal(t, "Fecha inválida", ev.Campos["fecha_nacimiento"])
		assert.Contains(t, ev.Campos, "sexo")
		assert.Equal(t, "Formato de correo inválido", ev.Campos["correo"])
	})

	t.Run("fecha futura", func(t *testing.T) {
		_, err := env.uc.GuardarBorrador(ctx, "auth-1", dto.BorradorRequest{
			NombreCompleto:     "Ana García",
			DocumentoIdentidad: "001-123456-0000B",
			FechaNacimiento:    "01/01/2030",
			Sexo:               "femenino",
		})
		var ev *ErroresValidacion
		require.ErrorAs(t, err, &ev)
		assert.Equal(t, "La fecha no puede ser futura", ev.Campos["fecha_nacimiento"])
	})

	t.Run("correo de otro miembro se rechaza", func(t *testing.T) {
		correo := "ana@ejemplo.com"
		env.miembros.miembros = append(env.miembros.miembros, &entity.Miembro{
			ID: "m-x", AuthUserID: "auth-otro", Correo: &correo,
		})
		_, err := env.uc.GuardarBorrador(ctx, "auth-1", dto.BorradorRequest{
			NombreCompleto:     "Ana García",
			DocumentoIdentidad: "001-123456-0000B",
			FechaNacimiento:    "15/06/1990",
			Sexo:               "femenino",
			Correo:             "Ana@Ejemplo.com",
		})
		var ev *ErroresValidacion
		require.ErrorAs(t, err, &ev)
		assert.Contains(t, ev.Campos, "correo")
	})

	t.Run("guarda con correo explícitamente ausente", func(t *testing.T) {
		resp, err := env.uc.GuardarBorrador(ctx, "auth-1", dto.BorradorRequest{
			NombreCompleto:     "Ana García",
			DocumentoIdentidad: "001-123456-0000B",
			FechaNacimiento:    "15/06/1990",
			Sexo:               "Femenino",
			SinCorreo:          true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana García", resp.NombreCompleto)
		assert.Equal(t, "15/06/1990", resp.FechaNacimiento)
		assert.Equal(t, "femenino", resp.Sexo)
		assert.Nil(t, resp.Correo)
		assert.True(t, resp.SinCorreo)
		assert.Equal(t, "+50588887777", resp.Telefono)
	})

	t.Run("el teléfono nunca viene del cliente", func(t *testing.T) {
		resp, err := env.uc.Borrador(ctx, "auth-1")
		require.NoError(t, err)
		assert.Equal(t, "+50588887777", resp.Telefono)
	})

	t.Run("guardar de nuevo fusiona sin descartar lo previo", func(t *testing.T) {
		resp, err := env.uc.GuardarBorrador(ctx, "auth-1", dto.BorradorRequest{
			NombreCompleto:     "Ana María García",
			DocumentoIdentidad: "001-123456-0000B",
			FechaNacimiento:    "15/06/1990",
			Sexo:               "femenino",
			Correo:             "ana.garcia@ejemplo.com",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Correo)
		assert.Equal(t, "ana.garcia@ejemplo.com", *resp.Correo)
		assert.False(t, resp.SinCorreo)
	})
}

// ---- finalización y activación ----

func TestFinalizar(t *testing.T) {
	ctx := context.Background()

	t.Run("crea el miembro inactivo y limpia el asistente", func(t *testing.T) {
		env := nuevoEntorno()
		titular := env.conTitular("tit-1", "emp-1", "MARIA LOPEZ", "0011234567890A")

		estado := env.conEstado("auth-1", "+50588887777")
		estado.ConfirmarEmpresa("emp-1", "ACME S.A.", ahoraFija)
		require.NoError(t, estado.SeleccionarParentesco(entity.ParentescoHijo, ahoraFija))
		require.NoError(t, estado.ConfirmarTitular(titular.ID, titular.NombreCompleto, titular.DocumentoIdentidad, ahoraFija))
		_, err := env.uc.GuardarBorrador(ctx, "auth-1", dto.BorradorRequest{
			NombreCompleto:     "Luis López",
			DocumentoIdentidad: "001-999999-0000C",
			FechaNacimiento:    "10/03/2005",
			Sexo:               "masculino",
			SinCorreo:          true,
		})
		require.NoError(t, err)

		resp, err := env.uc.Finalizar(ctx, "auth-1")
		require.NoError(t, err)
		assert.Equal(t, dto.DestinoActivacion, resp.Destino)
		require.NotNil(t, resp.Miembro)
		assert.False(t, resp.Miembro.Activo)
		assert.Equal(t, entity.ParentescoHijo, resp.Miembro.Parentesco)
		assert.Equal(t, "10/03/2005", resp.Miembro.FechaNacimiento)
		require.NotNil(t, resp.Miembro.TitularMiembroID)
		assert.Equal(t, "tit-1", *resp.Miembro.TitularMiembroID)
		assert.Nil(t, resp.Miembro.Correo)

		creado, err := env.miembros.GetByAuthUserID(ctx, "auth-1")
		require.NoError(t, err)
		require.NotNil(t, creado)
		assert.False(t, creado.Activo)
		assert.Equal(t, "+50588887777", creado.Telefono)
		assert.Equal(t, entity.RolMiembro, creado.Rol)

		// el estado del asistente ya no existe
		assert.NotContains(t, env.estados.estados, "auth-1")
	})

	t.Run("doble envío resuelve el destino sin duplicar", func(t *testing.T) {
		env := nuevoEntorno()
		estadoEnDatos(env, "auth-1")
		_, err := env.uc.GuardarBorrador(ctx, "auth-1", dto.BorradorRequest{
			NombreCompleto:     "Ana García",
			DocumentoIdentidad: "001-123456-0000B",
			FechaNacimiento:    "15/06/1990",
			Sexo:               "femenino",
			SinCorreo:          true,
		})
		require.NoError(t, err)

		_, err = env.uc.Finalizar(ctx, "auth-1")
		require.NoError(t, err)
		resp, err := env.uc.Finalizar(ctx, "auth-1")
		require.NoError(t, err)
		assert.Equal(t, dto.DestinoActivacion, resp.Destino)
		assert.Len(t, env.miembros.miembros, 1)
	})

	t.Run("sesión corrupta vuelve al paso faltante", func(t *testing.T) {
		env := nuevoEntorno()
		estado := env.conEstado("auth-1", "+50588887777")
		estado.ConfirmarEmpresa("emp-1", "ACME S.A.", ahoraFija)
		require.NoError(t, estado.SeleccionarParentesco(entity.ParentescoConyuge, ahoraFija))
		_, err := env.uc.Finalizar(ctx, "auth-1")
		assert.ErrorIs(t, err, domain.ErrTitularSinConfirmar)
	})

	t.Run("sin borrador completo", func(t *testing.T) {
		env := nuevoEntorno()
		estadoEnDatos(env, "auth-1")
		_, err := env.uc.Finalizar(ctx, "auth-1")
		assert.ErrorIs(t, err, domain.ErrSesionIncompleta)
	})
}

func TestActivacion(t *testing.T) {
	env := nuevoEntorno()
	ctx := context.Background()
	env.miembros.miembros = append(env.miembros.miembros, &entity.Miembro{
		ID: "m-1", AuthUserID: "auth-1", Activo: false,
	})

	t.Run("pendiente no es un error", func(t *testing.T) {
		resp, err := env.uc.Activacion(ctx, "auth-1")
		require.NoError(t, err)
		assert.False(t, resp.Activo)
		assert.Equal(t, dto.DestinoActivacion, resp.Destino)
	})

	t.Run("aprobada redirige a inicio", func(t *testing.T) {
		env.miembros.miembros[0].Activo = true
		resp, err := env.uc.Activacion(ctx, "auth-1")
		require.NoError(t, err)
		assert.True(t, resp.Activo)
		assert.Equal(t, dto.DestinoInicio, resp.Destino)
	})

	t.Run("sin miembro creado", func(t *testing.T) {
		_, err := env.uc.Activacion(ctx, "auth-99")
		assert.ErrorIs(t, err, domain.ErrMiembroNotFound)
	})
}
