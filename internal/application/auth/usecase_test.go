package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sosmedical/clubsos-api/internal/application/dto"
	"github.com/sosmedical/clubsos-api/internal/domain"
	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/pkg/logger"
)

var ahoraFija = time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

// ---- fakes en memoria ----

type verifRepoFake struct {
	verificaciones map[string]*entity.VerificacionTelefono
}

func nuevoVerifRepoFake() *verifRepoFake {
	return &verifRepoFake{verificaciones: map[string]*entity.VerificacionTelefono{}}
}

func (f *verifRepoFake) Create(_ context.Context, v *entity.VerificacionTelefono) error {
	copia := *v
	f.verificaciones[v.ID] = &copia
	return nil
}

func (f *verifRepoFake) GetByID(_ context.Context, id string) (*entity.VerificacionTelefono, error) {
	v, ok := f.verificaciones[id]
	if !ok {
		return nil, nil
	}
	copia := *v
	return &copia, nil
}

func (f *verifRepoFake) Update(_ context.Context, v *entity.VerificacionTelefono) error {
	copia := *v
	f.verificaciones[v.ID] = &copia
	return nil
}

func (f *verifRepoFake) AuthUserIDByTelefono(_ context.Context, telefono string) (string, error) {
	for _, v := range f.verificaciones {
		if v.Telefono == telefono && v.Verificado {
			return v.AuthUserID, nil
		}
	}
	return "", nil
}

func (f *verifRepoFake) DeletePendientesByTelefono(_ context.Context, telefono string) error {
	for id, v := range f.verificaciones {
		if v.Telefono == telefono && !v.Verificado {
			delete(f.verificaciones, id)
		}
	}
	return nil
}

type miembroRepoFake struct {
	miembros []*entity.Miembro
}

func (f *miembroRepoFake) Create(_ context.Context, m *entity.Miembro) error {
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

func (f *miembroRepoFake) BuscarTitulares(_ context.Context, _, _, _ string) ([]*entity.Miembro, error) {
	return nil, nil
}

func (f *miembroRepoFake) ListByTitular(_ context.Context, _ string) ([]*entity.Miembro, error) {
	return nil, nil
}

func (f *miembroRepoFake) Update(_ context.Context, _ *entity.Miembro) error { return nil }

type onboardingRepoFake struct {
	estados map[string]*entity.EstadoOnboarding
}

func (f *onboardingRepoFake) Get(_ context.Context, authUserID string) (*entity.EstadoOnboarding, error) {
	return f.estados[authUserID], nil
}

func (f *onboardingRepoFake) Save(_ context.Context, e *entity.EstadoOnboarding) error {
	f.estados[e.AuthUserID] = e
	return nil
}

func (f *onboardingRepoFake) Delete(_ context.Context, authUserID string) error {
	delete(f.estados, authUserID)
	return nil
}

type smsFake struct {
	destinos []string
	mensajes []string
}

func (f *smsFake) Enviar(_ context.Context, telefono, mensaje string) error {
	f.destinos = append(f.destinos, telefono)
	f.mensajes = append(f.mensajes, mensaje)
	return nil
}

type entorno struct {
	uc         *AuthUseCase
	verifs     *verifRepoFake
	miembros   *miembroRepoFake
	onboarding *onboardingRepoFake
	sms        *smsFake
}

func nuevoEntorno() *entorno {
	verifs := nuevoVerifRepoFake()
	miembros := &miembroRepoFake{}
	onboarding := &onboardingRepoFake{estados: map[string]*entity.EstadoOnboarding{}}
	sms := &smsFake{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := NewAuthUseCase(verifs, miembros, onboarding, sms, log, Config{
		JWTSecret:       "secreto-de-prueba",
		JWTExpMinutes:   60,
		JWTIssuer:       "clubsos-api",
		CooldownReenvio: 30 * time.Second,
		VigenciaCodigo:  5 * time.Minute,
	})
	uc.ahora = func() time.Time { return ahoraFija }
	uc.generarCodigo = func() (string, error) { return "123456", nil }
	return &entorno{uc: uc, verifs: verifs, miembros: miembros, onboarding: onboarding, sms: sms}
}

// ---- envío de código ----

func TestEnviarCodigo(t *testing.T) {
	ctx := context.Background()

	t.Run("número nicaragüense válido", func(t *testing.T) {
		env := nuevoEntorno()
		resp, err := env.uc.EnviarCodigo(ctx, dto.EnviarCodigoRequest{Telefono: "8888-7777"})
		require.NoError(t, err)
		assert.Equal(t, "+50588887777", resp.Telefono)
		assert.Equal(t, 30, resp.ReenvioEnSegundos)
		require.Len(t, env.sms.mensajes, 1)
		assert.Contains(t, env.sms.mensajes[0], "123456")
		assert.Equal(t, "+50588887777", env.sms.destinos[0])

		// el código se guarda hasheado, nunca en claro
		v := env.verifs.verificaciones[resp.VerificacionID]
		require.NotNil(t, v)
		assert.NotContains(t, v.CodigoHash, "123456")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(v.CodigoHash), []byte("123456")))
		assert.Equal(t, ahoraFija.Add(5*time.Minute), v.ExpiraEn)
	})

	t.Run("número con dígitos de menos", func(t *testing.T) {
		env := nuevoEntorno()
		_, err := env.uc.EnviarCodigo(ctx, dto.EnviarCodigoRequest{Telefono: "8888"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, env.sms.mensajes)
	})

	t.Run("otro país con longitud libre", func(t *testing.T) {
		env := nuevoEntorno()
		resp, err := env.uc.EnviarCodigo(ctx, dto.EnviarCodigoRequest{Pais: "CR", Indicativo: "506", Telefono: "88112233"})
		require.NoError(t, err)
		assert.Equal(t, "+50688112233", resp.Telefono)
	})

	t.Run("reenviar invalida la verificación pendiente anterior", func(t *testing.T) {
		env := nuevoEntorno()
		primera, err := env.uc.EnviarCodigo(ctx, dto.EnviarCodigoRequest{Telefono: "88887777"})
		require.NoError(t, err)
		segunda, err := env.uc.EnviarCodigo(ctx, dto.EnviarCodigoRequest{Telefono: "88887777"})
		require.NoError(t, err)
		assert.Nil(t, env.verifs.verificaciones[primera.VerificacionID])
		assert.NotNil(t, env.verifs.verificaciones[segunda.VerificacionID])
	})

	t.Run("un teléfono ya verificado conserva su identidad", func(t *testing.T) {
		env := nuevoEntorno()
		env.verifs.verificaciones["previa"] = &entity.VerificacionTelefono{
			ID: "previa", Telefono: "+50588887777", AuthUserID: "auth-previa", Verificado: true,
		}
		resp, err := env.uc.EnviarCodigo(ctx, dto.EnviarCodigoRequest{Telefono: "88887777"})
		require.NoError(t, err)
		assert.Equal(t, "auth-previa", env.verifs.verificaciones[resp.VerificacionID].AuthUserID)
	})
}

func TestReenviarCodigo(t *testing.T) {
	ctx := context.Background()

	t.Run("antes del cooldown se rechaza con el tiempo restante", func(t *testing.T) {
		env := nuevoEntorno()
		resp, err := env.uc.EnviarCodigo(ctx, dto.EnviarCodigoRequest{Telefono: "88887777"})
		require.NoError(t, err)

		env.uc.ahora = func() time.Time { return ahoraFija.Add(10 * time.Second) }
		_, err = env.uc.ReenviarCodigo(ctx, dto.ReenviarCodigoRequest{VerificacionID: resp.VerificacionID})
		require.ErrorIs(t, err, domain.ErrCooldownActivo)
		assert.Contains(t, err.Error(), "00:20")
	})

	t.Run("tras el cooldown crea una verificación nueva", func(t *testing.T) {
		env := nuevoEntorno()
		resp, err := env.uc.EnviarCodigo(ctx, dto.EnviarCodigoRequest{Telefono: "88887777"})
		require.NoError(t, err)

		env.uc.ahora = func() time.Time { return ahoraFija.Add(31 * time.Second) }
		nueva, err := env.uc.ReenviarCodigo(ctx, dto.ReenviarCodigoRequest{VerificacionID: resp.VerificacionID})
		require.NoError(t, err)
		assert.NotEqual(t, resp.VerificacionID, nueva.VerificacionID)
		assert.Equal(t, "+50588887777", nueva.Telefono)
		assert.Len(t, env.sms.mensajes, 2)
	})

	t.Run("verificación inexistente", func(t *testing.T) {
		env := nuevoEntorno()
		_, err := env.uc.ReenviarCodigo(ctx, dto.ReenviarCodigoRequest{VerificacionID: "no-existe"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// ---- verificación y destino ----

func TestVerificarCodigo(t *testing.T) {
	ctx := context.Background()

	enviar := func(t *testing.T, env *entorno) string {
		t.Helper()
		resp, err := env.uc.EnviarCodigo(ctx, dto.EnviarCodigoRequest{Telefono: "88887777"})
		require.NoError(t, err)
		return resp.VerificacionID
	}

	t.Run("código correcto emite sesión y arranca el onboarding", func(t *testing.T) {
		env := nuevoEntorno()
		id := enviar(t, env)
		sesion, err := env.uc.VerificarCodigo(ctx, dto.VerificarCodigoRequest{VerificacionID: id, Codigo: "123456"})
		require.NoError(t, err)
		assert.NotEmpty(t, sesion.Token)
		assert.Equal(t, dto.DestinoOnboarding, sesion.Destino)
		assert.Equal(t, entity.PasoEmpresa, sesion.Paso)

		// el estado del asistente nace con el teléfono verificado
		authUserID := env.verifs.verificaciones[id].AuthUserID
		estado := env.onboarding.estados[authUserID]
		require.NotNil(t, estado)
		assert.Equal(t, "+50588887777", estado.Telefono)
	})

	t.Run("código incorrecto consume un intento", func(t *testing.T) {
		env := nuevoEntorno()
		id := enviar(t, env)
		_, err := env.uc.VerificarCodigo(ctx, dto.VerificarCodigoRequest{VerificacionID: id, Codigo: "000000"})
		assert.ErrorIs(t, err, domain.ErrCodigoInvalido)
		assert.Equal(t, 1, env.verifs.verificaciones[id].Intentos)
	})

	t.Run("agotar los intentos invalida la sesión incluso con el código correcto", func(t *testing.T) {
		env := nuevoEntorno()
		id := enviar(t, env)
		for i := 0; i < MaxIntentosCodigo; i++ {
			_, err := env.uc.VerificarCodigo(ctx, dto.VerificarCodigoRequest{VerificacionID: id, Codigo: "000000"})
			assert.ErrorIs(t, err, domain.ErrCodigoInvalido)
		}
		_, err := env.uc.VerificarCodigo(ctx, dto.VerificarCodigoRequest{VerificacionID: id, Codigo: "123456"})
		assert.ErrorIs(t, err, domain.ErrCodigoInvalido)
	})

	t.Run("código expirado", func(t *testing.T) {
		env := nuevoEntorno()
		id := enviar(t, env)
		env.uc.ahora = func() time.Time { return ahoraFija.Add(6 * time.Minute) }
		_, err := env.uc.VerificarCodigo(ctx, dto.VerificarCodigoRequest{VerificacionID: id, Codigo: "123456"})
		assert.ErrorIs(t, err, domain.ErrCodigoInvalido)
	})

	t.Run("una verificación no se canjea dos veces", func(t *testing.T) {
		env := nuevoEntorno()
		id := enviar(t, env)
		_, err := env.uc.VerificarCodigo(ctx, dto.VerificarCodigoRequest{VerificacionID: id, Codigo: "123456"})
		require.NoError(t, err)
		_, err = env.uc.VerificarCodigo(ctx, dto.VerificarCodigoRequest{VerificacionID: id, Codigo: "123456"})
		assert.ErrorIs(t, err, domain.ErrCodigoInvalido)
	})

	t.Run("entrada con menos de seis dígitos", func(t *testing.T) {
		env := nuevoEntorno()
		id := enviar(t, env)
		_, err := env.uc.VerificarCodigo(ctx, dto.VerificarCodigoRequest{VerificacionID: id, Codigo: "12 34"})
		assert.ErrorIs(t, err, domain.ErrCodigoInvalido)
	})

	t.Run("miembro existente activo va directo a inicio", func(t *testing.T) {
		env := nuevoEntorno()
		env.verifs.verificaciones["previa"] = &entity.VerificacionTelefono{
			ID: "previa", Telefono: "+50588887777", AuthUserID: "auth-1", Verificado: true,
		}
		env.miembros.miembros = append(env.miembros.miembros, &entity.Miembro{
			ID: "m-1", AuthUserID: "auth-1", Activo: true,
		})
		id := enviar(t, env)
		sesion, err := env.uc.VerificarCodigo(ctx, dto.VerificarCodigoRequest{VerificacionID: id, Codigo: "123456"})
		require.NoError(t, err)
		assert.Equal(t, dto.DestinoInicio, sesion.Destino)
		require.NotNil(t, sesion.Miembro)
		assert.Equal(t, "m-1", sesion.Miembro.ID)
	})

	t.Run("miembro pendiente va a activación", func(t *testing.T) {
		env := nuevoEntorno()
		env.verifs.verificaciones["previa"] = &entity.VerificacionTelefono{
			ID: "previa", Telefono: "+50588887777", AuthUserID: "auth-1", Verificado: true,
		}
		env.miembros.miembros = append(env.miembros.miembros, &entity.Miembro{
			ID: "m-1", AuthUserID: "auth-1", Activo: false,
		})
		id := enviar(t, env)
		sesion, err := env.uc.VerificarCodigo(ctx, dto.VerificarCodigoRequest{VerificacionID: id, Codigo: "123456"})
		require.NoError(t, err)
		assert.Equal(t, dto.DestinoActivacion, sesion.Destino)
	})
}

func TestResolverSesion(t *testing.T) {
	ctx := context.Background()

	t.Run("sin sesión responde bienvenida", func(t *testing.T) {
		env := nuevoEntorno()
		sesion := env.uc.ResolverSesion(ctx, "")
		assert.Equal(t, dto.DestinoBienvenida, sesion.Destino)
	})

	t.Run("onboarding a medias se reanuda en su paso", func(t *testing.T) {
		env := nuevoEntorno()
		estado := entity.NuevoEstadoOnboarding("auth-1", "+50588887777", ahoraFija)
		estado.ConfirmarEmpresa("emp-1", "ACME S.A.", ahoraFija)
		env.onboarding.estados["auth-1"] = estado

		sesion := env.uc.ResolverSesion(ctx, "auth-1")
		assert.Equal(t, dto.DestinoOnboarding, sesion.Destino)
		assert.Equal(t, entity.PasoParentesco, sesion.Paso)
	})

	t.Run("miembro activo va a inicio", func(t *testing.T) {
		env := nuevoEntorno()
		env.miembros.miembros = append(env.miembros.miembros, &entity.Miembro{
			ID: "m-1", AuthUserID: "auth-1", Activo: true,
		})
		sesion := env.uc.ResolverSesion(ctx, "auth-1")
		assert.Equal(t, dto.DestinoInicio, sesion.Destino)
	})
}
