package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sosmedical/clubsos-api/internal/application/dto"
	"github.com/sosmedical/clubsos-api/internal/application/ports"
	"github.com/sosmedical/clubsos-api/internal/domain"
	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/internal/domain/forms"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
	"github.com/sosmedical/clubsos-api/pkg/jwt"
	"github.com/sosmedical/clubsos-api/pkg/logger"
)

// MaxIntentosCodigo intentos de verificación antes de invalidar la sesión.
const MaxIntentosCodigo = 5

// Config parámetros del flujo de verificación por OTP y de la sesión JWT.
type Config struct {
	JWTSecret       string
	JWTExpMinutes   int
	JWTIssuer       string
	CooldownReenvio time.Duration // 30 s entre envíos de código
	VigenciaCodigo  time.Duration // vida útil del código enviado
}

// AuthUseCase casos de uso de identidad: solicitud y verificación de código
// OTP por SMS, reenvío con cooldown y la puerta de sesión que decide el
// destino de navegación al abrir la app.
type AuthUseCase struct {
	verifRepo      repository.VerificacionRepository
	miembroRepo    repository.MiembroRepository
	onboardingRepo repository.OnboardingRepository
	sms            ports.SMSSender
	log            *logger.Logger
	cfg            Config

	// seams para tests deterministas
	ahora         func() time.Time
	generarCodigo func() (string, error)
}

// NewAuthUseCase construye el caso de uso de identidad.
func NewAuthUseCase(
	verifRepo repository.VerificacionRepository,
	miembroRepo repository.MiembroRepository,
	onboardingRepo repository.OnboardingRepository,
	sms ports.SMSSender,
	log *logger.Logger,
	cfg Config,
) *AuthUseCase {
	return &AuthUseCase{
		verifRepo:      verifRepo,
		miembroRepo:    miembroRepo,
		onboardingRepo: onboardingRepo,
		sms:            sms,
		log:            log,
		cfg:            cfg,
		ahora:          time.Now,
		generarCodigo:  codigoAleatorio,
	}
}

// codigoAleatorio genera un código numérico de 6 dígitos con crypto/rand.
func codigoAleatorio() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generar código: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// EnviarCodigo valida el teléfono, invalida cualquier verificación pendiente
// del mismo número (se ignora su ausencia) y crea una nueva sesión de
// verificación despachando el código por SMS.
func (uc *AuthUseCase) EnviarCodigo(ctx context.Context, in dto.EnviarCodigoRequest) (*dto.EnviarCodigoResponse, error) {
	pais := in.Pais
	if pais == "" {
		pais = forms.PaisPorDefecto
	}
	indicativo := in.Indicativo
	if indicativo == "" {
		indicativo = forms.IndicativoPorDefecto
	}
	if v := forms.ValidarTelefono(pais, in.Telefono); !v.Valido {
		mensaje := v.Mensaje
		if mensaje == "" {
			mensaje = "ingresa tu número de teléfono"
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, mensaje)
	}
	telefono := forms.ComponerE164(indicativo, in.Telefono)
	return uc.crearVerificacion(ctx, telefono)
}

// ReenviarCodigo reemplaza la sesión de verificación por una nueva tras el
// cooldown de 30 segundos. Antes del cooldown devuelve ErrCooldownActivo con
// el tiempo restante.
func (uc *AuthUseCase) ReenviarCodigo(ctx context.Context, in dto.ReenviarCodigoRequest) (*dto.EnviarCodigoResponse, error) {
	v, err := uc.verifRepo.GetByID(ctx, in.VerificacionID)
	if err != nil {
		return nil, fmt.Errorf("buscar verificación: %w", err)
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if restante := v.CooldownRestante(uc.ahora(), uc.cfg.CooldownReenvio); restante > 0 {
		return nil, fmt.Errorf("%w: reintenta en %s", domain.ErrCooldownActivo, forms.FormatearCooldown(restante))
	}
	return uc.crearVerificacion(ctx, v.Telefono)
}

// crearVerificacion invalida las verificaciones pendientes del teléfono y
// persiste una nueva con el código hasheado, reutilizando la identidad de una
// verificación previa del mismo número para que un usuario recurrente
// conserve su miembro.
func (uc *AuthUseCase) crearVerificacion(ctx context.Context, telefono string) (*dto.EnviarCodigoResponse, error) {
	authUserID, err := uc.verifRepo.AuthUserIDByTelefono(ctx, telefono)
	if err != nil {
		return nil, fmt.Errorf("resolver identidad: %w", err)
	}
	if authUserID == "" {
		authUserID = uuid.New().String()
	}

	if err := uc.verifRepo.DeletePendientesByTelefono(ctx, telefono); err != nil {
		// Ausencia o fallo al limpiar no bloquea el envío de un código nuevo
		uc.log.Warn().Err(err).Str("telefono", telefono).Msg("no se pudieron invalidar verificaciones pendientes")
	}

	codigo, err := uc.generarCodigo()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(codigo), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear código: %w", err)
	}

	ahora := uc.ahora()
	v := &entity.VerificacionTelefono{
		ID:         uuid.New().String(),
		Telefono:   telefono,
		CodigoHash: string(hash),
		AuthUserID: authUserID,
		ExpiraEn:   ahora.Add(uc.cfg.VigenciaCodigo),
		CreadoEn:   ahora,
	}
	if err := uc.verifRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("crear verificación: %w", err)
	}

	mensaje := fmt.Sprintf("Tu código de verificación de Club SOS es %s", codigo)
	if err := uc.sms.Enviar(ctx, telefono, mensaje); err != nil {
		return nil, fmt.Errorf("enviar SMS: %w", err)
	}

	uc.log.Info().Str("verificacion_id", v.ID).Msg("código de verificación enviado")
	return &dto.EnviarCodigoResponse{
		VerificacionID:    v.ID,
		Telefono:          telefono,
		ReenvioEnSegundos: int(uc.cfg.CooldownReenvio.Seconds()),
	}, nil
}

// VerificarCodigo canjea {verificación, código} por una sesión JWT y resuelve
// el destino: miembro activo → inicio, miembro pendiente → activación, sin
// miembro → onboarding (creando o reanudando el estado del asistente).
func (uc *AuthUseCase) VerificarCodigo(ctx context.Context, in dto.VerificarCodigoRequest) (*dto.SesionResponse, error) {
	codigo := forms.SoloDigitos(in.Codigo)
	if len(codigo) != entity.LongitudCodigoOTP {
		return nil, domain.ErrCodigoInvalido
	}

	v, err := uc.verifRepo.GetByID(ctx, in.VerificacionID)
	if err != nil {
		return nil, fmt.Errorf("buscar verificación: %w", err)
	}
	if v == nil || v.Verificado || v.Expirada(uc.ahora()) || v.Intentos >= MaxIntentosCodigo {
		return nil, domain.ErrCodigoInvalido
	}

	if err := bcrypt.CompareHashAndPassword([]byte(v.CodigoHash), []byte(codigo)); err != nil {
		v.Intentos++
		if err := uc.verifRepo.Update(ctx, v); err != nil {
			uc.log.Error().Err(err).Msg("registrar intento fallido de verificación")
		}
		return nil, domain.ErrCodigoInvalido
	}

	v.Verificado = true
	if err := uc.verifRepo.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("marcar verificación: %w", err)
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, v.AuthUserID, uc.cfg.JWTIssuer, uc.cfg.JWTExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}

	sesion := uc.resolverDestino(ctx, v.AuthUserID, v.Telefono)
	sesion.Token = token
	return sesion, nil
}

// ResolverSesion es la puerta de sesión/identidad al abrir la app. Con
// authUserID vacío (sin sesión) o ante cualquier fallo de consulta responde
// bienvenida: la puerta falla abierta y nunca bloquea el arranque.
func (uc *AuthUseCase) ResolverSesion(ctx context.Context, authUserID string) *dto.SesionResponse {
	if authUserID == "" {
		return &dto.SesionResponse{Destino: dto.DestinoBienvenida}
	}
	return uc.resolverDestino(ctx, authUserID, "")
}

// resolverDestino decide la ruta según exista o no un miembro para la
// identidad y su bandera activo. Errores de consulta se degradan al destino
// más seguro en lugar de propagarse.
func (uc *AuthUseCase) resolverDestino(ctx context.Context, authUserID, telefono string) *dto.SesionResponse {
	miembro, err := uc.miembroRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		uc.log.Error().Err(err).Str("auth_user_id", authUserID).Msg("consultar miembro en puerta de sesión")
		return &dto.SesionResponse{Destino: dto.DestinoBienvenida}
	}
	if miembro != nil {
		resp := &dto.SesionResponse{Miembro: toMiembroResponse(miembro)}
		if miembro.Activo {
			resp.Destino = dto.DestinoInicio
		} else {
			resp.Destino = dto.DestinoActivacion
		}
		return resp
	}

	// Sin miembro: reanudar (o iniciar) el asistente de onboarding
	estado, err := uc.onboardingRepo.Get(ctx, authUserID)
	if err != nil {
		uc.log.Error().Err(err).Str("auth_user_id", authUserID).Msg("consultar estado de onboarding")
		estado = nil
	}
	if estado == nil {
		estado = entity.NuevoEstadoOnboarding(authUserID, telefono, uc.ahora())
		if err := uc.onboardingRepo.Save(ctx, estado); err != nil {
			uc.log.Error().Err(err).Msg("guardar estado inicial de onboarding")
		}
	} else if telefono != "" && estado.Telefono != telefono {
		estado.Telefono = telefono
		estado.ActualizadoEn = uc.ahora()
		if err := uc.onboardingRepo.Save(ctx, estado); err != nil {
			uc.log.Error().Err(err).Msg("actualizar teléfono del onboarding")
		}
	}
	return &dto.SesionResponse{Destino: dto.DestinoOnboarding, Paso: estado.Paso}
}

func toMiembroResponse(m *entity.Miembro) *dto.MiembroResponse {
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
