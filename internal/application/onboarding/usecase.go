// Package onboarding implementa el asistente de vinculación de cuenta:
// empresa → parentesco → (titular) → datos personales → finalización. Cada
// paso valida, confirma de forma explícita y persiste su propio estado; los
// pasos posteriores solo leen lo ya confirmado.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sosmedical/clubsos-api/internal/application/dto"
	"github.com/sosmedical/clubsos-api/internal/domain"
	"github.com/sosmedical/clubsos-api/internal/domain/entity"
	"github.com/sosmedical/clubsos-api/internal/domain/forms"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
	"github.com/sosmedical/clubsos-api/pkg/logger"
)

// fechaCanonica es el formato en que el borrador guarda la fecha de
// nacimiento (representación canónica, independiente de la máscara de captura).
const fechaCanonica = "2006-01-02"

// Claves del borrador de datos personales.
const (
	campoNombre    = "nombre_completo"
	campoDocumento = "documento_identidad"
	campoFecha     = "fecha_nacimiento"
	campoSexo      = "sexo"
	campoTelefono  = "telefono"
	campoCorreo    = "correo"
)

// ErroresValidacion agrupa los errores por campo del formulario de datos
// personales. Todos los campos inválidos se reportan simultáneamente.
type ErroresValidacion struct {
	Campos map[string]string
}

func (e *ErroresValidacion) Error() string { return "datos personales inválidos" }

// OnboardingUseCase casos de uso del asistente de vinculación.
type OnboardingUseCase struct {
	estadoRepo  repository.OnboardingRepository
	empresaRepo repository.EmpresaRepository
	miembroRepo repository.MiembroRepository
	txRunner    TxRunner
	log         *logger.Logger

	ahora func() time.Time // reloj inyectable para tests
}

// NewOnboardingUseCase construye el caso de uso del asistente.
func NewOnboardingUseCase(
	estadoRepo repository.OnboardingRepository,
	empresaRepo repository.EmpresaRepository,
	miembroRepo repository.MiembroRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *OnboardingUseCase {
	return &OnboardingUseCase{
		estadoRepo:  estadoRepo,
		empresaRepo: empresaRepo,
		miembroRepo: miembroRepo,
		txRunner:    txRunner,
		log:         log,
		ahora:       time.Now,
	}
}

// obtenerEstado carga el estado del asistente, creándolo si no existe (p. ej.
// una sesión reanudada en otro dispositivo).
func (uc *OnboardingUseCase) obtenerEstado(ctx context.Context, authUserID string) (*entity.EstadoOnboarding, error) {
	estado, err := uc.estadoRepo.Get(ctx, authUserID)
	if err != nil {
		return nil, fmt.Errorf("cargar estado de onboarding: %w", err)
	}
	if estado == nil {
		estado = entity.NuevoEstadoOnboarding(authUserID, "", uc.ahora())
	}
	return estado, nil
}

// guardarEstado persiste el estado. Un fallo al guardar bloquea la transición
// del paso (el usuario permanece donde está con su entrada intacta).
func (uc *OnboardingUseCase) guardarEstado(ctx context.Context, estado *entity.EstadoOnboarding) error {
	if err := uc.estadoRepo.Save(ctx, estado); err != nil {
		return fmt.Errorf("guardar estado de onboarding: %w", err)
	}
	return nil
}

// Estado devuelve el contexto completo del asistente para rehidratar
// cualquier paso al navegar hacia atrás.
func (uc *OnboardingUseCase) Estado(ctx context.Context, authUserID string) (*dto.EstadoOnboardingResponse, error) {
	estado, err := uc.obtenerEstado(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	return toEstadoResponse(estado), nil
}

// ValidarEmpresa busca la empresa por código normalizado. Validar nunca
// compromete la vinculación: solo presenta la empresa hallada para que el
// usuario la confirme en un paso aparte.
func (uc *OnboardingUseCase) ValidarEmpresa(ctx context.Context, in dto.ValidarEmpresaRequest) (*dto.EmpresaEncontradaResponse, error) {
	codigo := forms.NormalizarCodigoEmpresa(in.Codigo)
	if codigo == "" {
		return nil, fmt.Errorf("%w: ingresa un código de empresa", domain.ErrInvalidInput)
	}
	empresa, err := uc.empresaRepo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if empresa == nil {
		return nil, domain.ErrEmpresaNotFound
	}
	if !empresa.PermiteVinculacion() {
		// Rechazo terminal para este código: no se ofrece confirmación
		return nil, domain.ErrEmpresaNoDisponible
	}
	return &dto.EmpresaEncontradaResponse{
		EmpresaID: empresa.ID,
		Nombre:    empresa.Nombre,
		Estado:    empresa.Estado,
	}, nil
}

// ConfirmarEmpresa compromete la empresa encontrada y avanza al paso de
// parentesco. El estado de la empresa se revalida al confirmar.
func (uc *OnboardingUseCase) ConfirmarEmpresa(ctx context.Context, authUserID string, in dto.ConfirmarEmpresaRequest) (*dto.EstadoOnboardingResponse, error) {
	empresa, err := uc.empresaRepo.GetByID(ctx, in.EmpresaID)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if empresa == nil {
		return nil, domain.ErrEmpresaNotFound
	}
	if !empresa.PermiteVinculacion() {
		return nil, domain.ErrEmpresaNoDisponible
	}
	estado, err := uc.obtenerEstado(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	estado.ConfirmarEmpresa(empresa.ID, empresa.Nombre, uc.ahora())
	if err := uc.guardarEstado(ctx, estado); err != nil {
		return nil, err
	}
	return toEstadoResponse(estado), nil
}

// SeleccionarParentesco registra el tipo de miembro y ramifica: titular va
// directo a datos personales, el resto pasa por la vinculación de titular.
func (uc *OnboardingUseCase) SeleccionarParentesco(ctx context.Context, authUserID string, in dto.ParentescoRequest) (*dto.EstadoOnboardingResponse, error) {
	estado, err := uc.obtenerEstado(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if err := estado.SeleccionarParentesco(in.Parentesco, uc.ahora()); err != nil {
		return nil, err
	}
	if err := uc.guardarEstado(ctx, estado); err != nil {
		return nil, err
	}
	return toEstadoResponse(estado), nil
}

// BuscarTitular busca al titular dentro de la empresa ya confirmada por
// coincidencia exacta de nombre y documento normalizado. Exactamente una
// coincidencia habilita la confirmación; cero y múltiples son rechazos que la
// ambigüedad nunca resuelve sola.
func (uc *OnboardingUseCase) BuscarTitular(ctx context.Context, authUserID string, in dto.BuscarTitularRequest) (*dto.TitularEncontradoResponse, error) {
	estado, err := uc.obtenerEstado(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if !estado.RequiereTitular() {
		// Nunca alcanzable para titulares (p. ej. navegación atrás inconsistente)
		return nil, domain.ErrPasoTitularNoAplica
	}
	if estado.EmpresaID == "" {
		return nil, domain.ErrEmpresaSinConfirmar
	}

	nombre := strings.TrimSpace(in.NombreCompleto)
	documento := forms.NormalizarDocumento(in.DocumentoIdentidad)
	if nombre == "" || documento == "" {
		return nil, fmt.Errorf("%w: por favor completa ambos campos", domain.ErrInvalidInput)
	}

	titulares, err := uc.miembroRepo.BuscarTitulares(ctx, estado.EmpresaID, nombre, documento)
	if err != nil {
		return nil, fmt.Errorf("buscar titular: %w", err)
	}
	switch len(titulares) {
	case 0:
		return nil, domain.ErrTitularNoEncontrado
	case 1:
		t := titulares[0]
		return &dto.TitularEncontradoResponse{
			MiembroID:          t.ID,
			NombreCompleto:     t.NombreCompleto,
			DocumentoIdentidad: t.DocumentoIdentidad,
			EmpresaNombre:      estado.EmpresaNombre,
		}, nil
	default:
		return nil, domain.ErrTitularAmbiguo
	}
}

// ConfirmarTitular compromete la vinculación con el titular hallado,
// guardando snapshots de nombre y documento al momento de confirmar.
func (uc *OnboardingUseCase) ConfirmarTitular(ctx context.Context, authUserID string, in dto.ConfirmarTitularRequest) (*dto.EstadoOnboardingResponse, error) {
	estado, err := uc.obtenerEstado(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if !estado.RequiereTitular() {
		return nil, domain.ErrPasoTitularNoAplica
	}
	titular, err := uc.miembroRepo.GetByID(ctx, in.MiembroID)
	if err != nil {
		return nil, fmt.Errorf("buscar titular: %w", err)
	}
	if titular == nil || !titular.EsTitular() || titular.EmpresaID != estado.EmpresaID {
		return nil, domain.ErrTitularNoEncontrado
	}
	if err := estado.ConfirmarTitular(titular.ID, titular.NombreCompleto, titular.DocumentoIdentidad, uc.ahora()); err != nil {
		return nil, err
	}
	if err := uc.guardarEstado(ctx, estado); err != nil {
		return nil, err
	}
	return toEstadoResponse(estado), nil
}

// Borrador devuelve el borrador de datos personales hidratado, con el
// teléfono verificado siempre de solo lectura.
func (uc *OnboardingUseCase) Borrador(ctx context.Context, authUserID string) (*dto.BorradorResponse, error) {
	estado, err := uc.obtenerEstado(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	return toBorradorResponse(estado), nil
}

// GuardarBorrador valida todos los campos a la vez (cada campo inválido
// reporta su propio error) y fusiona los válidos sobre el borrador existente.
// Un fallo al persistir bloquea el avance al paso de finalización.
func (uc *OnboardingUseCase) GuardarBorrador(ctx context.Context, authUserID string, in dto.BorradorRequest) (*dto.BorradorResponse, error) {
	estado, err := uc.obtenerEstado(ctx, authUserID)
	if err != nil {
		return nil, err
	}

	errores := map[string]string{}

	nombre := strings.TrimSpace(in.NombreCompleto)
	if nombre == "" {
		errores[campoNombre] = "El nombre completo es obligatorio"
	}
	documento := strings.TrimSpace(in.DocumentoIdentidad)
	if documento == "" {
		errores[campoDocumento] = "El documento de identidad es obligatorio"
	}

	var fecha time.Time
	if strings.TrimSpace(in.FechaNacimiento) == "" {
		errores[campoFecha] = "La fecha de nacimiento es obligatoria"
	} else {
		fecha, err = forms.ParseFechaNacimiento(in.FechaNacimiento, uc.ahora())
		switch {
		case errors.Is(err, forms.ErrFechaFormato):
			errores[campoFecha] = "Formato inválido. Use DD/MM/AAAA"
		case errors.Is(err, forms.ErrFechaInvalida):
			errores[campoFecha] = "Fecha inválida"
		case errors.Is(err, forms.ErrFechaFutura):
			errores[campoFecha] = "La fecha no puede ser futura"
		}
	}

	sexo := strings.ToLower(strings.TrimSpace(in.Sexo))
	if sexo == "" {
		errores[campoSexo] = "Seleccione su sexo"
	} else if !entity.SexoValido(sexo) {
		errores[campoSexo] = "Sexo inválido"
	}

	// Correo: SinCorreo marca ausencia explícita; vacío sin marcar es "todavía
	// no provisto" y también se guarda como nulo, sin error.
	var correo *string
	if !in.SinCorreo {
		if c := forms.NormalizarCorreo(in.Correo); c != "" {
			if !forms.CorreoValido(c) {
				errores[campoCorreo] = "Formato de correo inválido"
			} else {
				existente, err := uc.miembroRepo.GetByCorreo(ctx, c)
				if err != nil {
					return nil, fmt.Errorf("validar correo: %w", err)
				}
				if existente != nil && existente.AuthUserID != authUserID {
					errores[campoCorreo] = "El correo ya está registrado por otro miembro"
				} else {
					correo = &c
				}
			}
		}
	}

	if len(errores) > 0 {
		return nil, &ErroresValidacion{Campos: errores}
	}

	campos := map[string]any{
		campoNombre:    nombre,
		campoDocumento: documento,
		campoFecha:     fecha.Format(fechaCanonica),
		campoSexo:      sexo,
		campoTelefono:  estado.Telefono,
	}
	if correo != nil {
		campos[campoCorreo] = *correo
	} else {
		campos[campoCorreo] = nil
	}
	estado.FusionarBorrador(campos, uc.ahora())
	if err := uc.guardarEstado(ctx, estado); err != nil {
		return nil, err
	}
	return toBorradorResponse(estado), nil
}

// Finalizar crea el miembro permanente a partir del contexto confirmado más
// el borrador. El miembro siempre nace con activo = false: la activación es
// una acción administrativa externa, nunca del cliente.
func (uc *OnboardingUseCase) Finalizar(ctx context.Context, authUserID string) (*dto.SesionResponse, error) {
	// Doble envío o sesión reanudada: si el miembro ya existe, se resuelve el
	// destino en lugar de fallar (la unicidad real la garantiza el almacén).
	existente, err := uc.miembroRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return nil, fmt.Errorf("buscar miembro: %w", err)
	}
	if existente != nil {
		return uc.destinoMiembro(existente), nil
	}

	estado, err := uc.estadoRepo.Get(ctx, authUserID)
	if err != nil {
		return nil, fmt.Errorf("cargar estado de onboarding: %w", err)
	}
	if estado == nil {
		return nil, domain.ErrEmpresaSinConfirmar
	}
	if err := estado.ListoParaFinalizar(); err != nil {
		return nil, err
	}

	nombre, _ := estado.Borrador[campoNombre].(string)
	documento, _ := estado.Borrador[campoDocumento].(string)
	fechaStr, _ := estado.Borrador[campoFecha].(string)
	sexo, _ := estado.Borrador[campoSexo].(string)
	telefono, _ := estado.Borrador[campoTelefono].(string)
	if telefono == "" {
		telefono = estado.Telefono
	}
	if nombre == "" || fechaStr == "" || sexo == "" {
		return nil, fmt.Errorf("%w: completa tus datos personales", domain.ErrSesionIncompleta)
	}
	fecha, err := time.Parse(fechaCanonica, fechaStr)
	if err != nil {
		return nil, fmt.Errorf("%w: completa tus datos personales", domain.ErrSesionIncompleta)
	}

	var correo *string
	if c, ok := estado.Borrador[campoCorreo].(string); ok && c != "" {
		correo = &c
	}
	var titularID *string
	if estado.RequiereTitular() {
		id := estado.TitularMiembroID
		titularID = &id
	}

	ahora := uc.ahora()
	miembro := &entity.Miembro{
		ID:                 uuid.New().String(),
		EmpresaID:          estado.EmpresaID,
		AuthUserID:         authUserID,
		Parentesco:         estado.Parentesco,
		NombreCompleto:     nombre,
		DocumentoIdentidad: documento,
		FechaNacimiento:    fecha,
		Sexo:               strings.ToLower(sexo),
		Telefono:           telefono,
		Correo:             correo,
		TitularMiembroID:   titularID,
		Rol:                entity.RolMiembro,
		Activo:             false,
		CreatedAt:          ahora,
		UpdatedAt:          ahora,
	}
	// Crear el miembro y limpiar el asistente en la misma transacción: nunca
	// queda un miembro creado con el asistente a medio cerrar.
	err = uc.txRunner.Run(ctx, func(
		miembroRepo repository.MiembroRepository,
		estadoRepo repository.OnboardingRepository,
	) error {
		if err := miembroRepo.Create(ctx, miembro); err != nil {
			return err
		}
		return estadoRepo.Delete(ctx, authUserID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrMiembroYaExiste) {
			if m, errGet := uc.miembroRepo.GetByAuthUserID(ctx, authUserID); errGet == nil && m != nil {
				return uc.destinoMiembro(m), nil
			}
		}
		return nil, fmt.Errorf("crear miembro: %w", err)
	}

	uc.log.Info().Str("miembro_id", miembro.ID).Str("empresa_id", miembro.EmpresaID).Msg("miembro creado, pendiente de activación")
	return uc.destinoMiembro(miembro), nil
}

// Activacion consulta si el administrador ya aprobó la cuenta. Que siga
// pendiente es lo esperado, no una falla: se permanece sin error.
func (uc *OnboardingUseCase) Activacion(ctx context.Context, authUserID string) (*dto.ActivacionResponse, error) {
	miembro, err := uc.miembroRepo.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return nil, fmt.Errorf("buscar miembro: %w", err)
	}
	if miembro == nil {
		return nil, domain.ErrMiembroNotFound
	}
	destino := dto.DestinoActivacion
	if miembro.Activo {
		destino = dto.DestinoInicio
	}
	return &dto.ActivacionResponse{Activo: miembro.Activo, Destino: destino}, nil
}

func (uc *OnboardingUseCase) destinoMiembro(m *entity.Miembro) *dto.SesionResponse {
	destino := dto.DestinoActivacion
	if m.Activo {
		destino = dto.DestinoInicio
	}
	return &dto.SesionResponse{Destino: destino, Miembro: toMiembroResponse(m)}
}

func toEstadoResponse(e *entity.EstadoOnboarding) *dto.EstadoOnboardingResponse {
	resp := &dto.EstadoOnboardingResponse{
		Paso:             e.Paso,
		Telefono:         e.Telefono,
		EmpresaID:        e.EmpresaID,
		EmpresaNombre:    e.EmpresaNombre,
		Parentesco:       e.Parentesco,
		TitularMiembroID: e.TitularMiembroID,
		TitularNombre:    e.TitularNombre,
		TitularDocumento: e.TitularDocumento,
	}
	if len(e.Borrador) > 0 {
		resp.Borrador = toBorradorResponse(e)
	}
	return resp
}

// toBorradorResponse rehidrata el formulario desde el borrador persistido.
// La fecha vuelve a la máscara DD/MM/AAAA; un correo nulo presente en el
// borrador se presenta como "sin correo" marcado.
func toBorradorResponse(e *entity.EstadoOnboarding) *dto.BorradorResponse {
	resp := &dto.BorradorResponse{Telefono: e.Telefono}
	if e.Borrador == nil {
		return resp
	}
	if v, ok := e.Borrador[campoNombre].(string); ok {
		resp.NombreCompleto = v
	}
	if v, ok := e.Borrador[campoDocumento].(string); ok {
		resp.DocumentoIdentidad = v
	}
	if v, ok := e.Borrador[campoFecha].(string); ok {
		if f, err := time.Parse(fechaCanonica, v); err == nil {
			resp.FechaNacimiento = forms.FormatearFecha(f)
		}
	}
	if v, ok := e.Borrador[campoSexo].(string); ok {
		resp.Sexo = v
	}
	if v, ok := e.Borrador[campoCorreo]; ok {
		if c, esString := v.(string); esString && c != "" {
			resp.Correo = &c
		} else {
			resp.SinCorreo = true
		}
	}
	if v, ok := e.Borrador[campoTelefono].(string); ok && v != "" {
		resp.Telefono = v
	}
	return resp
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
