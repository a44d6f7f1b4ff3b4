package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sosmedical/clubsos-api/internal/application/auth"
	"github.com/sosmedical/clubsos-api/internal/application/onboarding"
	"github.com/sosmedical/clubsos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OnboardingUC   *onboarding.OnboardingUseCase
	PerfilUC       *usecase.PerfilUseCase
	BeneficioUC    *usecase.BeneficioUseCase
	JWTSecret      string
	RequestTimeout time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", requestTimeout(deps.RequestTimeout))

	// Auth (público). La puerta de sesión acepta token opcional.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/codigo", authHandler.EnviarCodigo)
	authGroup.Post("/codigo/reenviar", authHandler.ReenviarCodigo)
	authGroup.Post("/verificar", authHandler.Verificar)
	authGroup.Get("/sesion", OptionalAuthMiddleware(deps.JWTSecret), authHandler.Sesion)
	authGroup.Delete("/sesion", authHandler.CerrarSesion)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Asistente de onboarding (protegido)
	onboardingGroup := protected.Group("/onboarding")
	onboardingHandler := NewOnboardingHandler(deps.OnboardingUC)
	onboardingGroup.Get("/estado", onboardingHandler.Estado)
	onboardingGroup.Post("/empresa/validar", onboardingHandler.ValidarEmpresa)
	onboardingGroup.Post("/empresa/confirmar", onboardingHandler.ConfirmarEmpresa)
	onboardingGroup.Post("/parentesco", onboardingHandler.Parentesco)
	onboardingGroup.Post("/titular/buscar", onboardingHandler.BuscarTitular)
	onboardingGroup.Post("/titular/confirmar", onboardingHandler.ConfirmarTitular)
	onboardingGroup.Get("/borrador", onboardingHandler.Borrador)
	onboardingGroup.Put("/borrador", onboardingHandler.GuardarBorrador)
	onboardingGroup.Post("/finalizar", onboardingHandler.Finalizar)
	onboardingGroup.Get("/activacion", onboardingHandler.Activacion)

	// Perfil y empresa (protegido)
	perfilHandler := NewPerfilHandler(deps.PerfilUC)
	protected.Get("/perfil", perfilHandler.Obtener)
	protected.Patch("/perfil", perfilHandler.Actualizar)
	protected.Get("/perfil/parientes", perfilHandler.Parientes)
	protected.Get("/empresas/:id", perfilHandler.Empresa)

	// Beneficios (protegido, solo cuentas activas)
	beneficioHandler := NewBeneficioHandler(deps.BeneficioUC)
	protected.Get("/beneficios", beneficioHandler.Listar)
}

// requestTimeout acota cada petición con un context con deadline. Toda
// operación bloqueante (BD, SMS) lo recibe vía c.UserContext().
func requestTimeout(d time.Duration) fiber.Handler {
	if d <= 0 {
		d = 15 * time.Second
	}
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
