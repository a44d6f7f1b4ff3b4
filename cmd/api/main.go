package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sosmedical/clubsos-api/internal/application/auth"
	"github.com/sosmedical/clubsos-api/internal/application/onboarding"
	"github.com/sosmedical/clubsos-api/internal/application/ports"
	"github.com/sosmedical/clubsos-api/internal/application/usecase"
	"github.com/sosmedical/clubsos-api/internal/infrastructure/postgres"
	"github.com/sosmedical/clubsos-api/internal/infrastructure/sms"
	httpRouter "github.com/sosmedical/clubsos-api/internal/interfaces/http"
	"github.com/sosmedical/clubsos-api/pkg/config"
	"github.com/sosmedical/clubsos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	empresaRepo := postgres.NewEmpresaRepository(pool)
	miembroRepo := postgres.NewMiembroRepository(pool)
	verifRepo := postgres.NewVerificacionRepository(pool)
	onboardingRepo := postgres.NewOnboardingRepository(pool)
	beneficioRepo := postgres.NewBeneficioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// En desarrollo el código OTP se escribe al log; en producción va por la
	// pasarela HTTP de SMS.
	var smsSender ports.SMSSender
	if cfg.SMS.Mode == "http" {
		smsSender = sms.NewHTTPSender(cfg.SMS.BaseURL, cfg.SMS.APIKey, cfg.SMS.Remitente)
	} else {
		smsSender = sms.NewLogSender(log)
	}

	authUC := auth.NewAuthUseCase(verifRepo, miembroRepo, onboardingRepo, smsSender, log, auth.Config{
		JWTSecret:       cfg.JWT.Secret,
		JWTExpMinutes:   cfg.JWT.Expiration,
		JWTIssuer:       cfg.JWT.Issuer,
		CooldownReenvio: time.Duration(cfg.OTP.CooldownSeconds) * time.Second,
		VigenciaCodigo:  time.Duration(cfg.OTP.TTLMinutes) * time.Minute,
	})
	onboardingUC := onboarding.NewOnboardingUseCase(onboardingRepo, empresaRepo, miembroRepo, txRunner, log)
	perfilUC := usecase.NewPerfilUseCase(miembroRepo, empresaRepo)
	beneficioUC := usecase.NewBeneficioUseCase(beneficioRepo, miembroRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ClubSOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OnboardingUC:   onboardingUC,
		PerfilUC:       perfilUC,
		BeneficioUC:    beneficioUC,
		JWTSecret:      cfg.JWT.Secret,
		RequestTimeout: time.Duration(cfg.HTTP.RequestTimeout) * time.Second,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
