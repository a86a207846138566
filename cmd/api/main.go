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

	"github.com/jhoicas/Recetario-api/internal/application/approval"
	"github.com/jhoicas/Recetario-api/internal/application/auth"
	"github.com/jhoicas/Recetario-api/internal/application/notification"
	"github.com/jhoicas/Recetario-api/internal/infrastructure/mail"
	"github.com/jhoicas/Recetario-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Recetario-api/internal/interfaces/http"
	"github.com/jhoicas/Recetario-api/pkg/actiontoken"
	"github.com/jhoicas/Recetario-api/pkg/config"
	"github.com/jhoicas/Recetario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("confirm_approve", cfg.Approval.ConfirmApprove).
		Msg("iniciando aplicación")

	tokens, err := actiontoken.New([]byte(cfg.Approval.SigningSecret))
	if err != nil {
		log.Fatal().Err(err).Msg("APPROVAL_SIGNING_SECRET")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	if cfg.SMTP.Host == "" {
		log.Warn().Msg("SMTP_HOST vacío: los emails solo se registran en el log")
	}
	dispatcher := notification.NewDispatcher(mail.New(cfg.SMTP, log), notification.Config{
		AppName:  cfg.App.Name,
		LoginURL: cfg.Approval.PublicBaseURL + "/login",
	}, log)
	approvalUC := approval.NewUseCase(companyRepo, userRepo, dispatcher, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Recetario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ApprovalUC:     approvalUC,
		AuthUC:         authUC,
		Tokens:         tokens,
		JWTSecret:      cfg.JWT.Secret,
		ConfirmApprove: cfg.Approval.ConfirmApprove,
		AdminURL:       cfg.Approval.AdminPanelURL(),
		Logger:         log,
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
