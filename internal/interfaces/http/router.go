package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Recetario-api/internal/application/approval"
	"github.com/jhoicas/Recetario-api/internal/application/auth"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/pkg/actiontoken"
	"github.com/jhoicas/Recetario-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ApprovalUC     *approval.UseCase
	AuthUC         *auth.AuthUseCase
	Tokens         *actiontoken.Authority
	JWTSecret      string
	ConfirmApprove bool
	AdminURL       string
	Logger         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log.Named("auth"))
	app.Post("/api/auth/login", authHandler.Login)

	// Panel admin (Bearer Token con rol admin)
	admin := app.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	appHandler := NewBusinessApplicationHandler(deps.ApprovalUC, log.Named("admin"))
	admin.Get("/business-applications", appHandler.List)
	admin.Post("/business-applications", appHandler.Decide)

	// Enlaces firmados del email (sin sesión)
	emailHandler := NewEmailActionHandler(deps.ApprovalUC, deps.Tokens, EmailActionConfig{
		ConfirmApprove: deps.ConfirmApprove,
		AdminURL:       deps.AdminURL,
	}, log)
	protect := emailHandler.CrossOriginProtection()
	app.Add(fiber.MethodGet, approval.ActionPath, emailHandler.Open)
	app.Post(approval.ActionPath+"/reject", protect, emailHandler.SubmitReject)
	app.Post(approval.ActionPath+"/approve", protect, emailHandler.SubmitApprove)
}
