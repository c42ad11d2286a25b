package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devlance/marketplace-api/docs"
	"github.com/devlance/marketplace-api/internal/api/handler"
	"github.com/devlance/marketplace-api/internal/api/middleware"
	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
	"github.com/devlance/marketplace-api/internal/core/service"
	"github.com/devlance/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/devlance/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devlance/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered. The notifier
// and notification service are constructed by the caller so the dispatcher's
// worker lifecycle stays outside the router.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *goredis.Client,
	notifier ports.Notifier,
	notifications ports.NotificationService,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	// --- Services ---
	authService := service.NewAuthService(accountRepo, profileRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, log)
	userService := service.NewUserService(profileRepo, log)
	projectService := service.NewProjectService(projectRepo, taskRepo, notifier, log)
	applicationService := service.NewApplicationService(applicationRepo, projectRepo, notifier, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, applicationRepo, notifier, log)
	paymentService := service.NewPaymentService(paymentRepo, notifier, log)
	messageService := service.NewMessageService(messageRepo, profileRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	taskHandler := handler.NewTaskHandler(taskService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	billingHandler := handler.NewBillingHandler(paymentService, redisdb.NewBillingDedup(rdb), log)
	messageHandler := handler.NewMessageHandler(messageService)
	notificationHandler := handler.NewNotificationHandler(notifications)

	// --- Public surface ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// Billing webhook: caller is the external billing provider, not a user
	// session, so it sits outside the auth group.
	e.POST("/v1/billing/events", billingHandler.HandleEvent)

	// --- Authenticated surface ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.GET("/profile", userHandler.GetProfile)
	v1.PATCH("/profile", userHandler.UpdateProfile)

	admin := middleware.RBAC(domain.RoleAdmin)
	v1.GET("/users", userHandler.List, admin)
	v1.PATCH("/users/:id/approval", userHandler.SetApproval, admin)
	v1.DELETE("/users/:id", userHandler.Remove, admin)

	v1.POST("/projects", projectHandler.Create, middleware.RBAC(domain.RoleClient))
	v1.GET("/projects", projectHandler.List)
	v1.GET("/projects/:id", projectHandler.Get)
	v1.PATCH("/projects/:id/status", projectHandler.SetStatus, admin)

	v1.POST("/projects/:id/applications", applicationHandler.Apply, middleware.RBAC(domain.RoleDeveloper))
	v1.GET("/projects/:id/applications", applicationHandler.ListForProject, middleware.RBAC(domain.RoleAdmin, domain.RoleClient))
	v1.GET("/applications", applicationHandler.ListMine, middleware.RBAC(domain.RoleDeveloper))
	v1.PATCH("/applications/:id/decision", applicationHandler.Decide, admin)

	v1.POST("/projects/:id/tasks", taskHandler.Create, admin)
	v1.GET("/tasks", taskHandler.List)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.POST("/tasks/:id/start", taskHandler.Start, middleware.RBAC(domain.RoleDeveloper))
	v1.POST("/tasks/:id/submission", taskHandler.Submit, middleware.RBAC(domain.RoleDeveloper))
	v1.POST("/tasks/:id/review", taskHandler.Review, middleware.RBAC(domain.RoleClient, domain.RoleAdmin))
	v1.DELETE("/tasks/:id", taskHandler.Delete, admin)

	v1.POST("/payments/payouts", paymentHandler.RecordPayout, admin)
	v1.GET("/payments/totals", paymentHandler.Totals, admin)
	v1.GET("/payments", paymentHandler.List)

	v1.POST("/messages", messageHandler.Send)
	v1.GET("/messages", messageHandler.Conversation)

	v1.GET("/notifications", notificationHandler.List)
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead)

	return e
}
