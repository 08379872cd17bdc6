package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/artkulinaria/staffing-backoffice/internal/api/handler"
	"github.com/artkulinaria/staffing-backoffice/internal/api/middleware"
	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/service"
	"github.com/artkulinaria/staffing-backoffice/internal/infrastructure/config"
	mongodb "github.com/artkulinaria/staffing-backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/artkulinaria/staffing-backoffice/internal/infrastructure/db/redis"
	"github.com/artkulinaria/staffing-backoffice/internal/infrastructure/queue"
	"github.com/artkulinaria/staffing-backoffice/internal/infrastructure/telegram"
)

// NewRouter builds the Echo instance with all routes registered and
// returns it together with the webhook dispatcher, which the caller
// must Start before serving traffic.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("staffing"))

	// --- Repositories ---
	caseRepo := mongodb.NewCaseRepository(db)
	tokenRepo := mongodb.NewTokenRepository(db)
	identityRepo := mongodb.NewIdentityRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	accessRepo := mongodb.NewAccessRepository(db)

	// --- Services ---
	// The three services that mutate case state share one KeyedLock so
	// the approval path and the webhook path serialise per case.
	authz := service.NewAuthorizer()
	locks := service.NewKeyedLock()
	bot := telegram.NewClient(cfg.Telegram, log)

	credentialService := service.NewCredentialService(identityRepo, log)
	caseService := service.NewCaseService(caseRepo, auditRepo, authz, locks, log)
	linkService := service.NewLinkService(tokenRepo, caseRepo, credentialService, auditRepo, bot, bot, authz, locks, log)
	approvalService := service.NewApprovalService(caseRepo, credentialService, auditRepo, bot, authz, locks, log)
	authService := service.NewAuthService(identityRepo, auditRepo, cfg.JWTSecret, 24*time.Hour, log)
	identityService := service.NewIdentityService(identityRepo, auditRepo, authz, log)
	accessService := service.NewAccessService(accessRepo, identityRepo, auditRepo, authz, log)

	dispatcher := queue.NewDispatcher(0, linkService, log)
	dedup := redisdb.NewUpdateDedup(rdb)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	caseHandler := handler.NewCaseHandler(caseService, linkService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	identityHandler := handler.NewIdentityHandler(identityService, accessService)
	auditHandler := handler.NewAuditHandler(auditRepo)
	webhookHandler := handler.NewWebhookHandler(dedup, dispatcher, log)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleHR)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Webhook (provider-facing, no auth) ---
	e.POST("/webhook/telegram", webhookHandler.Receive)

	// --- HR case routes ---
	cases := e.Group("/v1/cases", authMiddleware, staffOnly)
	cases.POST("", caseHandler.Create)
	cases.GET("", caseHandler.List)
	cases.GET("/:id", caseHandler.Get)
	cases.PUT("/:id", caseHandler.Edit)
	cases.POST("/:id/complete", caseHandler.Complete)
	cases.POST("/:id/submit", caseHandler.Submit)
	cases.POST("/:id/invite", caseHandler.Invite)

	// --- Administrator decision routes ---
	cases.POST("/:id/approve", approvalHandler.Approve, adminOnly)
	cases.POST("/:id/reject", approvalHandler.Reject, adminOnly)
	e.GET("/v1/approvals", approvalHandler.ListPending, authMiddleware, adminOnly)
	e.GET("/v1/audit", auditHandler.List, authMiddleware, adminOnly)

	// --- Identity administration routes ---
	identities := e.Group("/v1/identities", authMiddleware, staffOnly)
	identities.POST("/:id/lock", identityHandler.Lock, adminOnly)
	identities.POST("/:id/unlock", identityHandler.Unlock, adminOnly)
	identities.POST("/:id/access", identityHandler.GrantAccess)
	identities.DELETE("/:id/access/:zone", identityHandler.RevokeAccess)
	identities.GET("/:id/access", identityHandler.ListAccess)
	identities.GET("/:id/access/:zone", identityHandler.CanAssign)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher
}
