package router

import (
	"net/http"
	"time"

	"paygate/config"
	"paygate/internal/domain"
	"paygate/internal/handler"
	"paygate/internal/middleware"
	"paygate/internal/repository"
	"paygate/internal/service"
	"paygate/internal/ws"
	"paygate/pkg/paypal"
	"paygate/pkg/paypal/ipn"
	"paygate/pkg/paypal/nvp"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Setup wires storage, the event fan-out and both PayPal integrations behind
// one gin engine. transport is shared by NVP calls and IPN postbacks.
func Setup(cfg *config.Config, db *gorm.DB, log zerolog.Logger, transport paypal.Transport) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// Repositories
	operatorRepo := repository.NewOperatorRepository(db)
	nvpRepo := repository.NewNVPRepository(db)
	ipnRepo := repository.NewIPNRepository(db)
	eventRepo := repository.NewEventRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	hub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(&cfg.JWT, operatorRepo)
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath, cfg.Firebase.AlertTopic, log)
	if fcmSvc != nil {
		log.Info().Str("topic", cfg.Firebase.AlertTopic).Msg("[FCM] alert pushes enabled")
	} else if cfg.Firebase.ServiceAccountPath != "" {
		log.Warn().Msg("[FCM] alert pushes disabled: failed to init (check service account file)")
	} else {
		log.Info().Msg("[FCM] alert pushes disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	events := service.NewEventService(eventRepo, hub, fcmSvc, cfg.Firebase.AlertEvents, log)

	nvpLog := log.With().Str("component", "nvp").Logger()
	client := nvp.NewClient(nvp.Config{
		Credentials: paypal.Credentials{
			User:      cfg.PayPal.User,
			Password:  cfg.PayPal.Password,
			Signature: cfg.PayPal.Signature,
		},
		Sandbox:  cfg.PayPal.Sandbox,
		Endpoint: cfg.PayPal.Endpoint,
		Version:  cfg.PayPal.Version,
		Debug:    cfg.PayPal.Debug,
		Logger:   &nvpLog,
	}, transport, nvpRepo, events)

	ipnLog := log.With().Str("component", "ipn").Logger()
	listener := ipn.NewListener(ipn.Config{
		ReceiverEmail:           cfg.IPN.ReceiverEmail,
		PostbackEndpoint:        cfg.IPN.PostbackEndpoint,
		SandboxPostbackEndpoint: cfg.IPN.SandboxPostbackEndpoint,
		Logger:                  &ipnLog,
	}, transport, ipnRepo, events)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, auditRepo, log)
	nvpHandler := handler.NewNVPHandler(client, auditRepo, log)
	ipnHandler := handler.NewIPNHandler(listener, log)
	recordsHandler := handler.NewRecordsHandler(nvpRepo, ipnRepo, eventRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	callerMw := middleware.RequireRole(domain.RoleAdmin, domain.RoleOperator)
	limiter := middleware.NewInMemoryRateLimiter(cfg.Server.RateLimit, time.Minute)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sandbox": cfg.PayPal.Sandbox})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/ipn", middleware.RateLimit(limiter), ipnHandler.Handle)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", middleware.RateLimit(limiter), authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
		}

		nvpGroup := api.Group("/nvp")
		nvpGroup.Use(authMw)
		{
			nvpGroup.GET("/transactions", recordsHandler.ListTransactions)
			nvpGroup.GET("/transactions/:id", recordsHandler.GetTransaction)
			nvpGroup.POST("/:method", callerMw, nvpHandler.Call)
		}

		api.POST("/recurring/:profile_id/status", authMw, callerMw, nvpHandler.ProfileStatus)

		ipnGroup := api.Group("/ipn")
		ipnGroup.Use(authMw)
		{
			ipnGroup.GET("/notifications", recordsHandler.ListNotifications)
			ipnGroup.GET("/notifications/:id", recordsHandler.GetNotification)
		}

		api.GET("/events", authMw, recordsHandler.ListEvents)
	}

	r.GET("/ws/events", ws.UpgradeEventStream(&cfg.JWT, hub, log))

	return r
}
