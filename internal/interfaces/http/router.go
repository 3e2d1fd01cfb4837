// Package http assembles the gin route tree and the HTTP server.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/metrics"
	"github.com/SolBenven/proyecto-final/internal/interfaces/http/handlers"
	"github.com/SolBenven/proyecto-final/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and infrastructure the route tree
// needs.
type RouterConfig struct {
	ClaimHandler        *handlers.ClaimHandler
	AdminHandler        *handlers.AdminHandler
	NotificationHandler *handlers.NotificationHandler
	DepartmentHandler   *handlers.DepartmentHandler
	AnalyticsHandler    *handlers.AnalyticsHandler
	HealthHandler       *handlers.HealthHandler

	Logger   logging.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Mode     string
}

// NewRouter builds the complete route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	gin.SetMode(ginMode(cfg.Mode))
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))

	// Probes and metrics carry no identity.
	r.GET("/healthz", cfg.HealthHandler.Liveness)
	r.GET("/readyz", cfg.HealthHandler.Readiness)
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	api.Use(middleware.Actor())

	claims := api.Group("/claims")
	{
		claims.POST("", cfg.ClaimHandler.Create)
		claims.POST("/similar", cfg.ClaimHandler.Similar)
		claims.GET("/mine", cfg.ClaimHandler.Mine)
		claims.GET("/supported", cfg.ClaimHandler.Supported)
		claims.GET("/:claimID", cfg.ClaimHandler.Get)
		claims.POST("/:claimID/support", cfg.ClaimHandler.Support)
		claims.DELETE("/:claimID/support", cfg.ClaimHandler.Unsupport)
	}

	departments := api.Group("/departments")
	{
		departments.GET("", cfg.DepartmentHandler.List)
		departments.GET("/:departmentID", cfg.DepartmentHandler.Get)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", cfg.NotificationHandler.List)
		notifications.GET("/unread-count", cfg.NotificationHandler.UnreadCount)
		notifications.POST("/:notificationID/read", cfg.NotificationHandler.MarkRead)
		notifications.POST("/read-all", cfg.NotificationHandler.MarkAllRead)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/claims", cfg.AdminHandler.List)
		admin.GET("/claims/:claimID", cfg.AdminHandler.Get)
		admin.PUT("/claims/:claimID/status", cfg.AdminHandler.UpdateStatus)
		admin.POST("/claims/:claimID/transfer", cfg.AdminHandler.Transfer)
		admin.GET("/claims/:claimID/transfer-targets", cfg.AdminHandler.TransferTargets)
		admin.DELETE("/claims/:claimID", cfg.AdminHandler.Delete)
		admin.GET("/claims/:claimID/supporters", cfg.AdminHandler.Supporters)
		admin.GET("/claims/:claimID/history", cfg.AdminHandler.History)
		admin.GET("/claims/:claimID/transfers", cfg.AdminHandler.Transfers)

		admin.GET("/departments", cfg.DepartmentHandler.Visible)

		admin.GET("/analytics/dashboard", cfg.AnalyticsHandler.Dashboard)
		admin.GET("/analytics/departments", cfg.AnalyticsHandler.DepartmentDashboard)
		admin.GET("/analytics/status-breakdown", cfg.AnalyticsHandler.StatusBreakdown)
		admin.GET("/analytics/keywords", cfg.AnalyticsHandler.Keywords)
	}

	return r
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
