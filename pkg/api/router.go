package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"visitor-registration/pkg/middleware"
)

// VisitorPath is where the form posts registrations
const VisitorPath = "/api/visitor"

// NewRouter wires the handlers into a gin engine
func NewRouter(handlers *Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger, "/health", "/metrics"))
	router.Use(middleware.CORS())

	router.POST(VisitorPath, handlers.HandleVisitor)
	router.OPTIONS(VisitorPath, handlers.Preflight)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoMethod(handlers.MethodNotAllowed)

	return router
}
