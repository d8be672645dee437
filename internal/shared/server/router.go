package server

import (
	"github.com/gin-gonic/gin"

	"resume-agent/internal/shared/config"
	"resume-agent/internal/shared/server/middleware"
	"resume-agent/internal/shared/server/respond"
)

// RouteRegistrar attaches a feature's routes to a router group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config       config.Config
	Analyses     RouteRegistrar
	Agent        RouteRegistrar
	Integrations RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	deps.Analyses.RegisterRoutes(api)
	deps.Agent.RegisterRoutes(api)
	deps.Integrations.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
