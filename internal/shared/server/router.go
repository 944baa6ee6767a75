package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/recommend"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/users"
)

// RouterDeps carries the handlers mounted under /api.
type RouterDeps struct {
	Config           config.Config
	UserHandler      *users.Handler
	RecommendHandler *recommend.Handler
	RateLimiter      *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", healthHandler)
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.RecommendHandler != nil {
		limit := middleware.RateLimit(middleware.RateLimitConfig{
			Rule:    middleware.RateLimitRule{PerMinute: deps.Config.RecommendRatePerMinute},
			Limiter: deps.RateLimiter,
		})
		deps.RecommendHandler.RegisterRoutes(api, limit)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Route not found", nil)
	})

	return r
}

func healthHandler(c *gin.Context) {
	respond.OK(c, gin.H{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
