package server

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/answers"
	"docqa-backend/internal/documents"
	"docqa-backend/internal/services/health"
	"docqa-backend/internal/shared/config"
	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/server/middleware"
	"docqa-backend/internal/shared/server/respond"
	"docqa-backend/internal/summaries"
)

const capabilityRateGroup = "CAPABILITY"

// RouterDeps holds handlers required to build the router.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	AnswerHandler   *answers.Handler
	SummaryHandler  *summaries.Handler
	Health          *health.Service
	Limiter         *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	if rps := deps.Config.RateLimitRPS; rps > 0 {
		burst := deps.Config.RateLimitBurst
		if burst <= 0 {
			burst = int(math.Max(1, math.Ceil(rps)))
		}
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:  deps.Limiter,
			GroupFor: groupFor,
			Rules: map[string]middleware.RateLimitRule{
				capabilityRateGroup: {Rate: rps, Burst: burst},
			},
		}))
	}

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}
	r.GET("/health", func(c *gin.Context) {
		if c.Query("deep") == "" {
			respond.OK(c, healthSvc.Status())
			return
		}
		ok, checks := healthSvc.Deep(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, gin.H{"ok": ok, "checks": checks})
	})
	r.GET("/metrics", metrics.Handler())

	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(r)
	}
	if deps.AnswerHandler != nil {
		deps.AnswerHandler.RegisterRoutes(r)
	}
	if deps.SummaryHandler != nil {
		deps.SummaryHandler.RegisterRoutes(r)
	}

	return r
}

func groupFor(c *gin.Context) string {
	switch c.FullPath() {
	case "/ask", "/download_summary":
		return capabilityRateGroup
	default:
		return ""
	}
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
