package api

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"elec-mate/config"
	"elec-mate/content"
	"elec-mate/services"
)

// Server bundles what the route groups need.
type Server struct {
	Config      *config.Config
	Library     *content.Library
	Store       services.Store
	Assessments *services.AssessmentService
	Drafts      *services.DraftService
	Reviews     *services.ReviewService
	Logger      *zap.Logger

	// NewRand seeds exam question draws. Nil uses a time-seeded PCG.
	NewRand func() *rand.Rand
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// NewRouter wires every route group onto a fresh engine. /health and
// /metrics stay outside the API key check.
func NewRouter(s *Server) *gin.Engine {
	if s.NewRand == nil {
		s.NewRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
		}
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.Logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "drafts": s.Drafts.Len()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/", apiKeyAuthMiddleware(s.Config))
	setupCategoryRoutes(api, s.Library)
	setupCourseRoutes(api, s.Library, s.Store, s.Logger)
	setupGuideRoutes(api, s.Library)
	setupExamRoutes(api, s.Library, s.Store, s.NewRand, s.Logger)
	setupAttemptRoutes(api, s.Store, s.Logger)
	setupCoshhCatalogueRoutes(api)
	setupDraftRoutes(api, s.Drafts, s.Logger)
	setupAssessmentRoutes(api, s.Assessments, s.Reviews, s.Logger)

	return router
}
