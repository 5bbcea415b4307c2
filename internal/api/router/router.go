package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/config"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/api/handler"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/api/middleware"
)

// Setup builds the Gin engine. limiter may be nil, which disables rate limiting.
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.Logger(logger, "/health"))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// mutating routes share one limiter
	limit := middleware.RateLimit(limiter, cfg.Server.RateLimit.Limit, cfg.Server.RateLimit.Window)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		stages := v1.Group("/stages")
		{
			stages.GET("", h.Stage.ListStages)
			stages.GET("/match", h.Stage.MatchStage)
			stages.GET("/:id", h.Stage.GetStage)
			stages.GET("/:id/stats", h.Stage.GetStageStats)
			stages.POST("", limit, h.Stage.CreateStage)
			stages.PUT("/:id", limit, h.Stage.UpdateStage)
			stages.DELETE("/:id", limit, h.Stage.DeleteStage)
		}

		notes := v1.Group("/notes")
		{
			notes.GET("", h.Note.ListNotes)
			notes.POST("", limit, h.Note.SaveNote)
			notes.DELETE("/:id", limit, h.Note.DeleteNote)
		}

		evaluations := v1.Group("/evaluations")
		{
			evaluations.GET("", h.Evaluation.ListEvaluations)
			evaluations.POST("", limit, h.Evaluation.CreateEvaluation)
		}

		v1.GET("/stats", h.Stats.GetStats)
		v1.GET("/working-days", h.Stats.WorkingDays)

		export := v1.Group("/export")
		{
			export.GET("/journal", h.Export.ExportJournal)
			export.GET("/stages.ics", h.Export.ExportStagesICS)
		}
	}

	return r
}
