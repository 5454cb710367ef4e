package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Session   *handlers.SessionHandler
	Dashboard *handlers.DashboardHandler
	Branches  *handlers.BranchHandler
	Animals   *handlers.AnimalHandler
	Feedback  *handlers.FeedbackHandler
	Map       *handlers.MapHandler
	Reports   *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(h.Session.Authenticate())

	api.POST("/auth/login", h.Session.Login)
	api.POST("/auth/register", h.Session.Register)
	api.GET("/session", h.Session.Current)
	api.DELETE("/session", h.Session.Logout)
	api.GET("/dashboard", h.Session.RequireUser(), h.Dashboard.Overview)

	branches := api.Group("/branches")
	branches.GET("", h.Branches.List)
	branches.POST("", h.Branches.Create)
	branches.GET("/:id", h.Branches.Get)
	branches.PUT("/:id", h.Branches.Update)
	branches.PATCH("/:id/status", h.Branches.SetStatus)
	branches.DELETE("/:id", h.Branches.Delete)

	animals := api.Group("/animals")
	animals.GET("", h.Animals.List)
	animals.POST("", h.Animals.Create)
	animals.GET("/export", h.Animals.Export)
	animals.GET("/:id", h.Animals.Get)
	animals.PUT("/:id", h.Animals.Update)
	animals.DELETE("/:id", h.Animals.Delete)

	feedback := api.Group("/feedback")
	feedback.GET("", h.Feedback.List)
	feedback.POST("", h.Feedback.Submit)
	feedback.PATCH("/:id/status", h.Feedback.SetStatus)

	views := api.Group("/map/views")
	views.POST("", h.Map.Open)
	views.GET("/:id", h.Map.Get)
	views.DELETE("/:id", h.Map.Close)
	views.POST("/:id/token", h.Map.SubmitToken)
	views.PUT("/:id/filter", h.Map.SetFilter)
	views.POST("/:id/markers/:animalId/toggle", h.Map.ToggleMarker)
	views.GET("/:id/geojson", h.Map.GeoJSON)

	reports := api.Group("/reports")
	reports.GET("/herd", h.Reports.Herd)
	reports.GET("/herd/latest", h.Reports.Latest)
	reports.POST("/herd", h.Session.RequireUser(), h.Reports.Publish)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
