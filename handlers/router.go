package handlers

import (
	"log/slog"
	"net/http"

	"rumor-detection/auth"
	"rumor-detection/docs"
	"rumor-detection/middleware"
	"rumor-detection/services"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	AppName    = "Rumor Detection API"
	AppVersion = "1.0.0"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Users      *services.UserService
	Tokens     *auth.TokenManager
	Detections *services.DetectionService
	Stats      *services.StatsService
	Logger     *slog.Logger
}

// Handler serves the REST API.
type Handler struct {
	users      *services.UserService
	tokens     *auth.TokenManager
	detections *services.DetectionService
	stats      *services.StatsService
	log        *slog.Logger
}

func New(d Deps) *Handler {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		users:      d.Users,
		tokens:     d.Tokens,
		detections: d.Detections,
		stats:      d.Stats,
		log:        log,
	}
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	registerValidators()
	h := New(d)

	r := gin.New()
	r.Use(middleware.RequestLogger(h.log), gin.Recovery())

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	docs.SwaggerInfo.BasePath = "/api/v1"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	requireAuth := middleware.RequireAuth(h.tokens, h.users)

	v1 := r.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", requireAuth, h.Logout)

		users := v1.Group("/users", requireAuth)
		users.GET("/me", h.GetMe)
		users.PUT("/me", h.UpdateMe)
		users.PUT("/me/password", h.UpdatePassword)

		detection := v1.Group("/detection", requireAuth)
		detection.POST("/single", h.DetectSingle)
		detection.POST("/batch", h.DetectBatch)
		detection.GET("/:id", h.GetDetection)
		detection.GET("/:id/analysis", h.GetDetectionAnalysis)
		detection.GET("/:id/propagation", h.GetPropagation)

		history := v1.Group("/history", requireAuth)
		history.GET("", h.ListHistory)
		history.GET("/stats", h.HistoryStats)
		history.DELETE("/batch", h.DeleteHistoryBatch)
		history.DELETE("/:id", h.DeleteHistoryItem)

		analysis := v1.Group("/analysis", requireAuth)
		analysis.GET("/overview", h.Overview)
		analysis.GET("/trend", h.Trend)
		analysis.GET("/category", h.Categories)
		analysis.GET("/keywords", h.Keywords)
		analysis.GET("/risk-distribution", h.RiskDistribution)
	}

	return r
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": AppVersion})
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    AppName,
		"version": AppVersion,
		"docs":    "/swagger/index.html",
	})
}
