package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/interview-coach/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	assessmentHandler *Assessment
	health            HealthChecker
}

// HealthChecker reports whether a dependency is reachable
type HealthChecker func() error

// NewRouter creates a new router with all handlers. health may be nil.
func NewRouter(cfg *config.Config, assessmentHandler *Assessment, health HealthChecker) *Router {
	return &Router{
		cfg:               cfg,
		assessmentHandler: assessmentHandler,
		health:            health,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAssessmentRoutes(v1)
}

// setupAssessmentRoutes configures assessment and aggregate routes
func (rt *Router) setupAssessmentRoutes(g *echo.Group) {
	assessments := g.Group("/assessments")
	users := g.Group("/users")
	interviews := g.Group("/interviews")
	questions := g.Group("/questions")

	if rt.assessmentHandler == nil {
		assessments.Any("*", rt.notImplemented)
		users.Any("*", rt.notImplemented)
		interviews.Any("*", rt.notImplemented)
		questions.Any("*", rt.notImplemented)
		return
	}

	assessments.POST("", rt.assessmentHandler.Assess)
	assessments.POST("/batch", rt.assessmentHandler.BatchAssess)
	assessments.GET("/:id", rt.assessmentHandler.GetAssessment)

	users.GET("/:user_id/assessments", rt.assessmentHandler.GetUserHistory)
	users.GET("/:user_id/averages", rt.assessmentHandler.GetUserAverages)
	users.GET("/:user_id/trends", rt.assessmentHandler.GetImprovementTrends)

	interviews.GET("/:interview_id/assessments", rt.assessmentHandler.GetInterviewAssessments)

	questions.GET("/:question_id/assessments", rt.assessmentHandler.GetQuestionAssessments)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	body := map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
		"storage":     rt.cfg.Storage.Driver,
		"time":        time.Now().UTC().Format(time.RFC3339),
	}
	if rt.health != nil {
		if err := rt.health(); err != nil {
			body["status"] = "degraded"
			body["error"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}
	}
	return c.JSON(http.StatusOK, body)
}
