// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/automation-insights/backend/internal/integration/entrypoint/controller"
	"github.com/automation-insights/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	filtersController    *controller.FiltersController
	datePickerController *controller.DatePickerController
	dashboardController  *controller.DashboardController
	rateLimiter          *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	filtersController *controller.FiltersController,
	datePickerController *controller.DatePickerController,
	dashboardController *controller.DashboardController,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		filtersController:    filtersController,
		datePickerController: datePickerController,
		dashboardController:  dashboardController,
		rateLimiter:          rateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")

	// Dashboard routes (require authentication)
	dashboard := v1.Group("/dashboard")
	dashboard.Use(r.authMiddleware.Authenticate())

	// Mutations are rate limited per owner
	limited := r.rateLimiter.Middleware()

	if r.filtersController != nil {
		dashboard.GET("/filters", r.filtersController.GetFilters)
		dashboard.DELETE("/filters", limited, r.filtersController.ResetFilters)
		dashboard.POST("/filters/events", limited, r.filtersController.DispatchEvent)
		dashboard.GET("/filters/params", r.filtersController.GetRequestParams)
		dashboard.GET("/presets", r.filtersController.GetPresets)
		dashboard.GET("/chart-settings", r.filtersController.GetChartSettings)
		dashboard.PUT("/chart-settings", limited, r.filtersController.SaveChartSettings)
	}

	if r.datePickerController != nil {
		picker := dashboard.Group("/date-picker")
		{
			picker.GET("", r.datePickerController.Get)
			picker.POST("/open", limited, r.datePickerController.Open)
			picker.POST("/preset", limited, r.datePickerController.SelectPreset)
			picker.POST("/range", limited, r.datePickerController.SelectRange)
			picker.POST("/close", limited, r.datePickerController.Close)
		}
	}

	if r.dashboardController != nil {
		dashboard.GET("/overview", r.dashboardController.GetOverview)
		dashboard.GET("/filter-options", r.dashboardController.GetFilterOptions)
		dashboard.GET("/detail-url", r.dashboardController.GetDetailURL)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
