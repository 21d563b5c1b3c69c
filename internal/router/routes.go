package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/outreach-tracker/internal/auth"
	"github.com/octobees/outreach-tracker/internal/config"
	"github.com/octobees/outreach-tracker/internal/handler"
	middlewarepkg "github.com/octobees/outreach-tracker/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth           *handler.AuthHandler
	Users          *handler.UserAdminHandler
	Companies      *handler.CompaniesHandler
	Communications *handler.CommunicationsHandler
	Methods        *handler.MethodsHandler
	Dashboard      *handler.DashboardHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	e.GET("/companies", handlers.Companies.List)
	e.GET("/companies/:id", handlers.Companies.Get)
	e.GET("/companies/:id/status", handlers.Companies.Status)
	e.GET("/companies/:id/next-due", handlers.Companies.NextDue)
	e.GET("/companies/:id/history", handlers.Companies.History)
	e.GET("/methods", handlers.Methods.List)
	e.GET("/dashboard", handlers.Dashboard.Dashboard)
	e.GET("/notifications", handlers.Dashboard.Notifications)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.POST("/companies", handlers.Companies.Create)
	secured.PUT("/companies/:id", handlers.Companies.Update)
	secured.DELETE("/companies/:id", handlers.Companies.Delete)

	secured.POST("/communications", handlers.Communications.Log, middlewarepkg.LogRateLimiter(cfg.RateLimitLog))
	secured.PUT("/communications/:id", handlers.Communications.Update)
	secured.DELETE("/communications/:id", handlers.Communications.Delete)

	secured.GET("/reports/frequency", handlers.Dashboard.MethodFrequency)
	secured.GET("/reports/trends", handlers.Dashboard.Trends)
	secured.GET("/reports/engagement", handlers.Dashboard.Engagement)

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.POST("/methods", handlers.Methods.Create)
	admin.PUT("/methods/reorder", handlers.Methods.Reorder)
	admin.DELETE("/methods/:id", handlers.Methods.Delete)
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.DELETE("/users/:id", handlers.Users.Delete)
}
