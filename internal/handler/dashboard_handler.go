package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/outreach-tracker/internal/notification"
	"github.com/octobees/outreach-tracker/internal/service"
)

// DashboardHandler serves the derived read models: the status grid, the
// notification feed and the reporting endpoints.
type DashboardHandler struct {
	service *service.OutreachService
}

// NewDashboardHandler creates a new handler instance.
func NewDashboardHandler(service *service.OutreachService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Dashboard handles GET /dashboard requests.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	return Success(c, http.StatusOK, "dashboard computed", h.service.Dashboard())
}

// Notifications handles GET /notifications requests. An optional type query
// parameter narrows the feed to overdue, due or upcoming entries.
func (h *DashboardHandler) Notifications(c echo.Context) error {
	feed := h.service.Notifications()

	if raw := strings.TrimSpace(c.QueryParam("type")); raw != "" {
		kind := notification.Type(strings.ToLower(raw))
		if !kind.Valid() {
			return Error(c, http.StatusBadRequest, "invalid notification type")
		}
		feed = notification.Filter(feed, kind)
	}

	return Success(c, http.StatusOK, "notifications computed", map[string]any{
		"count":         len(feed),
		"notifications": feed,
	})
}

// MethodFrequency handles GET /reports/method-frequency requests.
func (h *DashboardHandler) MethodFrequency(c echo.Context) error {
	return Success(c, http.StatusOK, "report computed", h.service.MethodFrequencyReport())
}

// Trends handles GET /reports/trends requests. from and to are inclusive
// YYYY-MM-DD bounds; to defaults to today and from to thirty days before it.
func (h *DashboardHandler) Trends(c echo.Context) error {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if raw := strings.TrimSpace(c.QueryParam("to")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid to date (use YYYY-MM-DD)")
		}
		to = parsed
	}
	if raw := strings.TrimSpace(c.QueryParam("from")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid from date (use YYYY-MM-DD)")
		}
		from = parsed
	}
	if to.Before(from) {
		return Error(c, http.StatusBadRequest, "to must not precede from")
	}

	return Success(c, http.StatusOK, "report computed", h.service.TrendsReport(from, to))
}

// Engagement handles GET /reports/engagement requests.
func (h *DashboardHandler) Engagement(c echo.Context) error {
	return Success(c, http.StatusOK, "report computed", h.service.EngagementReport())
}
