package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/outreach-tracker/internal/dto"
	"github.com/octobees/outreach-tracker/internal/schedule"
	"github.com/octobees/outreach-tracker/internal/service"
	"github.com/octobees/outreach-tracker/internal/store"
)

// CompaniesHandler exposes the company catalogue endpoints.
type CompaniesHandler struct {
	service *service.OutreachService
}

// NewCompaniesHandler creates a new handler instance.
func NewCompaniesHandler(service *service.OutreachService) *CompaniesHandler {
	return &CompaniesHandler{service: service}
}

// List handles GET /companies requests.
func (h *CompaniesHandler) List(c echo.Context) error {
	return Success(c, http.StatusOK, "companies retrieved", h.service.Companies())
}

// Get handles GET /companies/:id requests.
func (h *CompaniesHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	company, err := h.service.CompanyByID(id)
	if err != nil {
		return Error(c, http.StatusNotFound, "company not found")
	}
	return Success(c, http.StatusOK, "company retrieved", company)
}

// Create handles POST /companies requests.
func (h *CompaniesHandler) Create(c echo.Context) error {
	var req dto.CompanyInput
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	company, err := h.service.CreateCompany(c.Request().Context(), req)
	if err != nil {
		var verr service.ValidationError
		if errors.As(err, &verr) {
			return Error(c, http.StatusBadRequest, verr.Message)
		}
		return Error(c, http.StatusInternalServerError, "failed to create company")
	}
	return Success(c, http.StatusCreated, "company created", company)
}

// Update handles PUT /companies/:id requests.
func (h *CompaniesHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	var req dto.CompanyInput
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	company, err := h.service.UpdateCompany(c.Request().Context(), id, req)
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return Error(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, store.ErrNotFound):
			return Error(c, http.StatusNotFound, "company not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to update company")
		}
	}
	return Success(c, http.StatusOK, "company updated", company)
}

// Delete handles DELETE /companies/:id requests.
func (h *CompaniesHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	if err := h.service.DeleteCompany(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Error(c, http.StatusNotFound, "company not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete company")
	}
	return Success(c, http.StatusOK, "company deleted", nil)
}

// Status handles GET /companies/:id/status requests.
func (h *CompaniesHandler) Status(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	status, err := h.service.CompanyStatus(id)
	if err != nil {
		return Error(c, http.StatusNotFound, "company not found")
	}
	nextDue, err := h.service.NextDueDate(id)
	if err != nil {
		return Error(c, http.StatusNotFound, "company not found")
	}

	return Success(c, http.StatusOK, "status computed", map[string]any{
		"status":   string(status),
		"next_due": nextDue,
	})
}

// NextDue handles GET /companies/:id/next-due requests.
func (h *CompaniesHandler) NextDue(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	nextDue, err := h.service.NextDueDate(id)
	if err != nil {
		return Error(c, http.StatusNotFound, "company not found")
	}
	return Success(c, http.StatusOK, "next due date computed", map[string]any{"next_due": nextDue})
}

// History handles GET /companies/:id/history requests. The optional
// limit query parameter caps the number of entries, defaulting to five.
func (h *CompaniesHandler) History(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	limit := schedule.DefaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Error(c, http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	history, err := h.service.RecentHistory(id, limit)
	if err != nil {
		return Error(c, http.StatusNotFound, "company not found")
	}
	return Success(c, http.StatusOK, "history retrieved", history)
}
