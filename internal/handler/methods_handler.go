package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/outreach-tracker/internal/dto"
	"github.com/octobees/outreach-tracker/internal/service"
	"github.com/octobees/outreach-tracker/internal/store"
)

// MethodsHandler exposes the communication method administration endpoints.
type MethodsHandler struct {
	service *service.OutreachService
}

// NewMethodsHandler creates a new handler instance.
func NewMethodsHandler(service *service.OutreachService) *MethodsHandler {
	return &MethodsHandler{service: service}
}

// List handles GET /methods requests.
func (h *MethodsHandler) List(c echo.Context) error {
	return Success(c, http.StatusOK, "methods retrieved", h.service.Methods())
}

// Create handles POST /admin/methods requests.
func (h *MethodsHandler) Create(c echo.Context) error {
	var req dto.MethodInput
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	method, err := h.service.CreateMethod(c.Request().Context(), req)
	if err != nil {
		var verr service.ValidationError
		if errors.As(err, &verr) {
			return Error(c, http.StatusBadRequest, verr.Message)
		}
		return Error(c, http.StatusInternalServerError, "failed to create method")
	}
	return Success(c, http.StatusCreated, "method created", method)
}

// Delete handles DELETE /admin/methods/:id requests.
func (h *MethodsHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid method id")
	}

	if err := h.service.DeleteMethod(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Error(c, http.StatusNotFound, "method not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete method")
	}
	return Success(c, http.StatusOK, "method deleted", nil)
}

// Reorder handles PUT /admin/methods/order requests. The body must list
// every method id exactly once in the desired display order.
func (h *MethodsHandler) Reorder(c echo.Context) error {
	var req dto.ReorderMethodsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	methods, err := h.service.ReorderMethods(c.Request().Context(), req.MethodIDs)
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return Error(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, store.ErrNotFound):
			return Error(c, http.StatusNotFound, "method not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to reorder methods")
		}
	}
	return Success(c, http.StatusOK, "methods reordered", methods)
}
