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

// CommunicationsHandler exposes the communication logging endpoints.
type CommunicationsHandler struct {
	service *service.OutreachService
}

// NewCommunicationsHandler creates a new handler instance.
func NewCommunicationsHandler(service *service.OutreachService) *CommunicationsHandler {
	return &CommunicationsHandler{service: service}
}

// Log handles POST /communications requests. One request may target several
// companies at once; each receives its own communication record.
func (h *CommunicationsHandler) Log(c echo.Context) error {
	var req dto.LogCommunicationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	comms, err := h.service.LogCommunication(c.Request().Context(), req)
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return Error(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, store.ErrNotFound):
			return Error(c, http.StatusNotFound, err.Error())
		default:
			return Error(c, http.StatusInternalServerError, "failed to log communication")
		}
	}
	return Success(c, http.StatusCreated, "communication logged", comms)
}

// Update handles PUT /communications/:id requests.
func (h *CommunicationsHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid communication id")
	}

	var req dto.UpdateCommunicationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	comm, err := h.service.UpdateCommunication(c.Request().Context(), id, req)
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return Error(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, store.ErrNotFound):
			return Error(c, http.StatusNotFound, "communication not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to update communication")
		}
	}
	return Success(c, http.StatusOK, "communication updated", comm)
}

// Delete handles DELETE /communications/:id requests.
func (h *CommunicationsHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid communication id")
	}

	if err := h.service.DeleteCommunication(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Error(c, http.StatusNotFound, "communication not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete communication")
	}
	return Success(c, http.StatusOK, "communication deleted", nil)
}
