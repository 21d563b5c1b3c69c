package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/outreach-tracker/internal/dto"
	"github.com/octobees/outreach-tracker/internal/entity"
	"github.com/octobees/outreach-tracker/internal/service"
	"github.com/octobees/outreach-tracker/internal/store"
)

var (
	fixtureCompanyID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	fixtureMethodID  = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
)

func fixtureService() *service.OutreachService {
	snap := store.Snapshot{
		Companies: []entity.Company{
			{ID: fixtureCompanyID, Name: "Acme", Periodicity: 14},
		},
		Methods: []entity.CommunicationMethod{
			{ID: fixtureMethodID, Name: "Email", Sequence: 1},
		},
	}
	return service.NewOutreachService(snap, nil, nil)
}

func TestCompaniesHandler_List(t *testing.T) {
	handler := NewCompaniesHandler(fixtureService())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/companies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Status != "success" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCompaniesHandler_Get(t *testing.T) {
	handler := NewCompaniesHandler(fixtureService())
	e := echo.New()

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/invalid", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("invalid")

		_ = handler.Get(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(uuid.NewString())

		_ = handler.Get(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/"+fixtureCompanyID.String(), nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(fixtureCompanyID.String())

		if err := handler.Get(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestCompaniesHandler_Create(t *testing.T) {
	handler := NewCompaniesHandler(fixtureService())
	e := echo.New()

	t.Run("invalid payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewBufferString("{"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Create(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		body, _ := json.Marshal(dto.CompanyInput{Name: "NoPeriod"})
		req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Create(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(dto.CompanyInput{Name: "Globex", Periodicity: 30})
		req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.Create(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	})
}

func TestCompaniesHandler_Update(t *testing.T) {
	handler := NewCompaniesHandler(fixtureService())
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		body, _ := json.Marshal(dto.CompanyInput{Name: "Ghost", Periodicity: 7})
		req := httptest.NewRequest(http.MethodPut, "/companies/"+uuid.NewString(), bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(uuid.NewString())

		_ = handler.Update(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(dto.CompanyInput{Name: "Acme Renamed", Periodicity: 21})
		req := httptest.NewRequest(http.MethodPut, "/companies/"+fixtureCompanyID.String(), bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(fixtureCompanyID.String())

		if err := handler.Update(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestCompaniesHandler_Delete(t *testing.T) {
	handler := NewCompaniesHandler(fixtureService())
	e := echo.New()

	req := httptest.NewRequest(http.MethodDelete, "/companies/"+fixtureCompanyID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fixtureCompanyID.String())

	if err := handler.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// second delete hits a missing company
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fixtureCompanyID.String())
	_ = handler.Delete(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCompaniesHandler_Status(t *testing.T) {
	handler := NewCompaniesHandler(fixtureService())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/companies/"+fixtureCompanyID.String()+"/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fixtureCompanyID.String())

	if err := handler.Status(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// A company with no history is always overdue.
	if payload.Data.Status != "overdue" {
		t.Fatalf("expected overdue status, got %q", payload.Data.Status)
	}
}

func TestCompaniesHandler_History(t *testing.T) {
	handler := NewCompaniesHandler(fixtureService())
	e := echo.New()

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/"+fixtureCompanyID.String()+"/history?limit=abc", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(fixtureCompanyID.String())

		_ = handler.History(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/"+fixtureCompanyID.String()+"/history", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(fixtureCompanyID.String())

		if err := handler.History(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
