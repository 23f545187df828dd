package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carehub/patient-portal/internal/core/domain"
)

type stubPatientService struct {
	registerFn func(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
}

func (s *stubPatientService) RegisterPatient(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	return s.registerFn(ctx, p)
}

func rejectingPatientService(t *testing.T) *stubPatientService {
	return &stubPatientService{
		registerFn: func(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
			t.Fatalf("service must not be called for invalid input")
			return nil, nil
		},
	}
}

func TestPatientHandler_Register_Success(t *testing.T) {
	e := echo.New()
	stub := &stubPatientService{
		registerFn: func(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
			if p.Name != "Bob" || p.Age != 30 || p.MedicalHistory != "" || p.UserID != nil {
				t.Fatalf("unexpected patient: %+v", p)
			}
			saved := *p
			saved.ID = 11
			return &saved, nil
		},
	}
	h := NewPatientHandler(stub, NewValidator())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/patient/register", url.Values{"name": {"Bob"}, "age": {"30"}, "medical_history": {""}}), rec)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeView(t, rec)
	if resp.Message != msgPatientRegistered || resp.Patient == nil || resp.Patient.ID != 11 || resp.Patient.Name != "Bob" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPatientHandler_Register_AgeBoundaries(t *testing.T) {
	e := echo.New()

	for _, age := range []string{"0", "120"} {
		stub := &stubPatientService{
			registerFn: func(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
				return p, nil
			},
		}
		h := NewPatientHandler(stub, NewValidator())
		rec := httptest.NewRecorder()
		c := e.NewContext(formRequest(http.MethodPost, "/patient/register", url.Values{"name": {"Bob"}, "age": {age}}), rec)
		if err := h.Register(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("age %s: expected 201, got %d", age, rec.Code)
		}
	}

	for _, age := range []string{"-1", "121"} {
		h := NewPatientHandler(rejectingPatientService(t), NewValidator())
		rec := httptest.NewRecorder()
		c := e.NewContext(formRequest(http.MethodPost, "/patient/register", url.Values{"name": {"Bob"}, "age": {age}}), rec)
		if err := h.Register(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("age %s: expected 422, got %d", age, rec.Code)
		}
		resp := decodeView(t, rec)
		if len(resp.Errors) != 1 || resp.Errors[0].Field != "age" {
			t.Fatalf("age %s: unexpected errors %+v", age, resp.Errors)
		}
	}
}

func TestPatientHandler_Register_MedicalHistoryTooLong(t *testing.T) {
	e := echo.New()
	h := NewPatientHandler(rejectingPatientService(t), NewValidator())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/patient/register", url.Values{
		"name":            {"Bob"},
		"age":             {"30"},
		"medical_history": {strings.Repeat("h", 501)},
	}), rec)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestPatientHandler_Register_NonNumericAge(t *testing.T) {
	e := echo.New()
	h := NewPatientHandler(rejectingPatientService(t), NewValidator())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/patient/register", url.Values{"name": {"Bob"}, "age": {"old"}}), rec)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPatientHandler_ShowRegisterAndDashboard(t *testing.T) {
	e := echo.New()
	h := NewPatientHandler(rejectingPatientService(t), NewValidator())

	rec := httptest.NewRecorder()
	if err := h.ShowRegister(e.NewContext(httptest.NewRequest(http.MethodGet, "/patient/register", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || decodeView(t, rec).View != viewPatientRegistration {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	if err := h.Dashboard(e.NewContext(httptest.NewRequest(http.MethodGet, "/patient/dashboard", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || decodeView(t, rec).View != viewPatientDashboard {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}
