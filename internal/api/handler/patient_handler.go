package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carehub/patient-portal/internal/api/metrics"
	"github.com/carehub/patient-portal/internal/core/domain"
	"github.com/carehub/patient-portal/internal/core/ports"
)

const msgPatientRegistered = "Patient registration successful!"

// PatientHandler serves the patient registration and dashboard views.
type PatientHandler struct {
	patients  ports.PatientService
	validator *Validator
}

func NewPatientHandler(patients ports.PatientService, validator *Validator) *PatientHandler {
	return &PatientHandler{patients: patients, validator: validator}
}

// ShowRegister presents an empty patient form.
//
// @Summary      Patient registration form
// @Tags         patients
// @Produce      json
// @Success      200  {object}  viewResponse
// @Router       /patient/register [get]
func (h *PatientHandler) ShowRegister(c echo.Context) error {
	return c.JSON(http.StatusOK, viewResponse{View: viewPatientRegistration, Form: patientForm{}})
}

// Register validates the patient form and stores the profile.
//
// @Summary      Register a patient
// @Tags         patients
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Param        name             formData  string   true   "Name (max 50)"
// @Param        age              formData  integer  true   "Age (0-120)"
// @Param        medical_history  formData  string   false  "Medical history (max 500)"
// @Success      201  {object}  viewResponse
// @Failure      400  {object}  viewResponse
// @Failure      422  {object}  viewResponse
// @Router       /patient/register [post]
func (h *PatientHandler) Register(c echo.Context) error {
	var form patientForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, viewResponse{View: viewPatientRegistration, Error: "invalid payload"})
	}

	if fields := h.validator.Check(&form); len(fields) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(viewPatientRegistration).Inc()
		return c.JSON(http.StatusUnprocessableEntity, viewResponse{View: viewPatientRegistration, Errors: fields, Form: form})
	}

	patient, err := h.patients.RegisterPatient(c.Request().Context(), &domain.Patient{
		Name:           form.Name,
		Age:            form.Age,
		MedicalHistory: form.MedicalHistory,
	})
	if err != nil {
		return err
	}
	metrics.PatientsRegisteredTotal.Inc()

	return c.JSON(http.StatusCreated, viewResponse{
		View:    viewPatientRegistration,
		Message: msgPatientRegistered,
		Patient: toPatientResponse(*patient),
	})
}

// Dashboard presents the static patient dashboard.
//
// @Summary      Patient dashboard
// @Tags         patients
// @Produce      json
// @Success      200  {object}  viewResponse
// @Router       /patient/dashboard [get]
func (h *PatientHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, viewResponse{View: viewPatientDashboard})
}

func toPatientResponse(p domain.Patient) *patientResponse {
	return &patientResponse{
		ID:             p.ID,
		Name:           p.Name,
		Age:            p.Age,
		MedicalHistory: p.MedicalHistory,
		UserID:         p.UserID,
	}
}
