package ports

import (
	"context"

	"github.com/carehub/patient-portal/internal/core/domain"
)

// PatientService owns registration rules for patients.
type PatientService interface {
	RegisterPatient(ctx context.Context, patient *domain.Patient) (*domain.Patient, error)
}
