package ports

import (
	"context"

	"github.com/carehub/patient-portal/internal/core/domain"
)

// PatientStore persists Patient records.
type PatientStore interface {
	Save(ctx context.Context, patient *domain.Patient) (*domain.Patient, error)
	// FindByID returns domain.ErrPatientNotFound when no patient matches.
	FindByID(ctx context.Context, id int64) (*domain.Patient, error)
}
