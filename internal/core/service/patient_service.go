package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/carehub/patient-portal/internal/core/domain"
	"github.com/carehub/patient-portal/internal/core/ports"
)

// PatientService registers patients. Input is validated by the transport layer.
type PatientService struct {
	store  ports.PatientStore
	logger zerolog.Logger
}

func NewPatientService(store ports.PatientStore, logger zerolog.Logger) *PatientService {
	return &PatientService{store: store, logger: logger}
}

func (s *PatientService) RegisterPatient(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	saved, err := s.store.Save(ctx, patient)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to register patient")
		return nil, err
	}

	s.logger.Info().Int64("patient_id", saved.ID).Msg("patient registered")
	return saved, nil
}
