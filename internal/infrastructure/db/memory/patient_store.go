package memory

import (
	"context"
	"sync"

	"github.com/carehub/patient-portal/internal/core/domain"
)

type PatientStore struct {
	mu     sync.Mutex
	byID   map[int64]*domain.Patient
	nextID int64
}

func NewPatientStore() *PatientStore {
	return &PatientStore{byID: make(map[int64]*domain.Patient)}
}

func (s *PatientStore) Save(_ context.Context, patient *domain.Patient) (*domain.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := clonePatient(patient)
	if stored.ID != 0 {
		if _, ok := s.byID[stored.ID]; !ok {
			return nil, domain.ErrPatientNotFound
		}
	}
	if stored.UserID != nil {
		for id, p := range s.byID {
			if id != stored.ID && p.UserID != nil && *p.UserID == *stored.UserID {
				return nil, domain.ErrUserAlreadyLinked
			}
		}
	}
	if stored.ID == 0 {
		s.nextID++
		stored.ID = s.nextID
	}
	s.byID[stored.ID] = stored
	return clonePatient(stored), nil
}

func (s *PatientStore) FindByID(_ context.Context, id int64) (*domain.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	return clonePatient(p), nil
}

func clonePatient(p *domain.Patient) *domain.Patient {
	clone := *p
	if p.UserID != nil {
		uid := *p.UserID
		clone.UserID = &uid
	}
	return &clone
}
