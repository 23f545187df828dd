package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/carehub/patient-portal/internal/core/domain"
)

var discardLogger = zerolog.Nop()

type stubPatientStore struct {
	patients map[int64]*domain.Patient
	nextID   int64
	saveErr  error
}

func newStubPatientStore() *stubPatientStore {
	return &stubPatientStore{patients: make(map[int64]*domain.Patient)}
}

func (r *stubPatientStore) Save(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	clone := *p
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	}
	r.patients[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPatientStore) FindByID(_ context.Context, id int64) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	clone := *p
	return &clone, nil
}

func TestPatientService_RegisterPatient_Persists(t *testing.T) {
	store := newStubPatientStore()
	svc := NewPatientService(store, discardLogger)

	saved, err := svc.RegisterPatient(context.Background(), &domain.Patient{Name: "Bob", Age: 30})
	if err != nil {
		t.Fatalf("register patient: %v", err)
	}
	if saved.ID == 0 {
		t.Fatalf("expected generated id")
	}

	got, err := store.FindByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "Bob" || got.Age != 30 || got.MedicalHistory != "" || got.UserID != nil {
		t.Fatalf("unexpected patient: %+v", got)
	}
}

func TestPatientService_RegisterPatient_StoreFailure(t *testing.T) {
	store := newStubPatientStore()
	store.saveErr = errors.New("disk full")
	svc := NewPatientService(store, discardLogger)

	if _, err := svc.RegisterPatient(context.Background(), &domain.Patient{Name: "Bob"}); err == nil {
		t.Fatalf("expected store error")
	}
}
