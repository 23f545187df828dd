package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carehub/patient-portal/internal/core/domain"
)

type PatientStore struct {
	pool *pgxpool.Pool
}

func NewPatientStore(pool *pgxpool.Pool) *PatientStore {
	return &PatientStore{pool: pool}
}

func (s *PatientStore) Save(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	saved := *patient

	if patient.ID == 0 {
		const insert = `INSERT INTO patients (name, age, medical_history, user_id)
		                VALUES ($1, $2, $3, $4) RETURNING id`
		err := s.pool.QueryRow(ctx, insert, patient.Name, patient.Age, patient.MedicalHistory, patient.UserID).Scan(&saved.ID)
		if err != nil {
			if isUniqueViolation(err, "patients_user_id_key") {
				return nil, domain.ErrUserAlreadyLinked
			}
			return nil, fmt.Errorf("insert patient: %w", err)
		}
		return &saved, nil
	}

	const update = `UPDATE patients SET name = $2, age = $3, medical_history = $4, user_id = $5 WHERE id = $1`
	tag, err := s.pool.Exec(ctx, update, patient.ID, patient.Name, patient.Age, patient.MedicalHistory, patient.UserID)
	if err != nil {
		if isUniqueViolation(err, "patients_user_id_key") {
			return nil, domain.ErrUserAlreadyLinked
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrPatientNotFound
	}
	return &saved, nil
}

func (s *PatientStore) FindByID(ctx context.Context, id int64) (*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const query = `SELECT id, name, age, medical_history, user_id FROM patients WHERE id = $1`

	var p domain.Patient
	err := s.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Age, &p.MedicalHistory, &p.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return &p, nil
}
