package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carehub/patient-portal/internal/core/domain"
)

const (
	collectionPatients = "patients"
	sequencePatients   = "patients"
)

type PatientStore struct {
	coll *mongo.Collection
	seq  *sequences
}

func NewPatientStore(db *mongo.Database) *PatientStore {
	return &PatientStore{coll: db.Collection(collectionPatients), seq: newSequences(db)}
}

type mongoPatient struct {
	ID             int64  `bson:"_id"`
	Name           string `bson:"name"`
	Age            int    `bson:"age"`
	MedicalHistory string `bson:"medical_history"`
	UserID         *int64 `bson:"user_id,omitempty"`
}

func (s *PatientStore) Save(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPatient{
		ID:             patient.ID,
		Name:           patient.Name,
		Age:            patient.Age,
		MedicalHistory: patient.MedicalHistory,
		UserID:         patient.UserID,
	}

	if doc.ID == 0 {
		id, err := s.seq.next(ctx, sequencePatients)
		if err != nil {
			return nil, err
		}
		doc.ID = id
		if _, err := s.coll.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrUserAlreadyLinked
			}
			return nil, fmt.Errorf("insert patient: %w", err)
		}
	} else {
		res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrUserAlreadyLinked
			}
			return nil, fmt.Errorf("replace patient: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrPatientNotFound
		}
	}

	saved := *patient
	saved.ID = doc.ID
	return &saved, nil
}

func (s *PatientStore) FindByID(ctx context.Context, id int64) (*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPatient
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}

	return &domain.Patient{
		ID:             mp.ID,
		Name:           mp.Name,
		Age:            mp.Age,
		MedicalHistory: mp.MedicalHistory,
		UserID:         mp.UserID,
	}, nil
}
