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
	collectionUsers = "users"
	sequenceUsers   = "users"
)

type AccountStore struct {
	coll *mongo.Collection
	seq  *sequences
}

func NewAccountStore(db *mongo.Database) *AccountStore {
	return &AccountStore{coll: db.Collection(collectionUsers), seq: newSequences(db)}
}

type mongoUser struct {
	ID       int64    `bson:"_id"`
	Username string   `bson:"username"`
	Password string   `bson:"password"`
	Roles    []string `bson:"roles"`
}

func (s *AccountStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &domain.User{
		ID:       mu.ID,
		Username: mu.Username,
		Password: mu.Password,
		Roles:    domain.NewRoleSet(mu.Roles...),
	}, nil
}

func (s *AccountStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		ID:       user.ID,
		Username: user.Username,
		Password: user.Password,
		Roles:    user.Roles.Slice(),
	}

	if user.IsNew() {
		id, err := s.seq.next(ctx, sequenceUsers)
		if err != nil {
			return nil, err
		}
		doc.ID = id
		if _, err := s.coll.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrUserExists
			}
			return nil, fmt.Errorf("insert user: %w", err)
		}
	} else {
		res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrUserExists
			}
			return nil, fmt.Errorf("replace user: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrUserNotFound
		}
	}

	saved := *user
	saved.ID = doc.ID
	return &saved, nil
}
