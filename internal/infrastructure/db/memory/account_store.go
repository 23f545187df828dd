// Package memory provides mutex-guarded in-process stores. They back the
// "memory" store driver and the end-to-end router tests.
package memory

import (
	"context"
	"sync"

	"github.com/carehub/patient-portal/internal/core/domain"
)

type AccountStore struct {
	mu     sync.Mutex
	byName map[string]*domain.User
	nextID int64
}

func NewAccountStore() *AccountStore {
	return &AccountStore{byName: make(map[string]*domain.User)}
}

func (s *AccountStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// Save mirrors the relational store: inserts enforce a unique username,
// updates match on ID.
func (s *AccountStore) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.IsNew() {
		if _, exists := s.byName[user.Username]; exists {
			return nil, domain.ErrUserExists
		}
		s.nextID++
		stored := cloneUser(user)
		stored.ID = s.nextID
		s.byName[stored.Username] = stored
		return cloneUser(stored), nil
	}

	for name, existing := range s.byName {
		if existing.ID != user.ID {
			continue
		}
		if name != user.Username {
			if _, taken := s.byName[user.Username]; taken {
				return nil, domain.ErrUserExists
			}
			delete(s.byName, name)
		}
		stored := cloneUser(user)
		s.byName[stored.Username] = stored
		return cloneUser(stored), nil
	}
	return nil, domain.ErrUserNotFound
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Roles = domain.NewRoleSet(u.Roles.Slice()...)
	return &clone
}
