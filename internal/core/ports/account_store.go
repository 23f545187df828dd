package ports

import (
	"context"

	"github.com/carehub/patient-portal/internal/core/domain"
)

// AccountStore persists User records.
type AccountStore interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Save inserts the user when it has no ID yet, otherwise updates it in place.
	// A username collision on insert yields domain.ErrUserExists.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
