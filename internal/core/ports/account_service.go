package ports

import (
	"context"

	"github.com/carehub/patient-portal/internal/core/domain"
)

// AccountService owns registration and authentication rules for users.
type AccountService interface {
	Register(ctx context.Context, user *domain.User) (*domain.User, error)
	// Login reports found=false, with a nil error, for an unknown username or a
	// password mismatch. err is reserved for store failures.
	Login(ctx context.Context, username, password string) (user domain.User, found bool, err error)
	ChangePassword(ctx context.Context, username, newPassword string) (bool, error)
	IssueToken(user domain.User) (string, error)
}

// PasswordEncoder turns a raw password into its stored form and checks a
// candidate against a stored value.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(stored, raw string) bool
}
