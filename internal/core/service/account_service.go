package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/carehub/patient-portal/internal/core/domain"
	"github.com/carehub/patient-portal/internal/core/ports"
)

// AccountService implements registration, login and password changes.
type AccountService struct {
	store     ports.AccountStore
	passwords ports.PasswordEncoder
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAccountService(
	store ports.AccountStore,
	passwords ports.PasswordEncoder,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if passwords == nil {
		passwords = PlainPasswords{}
	}
	return &AccountService{
		store:     store,
		passwords: passwords,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register persists user as given. Roles are expected to be set by the caller;
// username uniqueness is left to the store.
func (s *AccountService) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	encoded, err := s.passwords.Encode(user.Password)
	if err != nil {
		return nil, fmt.Errorf("register: encode password: %w", err)
	}

	toSave := *user
	toSave.Password = encoded

	saved, err := s.store.Save(ctx, &toSave)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", saved.ID).Str("username", saved.Username).Strs("roles", saved.Roles.Slice()).Msg("user registered")
	return saved, nil
}

func (s *AccountService) Login(ctx context.Context, username, password string) (domain.User, bool, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Str("username", username).Msg("login rejected")
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}

	if !s.passwords.Matches(user.Password, password) {
		s.logger.Debug().Str("username", username).Msg("login rejected")
		return domain.User{}, false, nil
	}

	return *user, true, nil
}

// ChangePassword overwrites the password of username without checking the old one.
func (s *AccountService) ChangePassword(ctx context.Context, username, newPassword string) (bool, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	encoded, err := s.passwords.Encode(newPassword)
	if err != nil {
		return false, fmt.Errorf("change password: encode password: %w", err)
	}
	user.Password = encoded

	if _, err := s.store.Save(ctx, user); err != nil {
		return false, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("password changed")
	return true, nil
}

// IssueToken signs a session token carrying the username and roles.
func (s *AccountService) IssueToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", user.ID),
		"username": user.Username,
		"roles":    user.Roles.Slice(),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
