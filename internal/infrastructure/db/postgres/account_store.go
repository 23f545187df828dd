package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carehub/patient-portal/internal/core/domain"
)

type AccountStore struct {
	pool *pgxpool.Pool
}

func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

func (s *AccountStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const query = `SELECT id, username, password, roles FROM users WHERE username = $1`

	var (
		u     domain.User
		roles []string
	)
	err := s.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.Password, &roles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Roles = domain.NewRoleSet(roles...)
	return &u, nil
}

func (s *AccountStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	saved := *user
	roles := user.Roles.Slice()

	if user.IsNew() {
		const insert = `INSERT INTO users (username, password, roles) VALUES ($1, $2, $3) RETURNING id`
		if err := s.pool.QueryRow(ctx, insert, user.Username, user.Password, roles).Scan(&saved.ID); err != nil {
			if isUniqueViolation(err, "users_username_key") {
				return nil, domain.ErrUserExists
			}
			return nil, fmt.Errorf("insert user: %w", err)
		}
		return &saved, nil
	}

	const update = `UPDATE users SET username = $2, password = $3, roles = $4 WHERE id = $1`
	tag, err := s.pool.Exec(ctx, update, user.ID, user.Username, user.Password, roles)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &saved, nil
}
