package service

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/carehub/patient-portal/internal/core/ports"
)

const (
	PasswordSchemePlain  = "plain"
	PasswordSchemeBcrypt = "bcrypt"
)

// PlainPasswords stores passwords as typed and compares them byte for byte.
// It keeps existing plaintext rows readable; prefer BcryptPasswords for new
// deployments.
type PlainPasswords struct{}

func (PlainPasswords) Encode(raw string) (string, error) {
	return raw, nil
}

func (PlainPasswords) Matches(stored, raw string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(raw)) == 1
}

// BcryptPasswords stores bcrypt hashes.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Encode(raw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptPasswords) Matches(stored, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw)) == nil
}

// NewPasswordEncoder returns the encoder for scheme.
func NewPasswordEncoder(scheme string) (ports.PasswordEncoder, error) {
	switch scheme {
	case "", PasswordSchemePlain:
		return PlainPasswords{}, nil
	case PasswordSchemeBcrypt:
		return BcryptPasswords{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
