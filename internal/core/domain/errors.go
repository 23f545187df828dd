package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrUserAlreadyLinked = errors.New("user already linked to a patient")
	ErrForbidden         = errors.New("access forbidden")
)
