package errorvalues

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrProfileNotFound = errors.New("profile doesn't exists")

	ErrActivityNotFound = errors.New("activity doesn't exists")

	ErrWorkoutNotFound = errors.New("workout doesn't exists")
	ErrWrongOwner      = errors.New("entity has different owner")

	ErrDeviceNotFound = errors.New("device doesn't exists")
	ErrDeviceExists   = errors.New("device with such serial number already registered")

	ErrOwnerNotFound = errors.New("owner of entity doesn't exists")
)
