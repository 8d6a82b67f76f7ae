package services

import "errors"

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrModelUnavailable   = errors.New("model not loaded on server")
	ErrInference          = errors.New("model prediction failed")
)
