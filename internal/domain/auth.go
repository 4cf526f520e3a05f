package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token is expired")
	ErrTokenInvalid       = errors.New("token is invalid")
)

type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the authenticated identity resolved for a single request.
// It is an immutable value attached to the request context by the auth
// middleware. FullName and Email are denormalized copies fetched at auth
// time; they may lag the stored user record.
type Principal struct {
	UserID   string
	FullName string
	Email    string
}
