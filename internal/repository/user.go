package repository

import (
	"context"

	"github.com/orayachan/notesapp-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, fullName, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
