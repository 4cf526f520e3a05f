package repository

import (
	"context"

	"github.com/orayachan/notesapp-backend/internal/domain"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)

	// FindByID and the mutating methods below are owner-scoped: the
	// filter always includes userID, so a note that exists but belongs
	// to someone else is indistinguishable from one that does not exist.
	FindByID(ctx context.Context, id, userID string) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, id, userID string) error

	ListByOwner(ctx context.Context, userID string) ([]*domain.Note, error)
	Search(ctx context.Context, userID, query string) ([]*domain.Note, error)

	// ListAll is the legacy unscoped listing, ordered by creation time
	// descending then pinned-first. It is not a security boundary.
	ListAll(ctx context.Context) ([]*domain.Note, error)

	FindPublicByID(ctx context.Context, id, ownerID string) (*domain.Note, error)
	ListPublicByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error)
}
