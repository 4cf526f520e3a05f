package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/orayachan/notesapp-backend/internal/domain"
	"github.com/orayachan/notesapp-backend/internal/repository"
)

// NoteUsecase enforces ownership and visibility on every note operation.
// Owner-scoped calls always pass the principal's user ID into the repository
// filter; a note ID alone is never trusted.
type NoteUsecase struct {
	notes repository.NoteRepository
	users repository.UserRepository
}

func NewNoteUsecase(notes repository.NoteRepository, users repository.UserRepository) *NoteUsecase {
	return &NoteUsecase{notes: notes, users: users}
}

type CreateNoteInput struct {
	Title    string
	Content  string
	Tags     []string
	IsPinned bool
}

func (u *NoteUsecase) Create(ctx context.Context, p domain.Principal, input CreateNoteInput) (*domain.Note, error) {
	if input.Tags == nil {
		input.Tags = []string{}
	}

	note := &domain.Note{
		UserID:   p.UserID,
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
		IsPinned: input.IsPinned,
		IsPublic: false,
	}

	created, err := u.notes.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return created, nil
}

func (u *NoteUsecase) Get(ctx context.Context, p domain.Principal, noteID string) (*domain.Note, error) {
	note, err := u.notes.FindByID(ctx, noteID, p.UserID)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNoteInput carries partial updates. A nil field means "not supplied";
// a non-nil pointer to a zero value (empty tags, pinned=false) is an explicit
// assignment and is applied.
type UpdateNoteInput struct {
	Title    *string
	Content  *string
	Tags     *[]string
	IsPinned *bool
}

func (in UpdateNoteInput) empty() bool {
	return in.Title == nil && in.Content == nil && in.Tags == nil && in.IsPinned == nil
}

// Update applies only the supplied fields. The fetch-apply-save sequence is
// not atomic: two concurrent updates to the same note race last-writer-wins.
func (u *NoteUsecase) Update(ctx context.Context, p domain.Principal, noteID string, input UpdateNoteInput) (*domain.Note, error) {
	if input.empty() {
		return nil, domain.ErrEmptyUpdate
	}

	note, err := u.notes.FindByID(ctx, noteID, p.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}
	if input.Tags != nil {
		note.Tags = *input.Tags
	}
	if input.IsPinned != nil {
		note.IsPinned = *input.IsPinned
	}

	updated, err := u.notes.Update(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return updated, nil
}

func (u *NoteUsecase) SetPinned(ctx context.Context, p domain.Principal, noteID string, pinned bool) (*domain.Note, error) {
	return u.Update(ctx, p, noteID, UpdateNoteInput{IsPinned: &pinned})
}

func (u *NoteUsecase) SetVisibility(ctx context.Context, p domain.Principal, noteID string, public bool) (*domain.Note, error) {
	note, err := u.notes.FindByID(ctx, noteID, p.UserID)
	if err != nil {
		return nil, err
	}

	note.IsPublic = public
	updated, err := u.notes.Update(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("set visibility: %w", err)
	}
	return updated, nil
}

// Delete reports ErrNoteNotFound for a non-owned or absent note; deleting
// nothing is not success.
func (u *NoteUsecase) Delete(ctx context.Context, p domain.Principal, noteID string) error {
	if err := u.notes.Delete(ctx, noteID, p.UserID); err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return domain.ErrNoteNotFound
		}
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (u *NoteUsecase) ListOwn(ctx context.Context, p domain.Principal) ([]*domain.Note, error) {
	notes, err := u.notes.ListByOwner(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// ListAllPinnedFirst is the legacy unscoped listing. It is intentionally not
// owner-filtered and must only be wired to routes that are meant to expose
// every note.
func (u *NoteUsecase) ListAllPinnedFirst(ctx context.Context) ([]*domain.Note, error) {
	notes, err := u.notes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all notes: %w", err)
	}
	return notes, nil
}

func (u *NoteUsecase) Search(ctx context.Context, p domain.Principal, query string) ([]*domain.Note, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	notes, err := u.notes.Search(ctx, p.UserID, query)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	return notes, nil
}

func (u *NoteUsecase) PublicGet(ctx context.Context, ownerID, noteID string) (*domain.Note, error) {
	note, err := u.notes.FindPublicByID(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (u *NoteUsecase) ListPublic(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	notes, err := u.notes.ListPublicByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list public notes: %w", err)
	}
	return notes, nil
}

// PublicProfile exposes only the display fields of a user.
func (u *NoteUsecase) PublicProfile(ctx context.Context, ownerID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
