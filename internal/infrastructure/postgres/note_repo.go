package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orayachan/notesapp-backend/internal/domain"
)

const noteColumns = `id, user_id, title, content, tags, is_pinned, is_public, created_at, updated_at`

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	query := `
		INSERT INTO notes (user_id, title, content, tags, is_pinned, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + noteColumns

	row := r.pool.QueryRow(ctx, query,
		note.UserID,
		note.Title,
		note.Content,
		note.Tags,
		note.IsPinned,
		note.IsPublic,
	)
	return scanNote(row)
}

func (r *NoteRepository) FindByID(ctx context.Context, id, userID string) (*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_id = $2`
	return scanNote(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	query := `
		UPDATE notes
		SET    title      = $3,
		       content    = $4,
		       tags       = $5,
		       is_pinned  = $6,
		       is_public  = $7,
		       updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + noteColumns

	row := r.pool.QueryRow(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.Tags,
		note.IsPinned,
		note.IsPublic,
	)
	return scanNote(row)
}

func (r *NoteRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1
		ORDER BY is_pinned DESC, created_at DESC`

	return r.queryNotes(ctx, query, userID)
}

func (r *NoteRepository) Search(ctx context.Context, userID, query string) ([]*domain.Note, error) {
	// Case-insensitive substring match against title, content, or any tag.
	sql := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1
		  AND (title ILIKE '%' || $2 || '%'
		    OR content ILIKE '%' || $2 || '%'
		    OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE '%' || $2 || '%'))
		ORDER BY is_pinned DESC, created_at DESC`

	return r.queryNotes(ctx, sql, userID, query)
}

func (r *NoteRepository) ListAll(ctx context.Context) ([]*domain.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		ORDER BY created_at DESC, is_pinned DESC`

	return r.queryNotes(ctx, query)
}

func (r *NoteRepository) FindPublicByID(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE id = $1 AND user_id = $2 AND is_public = TRUE`

	return scanNote(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *NoteRepository) ListPublicByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1 AND is_public = TRUE
		ORDER BY created_at DESC`

	return r.queryNotes(ctx, query, ownerID)
}

func (r *NoteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]*domain.Note, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	err := row.Scan(
		&n.ID, &n.UserID, &n.Title, &n.Content, &n.Tags,
		&n.IsPinned, &n.IsPublic, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return &n, nil
}
