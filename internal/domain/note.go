package domain

import (
	"errors"
	"time"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrEmptyUpdate  = errors.New("no changes provided")
	ErrEmptyQuery   = errors.New("search query is empty")
)

type Note struct {
	ID       string
	UserID   string
	Title    string
	Content  string
	Tags     []string
	IsPinned bool
	IsPublic bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
