package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/notes/internal/core/domain"
)

// NoteRepository scopes every access by owner. The owner id is a mandatory
// argument on each method so a query can never be issued unscoped.
type NoteRepository interface {
	Save(ctx context.Context, note *domain.Note) error
	ListActive(ctx context.Context, ownerID uuid.UUID) ([]*domain.Note, error)
	GetByID(ctx context.Context, ownerID, noteID uuid.UUID) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
}

type CreateNoteInput struct {
	OwnerID uuid.UUID
	Title   string
	Content string
}

type EditNoteInput struct {
	OwnerID uuid.UUID
	NoteID  uuid.UUID
	Title   string
	Content string
}

type NoteService interface {
	Create(ctx context.Context, input CreateNoteInput) (*domain.Note, error)
	ListActive(ctx context.Context, ownerID uuid.UUID) ([]*domain.Note, error)
	Edit(ctx context.Context, input EditNoteInput) (*domain.Note, error)
	Archive(ctx context.Context, ownerID, noteID uuid.UUID) (*domain.Note, error)
}
