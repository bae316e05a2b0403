package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/notes/internal/core/domain"
	"github.com/vncsmyrnk/notes/internal/core/ports"
)

type noteService struct {
	repo ports.NoteRepository
}

func NewNoteService(repo ports.NoteRepository) ports.NoteService {
	return &noteService{
		repo: repo,
	}
}

func (s *noteService) Create(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.Content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}

	now := time.Now()
	note := &domain.Note{
		ID:        uuid.New(),
		OwnerID:   input.OwnerID,
		Title:     input.Title,
		Content:   input.Content,
		Archived:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *noteService) ListActive(ctx context.Context, ownerID uuid.UUID) ([]*domain.Note, error) {
	return s.repo.ListActive(ctx, ownerID)
}

func (s *noteService) Edit(ctx context.Context, input ports.EditNoteInput) (*domain.Note, error) {
	note, err := s.repo.GetByID(ctx, input.OwnerID, input.NoteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNoteNotFound
	}

	note.Title = input.Title
	note.Content = input.Content
	note.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *noteService) Archive(ctx context.Context, ownerID, noteID uuid.UUID) (*domain.Note, error) {
	note, err := s.repo.GetByID(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNoteNotFound
	}

	note.Archived = true
	note.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}
