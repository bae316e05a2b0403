package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/notes/internal/core/domain"
	"github.com/vncsmyrnk/notes/internal/core/ports"
)

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) ports.NoteRepository {
	return &noteRepository{
		db: db,
	}
}

func (r *noteRepository) Save(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (id, owner_id, title, content, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.OwnerID, note.Title, note.Content, note.Archived, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (r *noteRepository) ListActive(ctx context.Context, ownerID uuid.UUID) ([]*domain.Note, error) {
	query := `
		SELECT id, owner_id, title, content, archived, created_at, updated_at
		FROM notes
		WHERE owner_id = $1 AND archived = FALSE
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.Archived, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) GetByID(ctx context.Context, ownerID, noteID uuid.UUID) (*domain.Note, error) {
	query := `
		SELECT id, owner_id, title, content, archived, created_at, updated_at
		FROM notes
		WHERE id = $1 AND owner_id = $2
	`
	var note domain.Note
	err := r.db.QueryRowContext(ctx, query, noteID, ownerID).Scan(
		&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.Archived, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	query := `
		UPDATE notes
		SET title = $1, content = $2, archived = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		note.Title, note.Content, note.Archived, note.UpdatedAt, note.ID, note.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}
