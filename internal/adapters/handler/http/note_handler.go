package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/notes/internal/core/domain"
	"github.com/vncsmyrnk/notes/internal/core/ports"
)

type NoteHandler struct {
	service ports.NoteService
	logger  *slog.Logger
}

func NewNoteHandler(service ports.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		logger:  logger,
	}
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updateNoteRequest uses pointers so presence and value can be told apart.
// The body must be either an archive request or an edit request, never both.
type updateNoteRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Archived *bool   `json:"archived"`
}

// CreateNote godoc
// @Summary      Create a note for the authenticated user
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  domain.Note
// @Failure      400
// @Failure      401
// @Router       /notes [post]
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Content == "" {
		http.Error(w, "title and content are required", http.StatusBadRequest)
		return
	}

	note, err := h.service.Create(r.Context(), ports.CreateNoteInput{
		OwnerID: ownerID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("create note failed", "error", err)
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(note); err != nil {
		h.logger.Error("encode note response", "error", err)
	}
}

// ListNotes godoc
// @Summary      List the authenticated user's active notes
// @Description  Non-archived notes only, most recently created first
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Note
// @Failure      401
// @Router       /notes [get]
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	notes, err := h.service.ListActive(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("list notes failed", "error", err)
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}
	if notes == nil {
		notes = []*domain.Note{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(notes); err != nil {
		h.logger.Error("encode notes response", "error", err)
	}
}

// UpdateNote godoc
// @Summary      Edit or archive a note
// @Description  Body is either {"archived": true} or {"title", "content"}; a body mixing both forms is rejected
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Note
// @Failure      400
// @Failure      401
// @Failure      404
// @Router       /notes/{id} [patch]
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var note *domain.Note
	switch {
	case req.Archived != nil && (req.Title != nil || req.Content != nil):
		http.Error(w, "cannot combine archived with title/content", http.StatusBadRequest)
		return
	case req.Archived != nil:
		if !*req.Archived {
			http.Error(w, "no fields to update", http.StatusBadRequest)
			return
		}
		note, err = h.service.Archive(r.Context(), ownerID, noteID)
	case req.Title != nil && req.Content != nil:
		if *req.Title == "" || *req.Content == "" {
			http.Error(w, "title and content are required", http.StatusBadRequest)
			return
		}
		note, err = h.service.Edit(r.Context(), ports.EditNoteInput{
			OwnerID: ownerID,
			NoteID:  noteID,
			Title:   *req.Title,
			Content: *req.Content,
		})
	default:
		http.Error(w, "no fields to update", http.StatusBadRequest)
		return
	}

	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			http.Error(w, domain.ErrNoteNotFound.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("update note failed", "error", err)
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(note); err != nil {
		h.logger.Error("encode note response", "error", err)
	}
}
