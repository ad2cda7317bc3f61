package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/notes-api/internal/apperror"
	"github.com/sakif/notes-api/internal/auth"
	"github.com/sakif/notes-api/internal/model"
	"github.com/sakif/notes-api/internal/service"
)

// NoteHandler serves the note CRUD endpoints. Every route is behind the
// auth middleware, so the identity is always present in context.
type NoteHandler struct {
	notes  *service.NoteService
	logger *slog.Logger
}

// NewNoteHandler creates a NoteHandler.
func NewNoteHandler(notes *service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: logger}
}

type noteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type noteListResponse struct {
	Notes []model.Note `json:"notes"`
}

type noteUpdateResponse struct {
	Message string      `json:"message"`
	Note    *model.Note `json:"note"`
}

// HandleCreate saves a new note owned by the caller.
//
// HTTP: POST /note/create (auth)
// Success: 201, the created note
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	note, err := h.notes.Create(r.Context(), identity.ID, req.Title, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// HandleList returns all of the caller's notes.
//
// HTTP: GET /note/list (auth)
// Success: 200 {"notes": [...]}
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	notes, err := h.notes.List(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteListResponse{Notes: notes})
}

// HandleGet returns a single note if the caller owns it; 404 otherwise,
// whether or not the note exists.
//
// HTTP: GET /note/{id} (auth)
func (h *NoteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	id, err := noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	note, err := h.notes.Get(r.Context(), identity.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleUpdate replaces a note's title and body and stamps edited_at.
//
// HTTP: PUT /note/update/{id} (auth)
// Success: 202 {"message": ..., "note": {...}}
func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	id, err := noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	note, err := h.notes.Update(r.Context(), identity.ID, id, req.Title, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, noteUpdateResponse{
		Message: "note updated successfully",
		Note:    note,
	})
}

// HandleDelete removes a note the caller owns.
//
// HTTP: DELETE /note/delete/{id} (auth)
// Success: 204
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	id, err := noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.notes.Delete(r.Context(), identity.ID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// noteID parses the {id} URL parameter.
func noteID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed("id", "note id must be an integer")
	}
	return id, nil
}
