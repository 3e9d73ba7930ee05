package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/crewboard/internal/apperr"
	"github.com/starford/crewboard/internal/board"
	"github.com/starford/crewboard/internal/boardservice"
	"github.com/starford/crewboard/internal/checksum"
	"github.com/starford/crewboard/internal/directory"
	"github.com/starford/crewboard/internal/models"
	"github.com/starford/crewboard/internal/roster"
)

// Handler holds API route handlers.
type Handler struct {
	svc *boardservice.Service
	dir *directory.Directory
}

// NewHandler creates a new Handler. dir may be nil when the directory is disabled.
func NewHandler(svc *boardservice.Service, dir *directory.Directory) *Handler {
	return &Handler{svc: svc, dir: dir}
}

func recordID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeError maps board errors to HTTP statuses and logs anything unexpected.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrUnknownToken):
		writeJSON(w, http.StatusNotFound, errorBody("unknown or expired delete token"))
	case errors.Is(err, apperr.ErrUnknownField):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, boardservice.ErrClosed):
		writeJSON(w, http.StatusServiceUnavailable, errorBody("board unavailable"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListRecords handles GET /records. Optional query filters: project, budget.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Snapshot(r.Context())
	if err != nil {
		writeError(w, "list records", err)
		return
	}

	q := r.URL.Query()
	recs := view.Records
	if spec := (roster.FilterSpec{ProjectName: q.Get("project"), Budget: q.Get("budget")}); spec != (roster.FilterSpec{}) {
		recs, err = h.svc.Filter(r.Context(), spec)
		if err != nil {
			writeError(w, "filter records", err)
			return
		}
	}

	resp := RecordListResponse{Records: nonNil(recs), SortDirection: view.SortDirection}
	body, err := json.Marshal(resp)
	if err != nil {
		writeError(w, "encode records", err)
		return
	}
	etag := checksum.ETag(body)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(body, '\n'))
}

// GetForm handles GET /form.
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Snapshot(r.Context())
	if err != nil {
		writeError(w, "get form", err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse(view))
}

// SetField handles PUT /form/fields/{name}. An invalid value is still
// staged; the response is 422 and lists the field errors.
func (h *Handler) SetField(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	res, err := h.svc.Dispatch(r.Context(), board.SetField{Name: chi.URLParam(r, "name"), Value: req.Value})
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			resp := formResponse(res.View)
			resp.Error = err.Error()
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
		writeError(w, "set field", err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse(res.View))
}

// BeginEdit handles POST /form/edit/{id}.
func (h *Handler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid record id"))
		return
	}
	res, err := h.svc.Dispatch(r.Context(), board.BeginEdit{ID: id})
	if err != nil {
		writeError(w, "begin edit", err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse(res.View))
}

// CancelEdit handles DELETE /form/edit.
func (h *Handler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Dispatch(r.Context(), board.CancelEdit{})
	if err != nil {
		writeError(w, "cancel edit", err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse(res.View))
}

// Commit handles POST /form/commit: 201 when a record was added, 200 when
// one was updated, 422 when validation blocked the commit.
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Dispatch(r.Context(), board.Submit{})
	if err != nil {
		if errors.Is(err, apperr.ErrBlocked) {
			resp := formResponse(res.View)
			resp.Error = "fix the highlighted fields"
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
		writeError(w, "commit", err)
		return
	}

	status := http.StatusOK
	if res.Outcome.Kind == board.KindAdded {
		status = http.StatusCreated
	}
	writeJSON(w, status, CommitResponse{Record: *res.Outcome.Record, Message: res.View.Message})
}

// RequestDelete handles POST /records/{id}/delete-requests.
func (h *Handler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid record id"))
		return
	}
	res, err := h.svc.Dispatch(r.Context(), board.RequestDelete{ID: id})
	if err != nil {
		writeError(w, "request delete", err)
		return
	}
	writeJSON(w, http.StatusCreated, DeleteRequestResponse{Token: res.Outcome.Token, Record: *res.Outcome.Record})
}

// ConfirmDelete handles POST /delete-requests/{token}.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	tok := board.Token(chi.URLParam(r, "token"))
	if _, err := h.svc.Dispatch(r.Context(), board.ConfirmDelete{Token: tok}); err != nil {
		writeError(w, "confirm delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CancelDelete handles DELETE /delete-requests/{token}.
func (h *Handler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	tok := board.Token(chi.URLParam(r, "token"))
	if _, err := h.svc.Dispatch(r.Context(), board.CancelDelete{Token: tok}); err != nil {
		writeError(w, "cancel delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Sort handles POST /sort.
func (h *Handler) Sort(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Dispatch(r.Context(), board.InvokeSort{})
	if err != nil {
		writeError(w, "sort", err)
		return
	}
	writeJSON(w, http.StatusOK, SortResponse{
		Applied: res.Outcome.Direction,
		Next:    res.View.SortDirection,
		Records: nonNil(res.View.Records),
	})
}

// GetMessage handles GET /message.
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Snapshot(r.Context())
	if err != nil {
		writeError(w, "get message", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: view.Message})
}

// DismissMessage handles DELETE /message.
func (h *Handler) DismissMessage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Dispatch(r.Context(), board.DismissMessage{}); err != nil {
		writeError(w, "dismiss message", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Directory handles GET /directory.
func (h *Handler) Directory(w http.ResponseWriter, _ *http.Request) {
	if h.dir == nil {
		writeJSON(w, http.StatusOK, DirectoryResponse{Members: nonNil[models.Member](nil)})
		return
	}
	writeJSON(w, http.StatusOK, DirectoryResponse{Members: h.dir.Members()})
}
