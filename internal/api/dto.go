package api

import (
	"github.com/starford/crewboard/internal/board"
	"github.com/starford/crewboard/internal/models"
	"github.com/starford/crewboard/internal/roster"
)

// RecordListResponse is returned by GET /records.
type RecordListResponse struct {
	Records       []models.Record  `json:"records"`
	SortDirection roster.Direction `json:"sortDirection"`
}

// FormResponse describes the draft form.
type FormResponse struct {
	Draft     models.Fields     `json:"draft"`
	Errors    map[string]string `json:"errors"`
	EditingID *int64            `json:"editingId,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// SetFieldRequest is the body of PUT /form/fields/{name}.
type SetFieldRequest struct {
	Value string `json:"value"`
}

// CommitResponse is returned by a successful POST /form/commit.
type CommitResponse struct {
	Record  models.Record `json:"record"`
	Message string        `json:"message"`
}

// DeleteRequestResponse carries the confirmation token for a pending delete.
type DeleteRequestResponse struct {
	Token  board.Token   `json:"token"`
	Record models.Record `json:"record"`
}

// SortResponse is returned by POST /sort.
type SortResponse struct {
	Applied roster.Direction `json:"applied"`
	Next    roster.Direction `json:"next"`
	Records []models.Record  `json:"records"`
}

// MessageResponse carries the one-shot status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// DirectoryResponse lists the read-only users.
type DirectoryResponse struct {
	Members []models.Member `json:"members"`
}

func formResponse(v board.View) FormResponse {
	errs := v.Errors
	if errs == nil {
		errs = map[string]string{}
	}
	return FormResponse{Draft: v.Draft, Errors: errs, EditingID: v.EditingID}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
