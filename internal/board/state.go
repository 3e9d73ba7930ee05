// Package board composes the record collection, the form controller and the
// sort toggle into one explicit state value driven by a reducer.
//
// Reduce never mutates the state it is given; every transition works on a
// deep copy and returns it, so a caller can keep or discard either value.
package board

import (
	"maps"

	"github.com/google/uuid"

	"github.com/starford/crewboard/internal/form"
	"github.com/starford/crewboard/internal/models"
	"github.com/starford/crewboard/internal/roster"
)

// MessageDeleted is surfaced after a confirmed delete.
const MessageDeleted = "User successfully deleted."

// Token identifies a pending delete confirmation.
type Token string

// TokenSource mints delete confirmation tokens.
type TokenSource func() Token

// UUIDTokens mints random UUIDv4 tokens.
func UUIDTokens() Token {
	return Token(uuid.NewString())
}

// State is the whole editable-table state.
type State struct {
	Records *roster.Collection
	Form    *form.Controller
	Sort    roster.Toggle
	Message string
	Pending map[Token]int64

	tokens TokenSource
}

// New returns the initial state over records. A nil tokens uses UUIDTokens.
func New(records *roster.Collection, tokens TokenSource) State {
	if tokens == nil {
		tokens = UUIDTokens
	}
	return State{
		Records: records,
		Form:    form.New(),
		Pending: map[Token]int64{},
		tokens:  tokens,
	}
}

// Clone returns a deep copy. The id and token sources are shared.
func (s State) Clone() State {
	cp := s
	if s.Records != nil {
		cp.Records = s.Records.Clone()
	}
	if s.Form != nil {
		cp.Form = s.Form.Clone()
	}
	cp.Pending = maps.Clone(s.Pending)
	if cp.Pending == nil {
		cp.Pending = map[Token]int64{}
	}
	return cp
}

// View is a read-only snapshot suitable for rendering or JSON encoding.
type View struct {
	Records       []models.Record   `json:"records"`
	Draft         models.Fields     `json:"draft"`
	Errors        map[string]string `json:"errors"`
	EditingID     *int64            `json:"editingId,omitempty"`
	SortDirection roster.Direction  `json:"sortDirection"`
	Message       string            `json:"message,omitempty"`
}

// Snapshot renders s as a View.
func (s State) Snapshot() View {
	v := View{
		Records:       s.Records.Records(),
		Draft:         s.Form.Draft(),
		Errors:        s.Form.Errors(),
		SortDirection: s.Sort.Direction(),
		Message:       s.Message,
	}
	if id, ok := s.Form.Editing(); ok {
		v.EditingID = &id
	}
	return v
}
