package board

import (
	"github.com/starford/crewboard/internal/models"
	"github.com/starford/crewboard/internal/roster"
)

// Action is a discrete user interaction fed to Reduce.
type Action interface {
	isAction()
}

// SetField edits one draft field.
type SetField struct {
	Name  string
	Value string
}

// BeginEdit loads the record with ID into the draft.
type BeginEdit struct {
	ID int64
}

// CancelEdit discards the draft and the edit target.
type CancelEdit struct{}

// Submit commits the draft.
type Submit struct{}

// RequestDelete asks for confirmation before removing the record with ID.
type RequestDelete struct {
	ID int64
}

// ConfirmDelete removes the record behind Token.
type ConfirmDelete struct {
	Token Token
}

// CancelDelete drops a pending confirmation without removing anything.
type CancelDelete struct {
	Token Token
}

// InvokeSort sorts by display name and flips the sort toggle.
type InvokeSort struct{}

// DismissMessage clears the status message.
type DismissMessage struct{}

func (SetField) isAction()       {}
func (BeginEdit) isAction()      {}
func (CancelEdit) isAction()     {}
func (Submit) isAction()         {}
func (RequestDelete) isAction()  {}
func (ConfirmDelete) isAction()  {}
func (CancelDelete) isAction()   {}
func (InvokeSort) isAction()     {}
func (DismissMessage) isAction() {}

// Kind names an outcome for logging and event fan-out.
type Kind string

const (
	KindNone            Kind = ""
	KindFieldSet        Kind = "field.set"
	KindEditStarted     Kind = "edit.started"
	KindEditCancelled   Kind = "edit.cancelled"
	KindAdded           Kind = "record.added"
	KindUpdated         Kind = "record.updated"
	KindBlocked         Kind = "commit.blocked"
	KindDeleteRequested Kind = "delete.requested"
	KindDeleted         Kind = "record.deleted"
	KindDeleteCancelled Kind = "delete.cancelled"
	KindSorted          Kind = "records.sorted"
	KindDismissed       Kind = "message.dismissed"
)

// Outcome describes the effect of one transition. Err is set when the action
// was rejected or its input failed validation.
type Outcome struct {
	Kind      Kind
	Record    *models.Record
	Token     Token
	Direction roster.Direction
	Err       error
}
