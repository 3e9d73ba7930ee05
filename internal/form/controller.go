// Package form implements the draft side of the editable table: field
// staging, validation and commit into a record store.
package form

import (
	"fmt"
	"maps"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/crewboard/internal/apperr"
	"github.com/starford/crewboard/internal/models"
)

// Status messages surfaced after a successful commit.
const (
	MessageAdded   = "User successfully added."
	MessageUpdated = "User successfully updated."
)

// Store is the part of the record collection a commit writes to.
type Store interface {
	Add(f models.Fields) models.Record
	Update(id int64, f models.Fields) (models.Record, error)
}

// Outcome classifies a commit attempt.
type Outcome string

const (
	OutcomeAdded    Outcome = "added"
	OutcomeUpdated  Outcome = "updated"
	OutcomeBlocked  Outcome = "blocked"
	OutcomeNotFound Outcome = "not_found"
)

// CommitResult reports what a commit did. Err is nil for added and updated.
type CommitResult struct {
	Outcome Outcome
	Record  models.Record
	Message string
	Err     error
}

// FieldError is a validation failure on a single draft field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match with errors.Is(err, apperr.ErrValidation).
func (e *FieldError) Unwrap() error {
	return apperr.ErrValidation
}

// Controller holds the draft, its validation errors and the edit target.
type Controller struct {
	draft   models.Fields
	errors  map[string]string
	target  int64
	editing bool
}

// New returns a controller with an empty draft.
func New() *Controller {
	c := &Controller{}
	c.Reset()
	return c
}

// EmptyDraft is the draft state on mount and after every successful commit.
func EmptyDraft() models.Fields {
	return models.Fields{Status: models.StatusActive}
}

// Reset clears the draft, its errors and the edit target.
func (c *Controller) Reset() {
	c.draft = EmptyDraft()
	c.errors = map[string]string{}
	c.target = 0
	c.editing = false
}

// Clone returns an independent copy.
func (c *Controller) Clone() *Controller {
	cp := *c
	cp.errors = maps.Clone(c.errors)
	return &cp
}

// Draft returns the staged fields.
func (c *Controller) Draft() models.Fields {
	return c.draft
}

// Errors returns a copy of the current field errors.
func (c *Controller) Errors() map[string]string {
	return maps.Clone(c.errors)
}

// Valid reports whether no validation error is set.
func (c *Controller) Valid() bool {
	return len(c.errors) == 0
}

// Editing returns the id of the record being edited, if any.
func (c *Controller) Editing() (int64, bool) {
	return c.target, c.editing
}

// SetField stores value in the named field and re-validates that field.
// The draft is updated even when the value is invalid; the returned
// *FieldError is also recorded in Errors.
func (c *Controller) SetField(name, value string) error {
	var checked any = value
	switch name {
	case FieldDisplayName, "name":
		name = FieldDisplayName
		c.draft.DisplayName = value
	case FieldRole:
		c.draft.Role = value
	case FieldProjectName:
		c.draft.ProjectName = value
	case FieldStatus:
		c.draft.Status = models.Status(value)
		checked = c.draft.Status
	case FieldBudget:
		c.draft.Budget = value
	default:
		return fmt.Errorf("form: %q: %w", name, apperr.ErrUnknownField)
	}

	rules, ok := fieldRules[name]
	if !ok {
		return nil
	}
	if err := validation.Validate(checked, rules...); err != nil {
		c.errors[name] = err.Error()
		return &FieldError{Field: name, Message: err.Error()}
	}
	delete(c.errors, name)
	return nil
}

// BeginEdit loads r into the draft and remembers it as the commit target.
func (c *Controller) BeginEdit(r models.Record) {
	c.draft = r.Fields
	c.errors = map[string]string{}
	c.target = r.ID
	c.editing = true
}

// Commit writes the draft to store. A draft with validation errors is left
// untouched and reported as blocked. On success the draft resets.
func (c *Controller) Commit(store Store) CommitResult {
	if err := ValidateFields(c.draft); err != nil {
		maps.Copy(c.errors, Messages(err))
	}
	if !c.Valid() {
		return CommitResult{
			Outcome: OutcomeBlocked,
			Err:     fmt.Errorf("form: %w", apperr.ErrBlocked),
		}
	}

	if c.editing {
		rec, err := store.Update(c.target, c.draft)
		if err != nil {
			return CommitResult{Outcome: OutcomeNotFound, Err: err}
		}
		c.Reset()
		return CommitResult{Outcome: OutcomeUpdated, Record: rec, Message: MessageUpdated}
	}

	rec := store.Add(c.draft)
	c.Reset()
	return CommitResult{Outcome: OutcomeAdded, Record: rec, Message: MessageAdded}
}
