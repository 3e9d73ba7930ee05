package board

import (
	"fmt"

	"github.com/starford/crewboard/internal/apperr"
	"github.com/starford/crewboard/internal/form"
)

// Reduce applies a to a copy of s and returns the next state.
func Reduce(s State, a Action) (State, Outcome) {
	next := s.Clone()

	switch a := a.(type) {
	case SetField:
		err := next.Form.SetField(a.Name, a.Value)
		return next, Outcome{Kind: KindFieldSet, Err: err}

	case BeginEdit:
		rec, ok := next.Records.Get(a.ID)
		if !ok {
			return s, Outcome{Err: fmt.Errorf("board: edit %d: %w", a.ID, apperr.ErrNotFound)}
		}
		next.Form.BeginEdit(rec)
		return next, Outcome{Kind: KindEditStarted, Record: &rec}

	case CancelEdit:
		next.Form.Reset()
		return next, Outcome{Kind: KindEditCancelled}

	case Submit:
		res := next.Form.Commit(next.Records)
		switch res.Outcome {
		case form.OutcomeAdded:
			next.Message = res.Message
			return next, Outcome{Kind: KindAdded, Record: &res.Record}
		case form.OutcomeUpdated:
			next.Message = res.Message
			return next, Outcome{Kind: KindUpdated, Record: &res.Record}
		case form.OutcomeBlocked:
			// The draft stays as typed.
			return next, Outcome{Kind: KindBlocked, Err: res.Err}
		default:
			return s, Outcome{Err: res.Err}
		}

	case RequestDelete:
		rec, ok := next.Records.Get(a.ID)
		if !ok {
			return s, Outcome{Err: fmt.Errorf("board: delete %d: %w", a.ID, apperr.ErrNotFound)}
		}
		tok := next.tokens()
		next.Pending[tok] = a.ID
		return next, Outcome{Kind: KindDeleteRequested, Record: &rec, Token: tok}

	case ConfirmDelete:
		id, ok := next.Pending[a.Token]
		if !ok {
			return s, Outcome{Err: fmt.Errorf("board: confirm %q: %w", a.Token, apperr.ErrUnknownToken)}
		}
		delete(next.Pending, a.Token)
		rec, _ := next.Records.Get(id)
		if !next.Records.Remove(id) {
			// Removed through another token in the meantime.
			return next, Outcome{Token: a.Token, Err: fmt.Errorf("board: confirm %q: %w", a.Token, apperr.ErrNotFound)}
		}
		purge(next.Pending, id)
		if editing, ok := next.Form.Editing(); ok && editing == id {
			next.Form.Reset()
		}
		next.Message = MessageDeleted
		return next, Outcome{Kind: KindDeleted, Record: &rec, Token: a.Token}

	case CancelDelete:
		if _, ok := next.Pending[a.Token]; !ok {
			return s, Outcome{Err: fmt.Errorf("board: cancel %q: %w", a.Token, apperr.ErrUnknownToken)}
		}
		delete(next.Pending, a.Token)
		return next, Outcome{Kind: KindDeleteCancelled, Token: a.Token}

	case InvokeSort:
		dir := next.Sort.Invoke(next.Records)
		return next, Outcome{Kind: KindSorted, Direction: dir}

	case DismissMessage:
		next.Message = ""
		return next, Outcome{Kind: KindDismissed}

	default:
		return s, Outcome{Err: fmt.Errorf("board: unsupported action %T", a)}
	}
}

// purge drops every pending token that points at id.
func purge(pending map[Token]int64, id int64) {
	for tok, target := range pending {
		if target == id {
			delete(pending, tok)
		}
	}
}
