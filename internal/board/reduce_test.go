package board

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/crewboard/internal/apperr"
	"github.com/starford/crewboard/internal/form"
	"github.com/starford/crewboard/internal/models"
	"github.com/starford/crewboard/internal/roster"
)

func seqTokens() TokenSource {
	n := 0
	return func() Token {
		n++
		return Token(fmt.Sprintf("tok-%d", n))
	}
}

func newState(t *testing.T, recs ...models.Record) State {
	t.Helper()
	c := roster.New(roster.NewCounter(100))
	if err := c.Seed(recs...); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return New(c, seqTokens())
}

func rec(id int64, name string) models.Record {
	return models.Record{ID: id, Fields: models.Fields{DisplayName: name, Status: models.StatusActive, Budget: "1"}}
}

func mustReduce(t *testing.T, s State, a Action) (State, Outcome) {
	t.Helper()
	next, out := Reduce(s, a)
	if out.Err != nil {
		t.Fatalf("Reduce(%T): %v", a, out.Err)
	}
	return next, out
}

func displayNames(s State) []string {
	var out []string
	for _, r := range s.Records.Records() {
		out = append(out, r.DisplayName)
	}
	return out
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s0 := newState(t, rec(1, "Bob"), rec(2, "Amy"))
	before := s0.Snapshot()

	s1, _ := mustReduce(t, s0, SetField{Name: form.FieldDisplayName, Value: "X"})
	s1, _ = mustReduce(t, s1, SetField{Name: form.FieldBudget, Value: "10"})
	s1, _ = mustReduce(t, s1, Submit{})
	_, _ = mustReduce(t, s1, InvokeSort{})

	if diff := cmp.Diff(before, s0.Snapshot()); diff != "" {
		t.Errorf("input state mutated (-before +after):\n%s", diff)
	}
}

func TestReduce_AddTwo(t *testing.T) {
	s := newState(t)
	for _, in := range []struct{ name, budget string }{{"X", "10"}, {"Y", "20"}} {
		s, _ = mustReduce(t, s, SetField{Name: form.FieldDisplayName, Value: in.name})
		s, _ = mustReduce(t, s, SetField{Name: form.FieldBudget, Value: in.budget})
		var out Outcome
		s, out = mustReduce(t, s, Submit{})
		if out.Kind != KindAdded {
			t.Fatalf("kind = %q", out.Kind)
		}
	}
	recs := s.Records.Records()
	if len(recs) != 2 || recs[0].ID == recs[1].ID {
		t.Fatalf("records = %+v", recs)
	}
	if diff := cmp.Diff([]string{"X", "Y"}, displayNames(s)); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if s.Message != form.MessageAdded {
		t.Errorf("message = %q", s.Message)
	}
}

func TestReduce_BlockedSubmit(t *testing.T) {
	s := newState(t, rec(1, "Bob"))
	s, out := Reduce(s, SetField{Name: form.FieldBudget, Value: "abc"})
	if !errors.Is(out.Err, apperr.ErrValidation) {
		t.Fatalf("SetField err = %v", out.Err)
	}

	s, out = Reduce(s, Submit{})
	if out.Kind != KindBlocked || !errors.Is(out.Err, apperr.ErrBlocked) {
		t.Fatalf("outcome = %+v", out)
	}
	if s.Records.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Records.Len())
	}
	if s.Form.Draft().Budget != "abc" {
		t.Errorf("draft reset on blocked commit: %+v", s.Form.Draft())
	}
	if s.Message != "" {
		t.Errorf("message set on blocked commit: %q", s.Message)
	}
}

func TestReduce_EditRecord7(t *testing.T) {
	s := newState(t, rec(3, "Ann"), rec(7, "Emily"), rec(9, "Zed"))

	s, _ = mustReduce(t, s, BeginEdit{ID: 7})
	if v := s.Snapshot(); v.EditingID == nil || *v.EditingID != 7 {
		t.Fatalf("editing id = %v", v.EditingID)
	}
	s, _ = mustReduce(t, s, SetField{Name: form.FieldRole, Value: "Lead"})
	s, out := mustReduce(t, s, Submit{})
	if out.Kind != KindUpdated {
		t.Fatalf("kind = %q", out.Kind)
	}

	var ids []int64
	count7 := 0
	for _, r := range s.Records.Records() {
		ids = append(ids, r.ID)
		if r.ID == 7 {
			count7++
			if r.Role != "Lead" {
				t.Errorf("role = %q", r.Role)
			}
		}
	}
	if count7 != 1 {
		t.Errorf("records with id 7 = %d", count7)
	}
	if diff := cmp.Diff([]int64{3, 7, 9}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(form.EmptyDraft(), s.Form.Draft()); diff != "" {
		t.Errorf("draft not reset (-want +got):\n%s", diff)
	}
	if s.Message != form.MessageUpdated {
		t.Errorf("message = %q", s.Message)
	}
}

func TestReduce_BeginEditMissing(t *testing.T) {
	s := newState(t, rec(1, "Bob"))
	_, out := Reduce(s, BeginEdit{ID: 99})
	if !errors.Is(out.Err, apperr.ErrNotFound) {
		t.Errorf("err = %v", out.Err)
	}
}

func TestReduce_CancelEdit(t *testing.T) {
	s := newState(t, rec(1, "Bob"))
	s, _ = mustReduce(t, s, BeginEdit{ID: 1})
	s, _ = mustReduce(t, s, CancelEdit{})
	if _, editing := s.Form.Editing(); editing {
		t.Error("still editing after cancel")
	}
}

func TestReduce_TwoStepDelete(t *testing.T) {
	s := newState(t, rec(1, "Bob"), rec(2, "Amy"))

	s, out := mustReduce(t, s, RequestDelete{ID: 1})
	if out.Token == "" {
		t.Fatal("no token returned")
	}
	if s.Records.Len() != 2 {
		t.Fatalf("request alone removed a record")
	}

	s, out = mustReduce(t, s, ConfirmDelete{Token: out.Token})
	if out.Kind != KindDeleted || out.Record.ID != 1 {
		t.Fatalf("outcome = %+v", out)
	}
	if s.Records.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Records.Len())
	}
	if s.Message != MessageDeleted {
		t.Errorf("message = %q", s.Message)
	}
	if len(s.Pending) != 0 {
		t.Errorf("pending not drained: %v", s.Pending)
	}

	_, out = Reduce(s, ConfirmDelete{Token: "tok-1"})
	if !errors.Is(out.Err, apperr.ErrUnknownToken) {
		t.Errorf("reused token err = %v", out.Err)
	}
}

func TestReduce_DeleteRequestMissing(t *testing.T) {
	s := newState(t, rec(1, "Bob"))
	next, out := Reduce(s, RequestDelete{ID: 5})
	if !errors.Is(out.Err, apperr.ErrNotFound) {
		t.Fatalf("err = %v", out.Err)
	}
	if next.Records.Len() != 1 || len(next.Pending) != 0 {
		t.Error("state changed on rejected request")
	}
}

func TestReduce_CancelDelete(t *testing.T) {
	s := newState(t, rec(1, "Bob"))
	s, out := mustReduce(t, s, RequestDelete{ID: 1})
	s, _ = mustReduce(t, s, CancelDelete{Token: out.Token})
	if s.Records.Len() != 1 {
		t.Error("cancel removed the record")
	}
	if _, out = Reduce(s, ConfirmDelete{Token: out.Token}); !errors.Is(out.Err, apperr.ErrUnknownToken) {
		t.Errorf("confirm after cancel err = %v", out.Err)
	}
	if _, out = Reduce(s, CancelDelete{Token: "nope"}); !errors.Is(out.Err, apperr.ErrUnknownToken) {
		t.Errorf("cancel unknown err = %v", out.Err)
	}
}

func TestReduce_DeletingEditedRecordResetsForm(t *testing.T) {
	s := newState(t, rec(1, "Bob"))
	s, _ = mustReduce(t, s, BeginEdit{ID: 1})
	s, out := mustReduce(t, s, RequestDelete{ID: 1})
	s, _ = mustReduce(t, s, ConfirmDelete{Token: out.Token})
	if _, editing := s.Form.Editing(); editing {
		t.Error("form still targets a deleted record")
	}
}

func TestReduce_SortToggle(t *testing.T) {
	s := newState(t, rec(1, "Bob"), rec(2, "Amy"))

	s, out := mustReduce(t, s, InvokeSort{})
	if out.Direction != roster.Ascending {
		t.Errorf("direction = %q", out.Direction)
	}
	if diff := cmp.Diff([]string{"Amy", "Bob"}, displayNames(s)); diff != "" {
		t.Errorf("asc (-want +got):\n%s", diff)
	}

	s, out = mustReduce(t, s, InvokeSort{})
	if out.Direction != roster.Descending {
		t.Errorf("direction = %q", out.Direction)
	}
	if diff := cmp.Diff([]string{"Bob", "Amy"}, displayNames(s)); diff != "" {
		t.Errorf("desc (-want +got):\n%s", diff)
	}
}

func TestReduce_DismissMessage(t *testing.T) {
	s := newState(t, rec(1, "Bob"))
	s, out := mustReduce(t, s, RequestDelete{ID: 1})
	s, _ = mustReduce(t, s, ConfirmDelete{Token: out.Token})
	s, _ = mustReduce(t, s, DismissMessage{})
	if s.Message != "" {
		t.Errorf("message = %q", s.Message)
	}
}

func TestUUIDTokens_Unique(t *testing.T) {
	a, b := UUIDTokens(), UUIDTokens()
	if a == "" || a == b {
		t.Errorf("tokens = %q, %q", a, b)
	}
}
