package boardservice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/starford/crewboard/internal/apperr"
	"github.com/starford/crewboard/internal/board"
	"github.com/starford/crewboard/internal/form"
	"github.com/starford/crewboard/internal/models"
	"github.com/starford/crewboard/internal/roster"
)

type recorder struct {
	mu    sync.Mutex
	kinds []board.Kind
}

func (r *recorder) cb(kind board.Kind, _ *models.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

func (r *recorder) got() []board.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]board.Kind(nil), r.kinds...)
}

func newService(t *testing.T, cb EventCallback) *Service {
	t.Helper()
	c := roster.New(roster.NewCounter(0))
	if err := c.Seed(
		models.Record{ID: 1, Fields: models.Fields{DisplayName: "Bob", Status: models.StatusActive, Budget: "1"}},
		models.Record{ID: 2, Fields: models.Fields{DisplayName: "Amy", Status: models.StatusActive, Budget: "2"}},
	); err != nil {
		t.Fatal(err)
	}
	svc := New(board.New(c, nil), nil, cb)
	t.Cleanup(svc.Close)
	return svc
}

func TestDispatch_AddFlow(t *testing.T) {
	rec := &recorder{}
	svc := newService(t, rec.cb)
	ctx := context.Background()

	for _, a := range []board.Action{
		board.SetField{Name: form.FieldDisplayName, Value: "Cara"},
		board.SetField{Name: form.FieldBudget, Value: "300"},
	} {
		if _, err := svc.Dispatch(ctx, a); err != nil {
			t.Fatalf("Dispatch(%T): %v", a, err)
		}
	}
	res, err := svc.Dispatch(ctx, board.Submit{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Outcome.Kind != board.KindAdded {
		t.Errorf("kind = %q", res.Outcome.Kind)
	}
	if len(res.View.Records) != 3 {
		t.Errorf("records = %d, want 3", len(res.View.Records))
	}
	if res.View.Message != form.MessageAdded {
		t.Errorf("message = %q", res.View.Message)
	}

	if got := rec.got(); len(got) != 1 || got[0] != board.KindAdded {
		t.Errorf("events = %v", got)
	}
}

func TestDispatch_ErrorsPassThrough(t *testing.T) {
	svc := newService(t, nil)
	_, err := svc.Dispatch(context.Background(), board.RequestDelete{ID: 404})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDispatch_BlockedDoesNotNotify(t *testing.T) {
	rec := &recorder{}
	svc := newService(t, rec.cb)
	ctx := context.Background()

	_, _ = svc.Dispatch(ctx, board.SetField{Name: form.FieldBudget, Value: "abc"})
	res, err := svc.Dispatch(ctx, board.Submit{})
	if !errors.Is(err, apperr.ErrBlocked) {
		t.Fatalf("err = %v", err)
	}
	if len(res.View.Records) != 2 {
		t.Errorf("records = %d", len(res.View.Records))
	}
	if res.View.Errors[form.FieldBudget] == "" {
		t.Errorf("errors = %v", res.View.Errors)
	}
	if got := rec.got(); len(got) != 0 {
		t.Errorf("events = %v, want none", got)
	}
}

func TestDispatch_SortEvent(t *testing.T) {
	rec := &recorder{}
	svc := newService(t, rec.cb)
	res, err := svc.Dispatch(context.Background(), board.InvokeSort{})
	if err != nil {
		t.Fatal(err)
	}
	if res.View.Records[0].DisplayName != "Amy" {
		t.Errorf("first = %q", res.View.Records[0].DisplayName)
	}
	if res.View.SortDirection != roster.Descending {
		t.Errorf("next direction = %q", res.View.SortDirection)
	}
	if got := rec.got(); len(got) != 1 || got[0] != board.KindSorted {
		t.Errorf("events = %v", got)
	}
}

func TestSnapshotAndFilter(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	v, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Records) != 2 || v.Draft.Status != models.StatusActive {
		t.Errorf("view = %+v", v)
	}

	recs, err := svc.Filter(ctx, roster.FilterSpec{Budget: "2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].ID != 2 {
		t.Errorf("filter = %+v", recs)
	}
}

func TestConcurrentAdds(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	// Each goroutine submits a record whose draft is staged in the same
	// dispatch sequence; ids must stay unique regardless of interleaving.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Dispatch(ctx, board.SetField{Name: form.FieldBudget, Value: "1"})
			_, _ = svc.Dispatch(ctx, board.Submit{})
		}()
	}
	wg.Wait()

	v, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[int64]bool{}
	for _, r := range v.Records {
		if seen[r.ID] {
			t.Fatalf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestClose(t *testing.T) {
	c := roster.New(roster.NewCounter(0))
	svc := New(board.New(c, nil), nil, nil)
	svc.Close()
	svc.Close()

	if _, err := svc.Snapshot(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestDispatch_ContextCancelled(t *testing.T) {
	svc := newService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context may still win the race against a ready loop; both
	// outcomes are acceptable, but it must not hang.
	done := make(chan struct{})
	go func() {
		_, _ = svc.Snapshot(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Snapshot hung on cancelled context")
	}
}
