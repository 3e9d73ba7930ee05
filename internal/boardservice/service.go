// Package boardservice owns a board state on a single event loop and exposes
// it to concurrent callers (HTTP handlers, MCP tools).
package boardservice

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/starford/crewboard/internal/board"
	"github.com/starford/crewboard/internal/models"
	"github.com/starford/crewboard/internal/roster"
)

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("boardservice: closed")

// EventCallback is called on the loop goroutine after a transition that
// changed the record list. kind is one of record.added, record.updated,
// record.deleted, records.sorted; rec is nil for records.sorted.
type EventCallback func(kind board.Kind, rec *models.Record)

// Result is the outcome of one dispatched action and the state after it.
type Result struct {
	Outcome board.Outcome
	View    board.View
}

type request struct {
	action board.Action
	query  func(board.State)
	resp   chan Result
}

// Service serializes every action through one goroutine that owns the
// state, in the same way a UI event queue would.
type Service struct {
	logger *slog.Logger
	notify EventCallback

	requests chan request
	stopCh   chan struct{}
	stopped  chan struct{}
	closed   atomic.Bool
}

// New starts the loop with initial as its state. logger and cb may be nil.
func New(initial board.State, logger *slog.Logger, cb EventCallback) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		logger:   logger,
		notify:   cb,
		requests: make(chan request),
		stopCh:   make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go s.run(initial)
	return s
}

func (s *Service) run(state board.State) {
	defer close(s.stopped)

	for {
		select {
		case <-s.stopCh:
			return

		case req := <-s.requests:
			if req.query != nil {
				req.query(state)
				req.resp <- Result{}
				continue
			}

			next, out := board.Reduce(state, req.action)
			state = next
			s.log(req.action, out)
			s.fanOut(out)
			req.resp <- Result{Outcome: out, View: state.Snapshot()}
		}
	}
}

func (s *Service) log(a board.Action, out board.Outcome) {
	attrs := []any{slog.String("kind", string(out.Kind))}
	if out.Record != nil {
		attrs = append(attrs, slog.Int64("id", out.Record.ID))
	}
	if out.Err != nil {
		attrs = append(attrs, slog.String("error", out.Err.Error()))
		s.logger.Debug("board: action rejected", append(attrs, slog.String("action", actionName(a)))...)
		return
	}
	s.logger.Debug("board: action applied", append(attrs, slog.String("action", actionName(a)))...)
}

func (s *Service) fanOut(out board.Outcome) {
	if s.notify == nil || out.Err != nil {
		return
	}
	switch out.Kind {
	case board.KindAdded, board.KindUpdated, board.KindDeleted:
		s.notify(out.Kind, out.Record)
	case board.KindSorted:
		s.notify(out.Kind, nil)
	}
}

// Close stops the loop. Pending and later calls return ErrClosed.
func (s *Service) Close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.stopCh)
	}
	<-s.stopped
}

func (s *Service) send(ctx context.Context, req request) (Result, error) {
	if s.closed.Load() {
		return Result{}, ErrClosed
	}
	req.resp = make(chan Result, 1)

	select {
	case s.requests <- req:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-s.stopped:
		return Result{}, ErrClosed
	}

	// Once accepted the loop always answers on the buffered channel.
	return <-req.resp, nil
}

// Dispatch applies a and returns the outcome. The returned error is the
// outcome's error, a context error, or ErrClosed.
func (s *Service) Dispatch(ctx context.Context, a board.Action) (Result, error) {
	res, err := s.send(ctx, request{action: a})
	if err != nil {
		return Result{}, err
	}
	return res, res.Outcome.Err
}

// Snapshot returns the current state as a View.
func (s *Service) Snapshot(ctx context.Context) (board.View, error) {
	var v board.View
	_, err := s.send(ctx, request{query: func(st board.State) { v = st.Snapshot() }})
	return v, err
}

// Filter returns the records matching spec in display order.
func (s *Service) Filter(ctx context.Context, spec roster.FilterSpec) ([]models.Record, error) {
	var out []models.Record
	_, err := s.send(ctx, request{query: func(st board.State) { out = st.Records.Filter(spec) }})
	return out, err
}

func actionName(a board.Action) string {
	switch a.(type) {
	case board.SetField:
		return "set_field"
	case board.BeginEdit:
		return "begin_edit"
	case board.CancelEdit:
		return "cancel_edit"
	case board.Submit:
		return "submit"
	case board.RequestDelete:
		return "request_delete"
	case board.ConfirmDelete:
		return "confirm_delete"
	case board.CancelDelete:
		return "cancel_delete"
	case board.InvokeSort:
		return "invoke_sort"
	case board.DismissMessage:
		return "dismiss_message"
	default:
		return "unknown"
	}
}
