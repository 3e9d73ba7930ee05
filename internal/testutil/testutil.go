// Package testutil provides shared helpers for building boards in tests.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/starford/crewboard/internal/board"
	"github.com/starford/crewboard/internal/boardservice"
	"github.com/starford/crewboard/internal/models"
	"github.com/starford/crewboard/internal/roster"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Tokens returns a deterministic token source: tok-1, tok-2, ...
func Tokens() board.TokenSource {
	n := 0
	return func() board.Token {
		n++
		return board.Token(fmt.Sprintf("tok-%d", n))
	}
}

// Record builds a valid record.
func Record(id int64, name string) models.Record {
	return models.Record{ID: id, Fields: models.Fields{
		DisplayName: name,
		Role:        "Engineer",
		ProjectName: "Project " + name,
		Status:      models.StatusActive,
		Budget:      "100",
	}}
}

// Service starts a board service over recs with counter ids starting after
// 1000 and stops it when the test ends.
func Service(t *testing.T, cb boardservice.EventCallback, recs ...models.Record) *boardservice.Service {
	t.Helper()
	c := roster.New(roster.NewCounter(1000))
	if err := c.Seed(recs...); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := boardservice.New(board.New(c, Tokens()), Logger(), cb)
	t.Cleanup(svc.Close)
	return svc
}
