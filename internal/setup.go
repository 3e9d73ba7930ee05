package internal

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/language"

	"github.com/starford/crewboard/internal/board"
	"github.com/starford/crewboard/internal/models"
	"github.com/starford/crewboard/internal/roster"
	"github.com/starford/crewboard/internal/seed"
)

// newBoard builds the initial board state from the board configuration.
func newBoard(cfg BoardConfig) (board.State, []models.Record, error) {
	rows := seed.Default()
	if cfg.SeedPath != "" {
		loaded, err := seed.Load(cfg.SeedPath)
		if err != nil {
			return board.State{}, nil, err
		}
		rows = loaded
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return board.State{}, nil, fmt.Errorf("board: locale %q: %w", cfg.Locale, err)
	}

	c := roster.New(idSource(cfg.IDSource, rows), roster.WithLocale(tag))
	if err := c.Seed(rows...); err != nil {
		return board.State{}, nil, err
	}
	return board.New(c, nil), rows, nil
}

func idSource(kind string, rows []models.Record) roster.IDGenerator {
	if kind == IDSourceCounter {
		var maxID int64
		if len(rows) > 0 {
			maxID = slices.MaxFunc(rows, func(a, b models.Record) int {
				return cmp.Compare(a.ID, b.ID)
			}).ID
		}
		return roster.NewCounter(maxID)
	}
	return roster.NewClock(nil)
}
