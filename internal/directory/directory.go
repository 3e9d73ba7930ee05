// Package directory is the read-only users table: it fetches the remote
// users list once and serves whatever came back.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/starford/crewboard/internal/models"
)

// DefaultEndpoint is where the dashboard's users service listens in development.
const DefaultEndpoint = "http://localhost:5000/users"

const maxBodyBytes = 10 << 20

// Directory holds the members returned by a single GET to endpoint.
type Directory struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger

	members atomic.Pointer[[]models.Member]
	once    sync.Once
	done    chan struct{}
}

// New creates a directory for endpoint. A nil client uses http.DefaultClient,
// a nil logger uses slog.Default().
func New(endpoint string, client *http.Client, logger *slog.Logger) *Directory {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{
		endpoint: endpoint,
		client:   client,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Mount issues the read request in the background. Only the first call
// fetches; the returned channel closes when that fetch finishes.
func (d *Directory) Mount(ctx context.Context) <-chan struct{} {
	d.once.Do(func() {
		go func() {
			defer close(d.done)
			members, err := d.fetch(ctx)
			if err != nil {
				d.logger.Error("directory: fetch users failed",
					slog.String("endpoint", d.endpoint),
					slog.String("error", err.Error()))
				return
			}
			d.members.Store(&members)
			d.logger.Info("directory: users loaded", slog.Int("count", len(members)))
		}()
	})
	return d.done
}

// Members returns a copy of the loaded members; empty until a fetch succeeds.
func (d *Directory) Members() []models.Member {
	p := d.members.Load()
	if p == nil {
		return []models.Member{}
	}
	return slices.Clone(*p)
}

func (d *Directory) fetch(ctx context.Context) ([]models.Member, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", d.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("get %s: unexpected status %d", d.endpoint, resp.StatusCode)
	}

	var members []models.Member
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&members); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	if members == nil {
		members = []models.Member{}
	}
	return members, nil
}
