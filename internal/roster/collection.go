// Package roster implements the editable record list: an ordered in-memory
// collection with id assignment, in-place replacement, removal and
// locale-aware ordering by display name.
package roster

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/starford/crewboard/internal/apperr"
	"github.com/starford/crewboard/internal/models"
)

// Collection is the ordered set of records shown in the table.
// The zero value is not usable; construct with New.
type Collection struct {
	records []models.Record
	ids     IDGenerator
	locale  language.Tag
}

// Option configures a Collection.
type Option func(*Collection)

// WithLocale sets the language used to collate display names.
func WithLocale(tag language.Tag) Option {
	return func(c *Collection) {
		c.locale = tag
	}
}

// New creates an empty collection drawing ids from ids.
func New(ids IDGenerator, opts ...Option) *Collection {
	c := &Collection{ids: ids, locale: language.English}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Seed appends records that already carry ids, in order.
// It fails without modifying the collection if any id is zero or duplicated.
func (c *Collection) Seed(records ...models.Record) error {
	seen := make(map[int64]struct{}, len(c.records)+len(records))
	for _, r := range c.records {
		seen[r.ID] = struct{}{}
	}
	for _, r := range records {
		if r.ID == 0 {
			return fmt.Errorf("roster: seed record %q has no id", r.DisplayName)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("roster: duplicate seed id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	c.records = append(c.records, records...)
	return nil
}

// Add assigns a fresh id to f and appends the new record.
func (c *Collection) Add(f models.Fields) models.Record {
	id := c.ids.NextID()
	for c.indexOf(id) >= 0 {
		id = c.ids.NextID()
	}
	rec := models.Record{ID: id, Fields: f}
	c.records = append(c.records, rec)
	return rec
}

// Update replaces the fields of the record with the given id, keeping its
// position. It returns apperr.ErrNotFound when no such record exists.
func (c *Collection) Update(id int64, f models.Fields) (models.Record, error) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Record{}, fmt.Errorf("roster: update %d: %w", id, apperr.ErrNotFound)
	}
	c.records[i].Fields = f
	return c.records[i], nil
}

// Remove deletes the record with the given id and reports whether it existed.
func (c *Collection) Remove(id int64) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.records = slices.Delete(c.records, i, i+1)
	return true
}

// Get returns the record with the given id.
func (c *Collection) Get(id int64) (models.Record, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Record{}, false
	}
	return c.records[i], true
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Records returns a copy of the records in display order.
func (c *Collection) Records() []models.Record {
	return slices.Clone(c.records)
}

// Clone returns an independent copy sharing the id source and locale.
func (c *Collection) Clone() *Collection {
	return &Collection{
		records: slices.Clone(c.records),
		ids:     c.ids,
		locale:  c.locale,
	}
}

// SortByDisplayName orders the records in place by display name.
// Equal names keep their relative order.
func (c *Collection) SortByDisplayName(dir Direction) {
	col := collate.New(c.locale)
	slices.SortStableFunc(c.records, func(a, b models.Record) int {
		n := col.CompareString(a.DisplayName, b.DisplayName)
		if dir == Descending {
			return -n
		}
		return n
	})
}

// FilterSpec narrows a read-only view of the collection. Empty fields match
// everything.
type FilterSpec struct {
	ProjectName string `json:"projectName"`
	Budget      string `json:"budget"`
}

// Filter returns the records matching f in display order. ProjectName is a
// case-insensitive substring match, Budget must match exactly.
func (c *Collection) Filter(f FilterSpec) []models.Record {
	project := strings.ToLower(strings.TrimSpace(f.ProjectName))
	budget := strings.TrimSpace(f.Budget)

	out := make([]models.Record, 0, len(c.records))
	for _, r := range c.records {
		if project != "" && !strings.Contains(strings.ToLower(r.ProjectName), project) {
			continue
		}
		if budget != "" && r.Budget != budget {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (c *Collection) indexOf(id int64) int {
	return slices.IndexFunc(c.records, func(r models.Record) bool { return r.ID == id })
}
