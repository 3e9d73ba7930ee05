// Package seed provides the initial rows of the editable table, either the
// built-in set or a YAML file.
package seed

import (
	"errors"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/crewboard/internal/form"
	"github.com/starford/crewboard/internal/models"
)

// Default returns the rows the dashboard starts with when no seed file is set.
func Default() []models.Record {
	return []models.Record{
		{ID: 1, Fields: models.Fields{DisplayName: "Lindsey Curtis", Role: "Web Designer", ProjectName: "Agency Website", Status: models.StatusActive, Budget: "3900"}},
		{ID: 2, Fields: models.Fields{DisplayName: "Mark Johnson", Role: "Software Engineer", ProjectName: "E-commerce App", Status: models.StatusPending, Budget: "10000"}},
		{ID: 3, Fields: models.Fields{DisplayName: "Emily Davis", Role: "Project Manager", ProjectName: "Marketing Campaign", Status: models.StatusCompleted, Budget: "5000"}},
		{ID: 4, Fields: models.Fields{DisplayName: "John Smith", Role: "UI/UX Designer", ProjectName: "Mobile App Redesign", Status: models.StatusActive, Budget: "8500"}},
	}
}

type file struct {
	Records []models.Record `yaml:"records"`
}

// Load reads seed records from a YAML file of the form:
//
//	records:
//	  - id: 1
//	    name: Lindsey Curtis
//	    role: Web Designer
//	    project_name: Agency Website
//	    status: Active
//	    budget: "3900"
func Load(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates seed YAML.
func Parse(data []byte) ([]models.Record, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: parse: %w", err)
	}

	seen := make(map[int64]struct{}, len(f.Records))
	var errs []error
	for i, r := range f.Records {
		if err := validateRecord(r); err != nil {
			errs = append(errs, fmt.Errorf("seed: record %d: %w", i, err))
			continue
		}
		if _, dup := seen[r.ID]; dup {
			errs = append(errs, fmt.Errorf("seed: record %d: duplicate id %d", i, r.ID))
			continue
		}
		seen[r.ID] = struct{}{}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f.Records, nil
}

func validateRecord(r models.Record) error {
	if err := validation.Validate(r.ID, validation.Required, validation.Min(int64(1))); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if err := validation.Validate(r.DisplayName, validation.Required); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	return form.ValidateFields(r.Fields)
}
