// Package models defines the domain types for crewboard.
package models

// Status is the lifecycle state of a record's project.
type Status string

const (
	StatusActive    Status = "Active"
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusActive, StatusPending, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Fields holds the mutable part of a record.
type Fields struct {
	DisplayName string `json:"displayName" yaml:"name"`
	Role        string `json:"role" yaml:"role"`
	ProjectName string `json:"projectName" yaml:"project_name"`
	Status      Status `json:"status" yaml:"status"`
	Budget      string `json:"budget" yaml:"budget"`
}

// Record is one row of the editable list.
type Record struct {
	ID int64 `json:"id" yaml:"id"`
	Fields `yaml:",inline"`
}

// Member is one row of the read-only users directory.
type Member struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
	Type  string `json:"type"`
}
