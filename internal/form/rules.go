package form

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/crewboard/internal/models"
)

// Draft field names as they appear on the wire.
const (
	FieldDisplayName = "displayName"
	FieldRole        = "role"
	FieldProjectName = "projectName"
	FieldStatus      = "status"
	FieldBudget      = "budget"
)

// numericRe accepts plain decimal numbers: "10", "-3.5", ".5", "4.".
// Exponents, hex, thousands separators and suffixes such as "3.9K" are rejected.
var numericRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

var (
	budgetRules = []validation.Rule{
		validation.Required.Error("budget is required"),
		validation.Match(numericRe).Error("budget must be a number"),
	}
	statusRules = []validation.Rule{
		validation.Required.Error("status is required"),
		validation.In(models.StatusActive, models.StatusPending, models.StatusCompleted).
			Error("status must be one of Active, Pending, Completed"),
	}
)

// fieldRules maps a field name to its validation rules. Fields absent from
// the map are presence-checked at the input boundary, not here.
var fieldRules = map[string][]validation.Rule{
	FieldBudget: budgetRules,
	FieldStatus: statusRules,
}

// ValidateFields checks every rule-bearing field of f. The returned error is
// a validation.Errors keyed by field name, or nil.
func ValidateFields(f models.Fields) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Budget, budgetRules...),
		validation.Field(&f.Status, statusRules...),
	)
}

// Messages flattens a validation error into field -> message.
// Errors not produced by ozzo-validation are reported under "_".
func Messages(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}
	out["_"] = err.Error()
	return out
}
