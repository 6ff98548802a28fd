// Package validator checks the journal collection before it is written.
package validator

import (
	"errors"
	"fmt"
	"io"

	"sparkjournal/internal/models"
)

// Integrity errors.
var (
	ErrIntegrity     = errors.New("journal integrity check failed")
	ErrMissingID     = errors.New("entry has no id")
	ErrDuplicateID   = errors.New("duplicate entry id")
	ErrOutOfOrder    = errors.New("entries not sorted by date descending")
	ErrSelfReference = errors.New("entry lists itself as related")
)

// ValidationError represents one failed check with its position in the list.
type ValidationError struct {
	Err      error
	Field    string
	Value    string
	Position int
}

// Error implements error.
func (e ValidationError) Error() string {
	return fmt.Sprintf("entry %d [%s] %q: %v", e.Position, e.Field, e.Value, e.Err)
}

// Unwrap returns the sentinel behind e.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalEntries       int
	Categories         int
	EntriesWithRelated int
	DanglingRelated    int
	UnknownCategories  int
}

// JournalValidator checks collection invariants.
type JournalValidator struct {
	strict bool
}

// NewJournalValidator creates a validator for the import run. Only date order
// is an error; id problems in existing entries are reported as warnings.
func NewJournalValidator() *JournalValidator {
	return &JournalValidator{}
}

// NewStrictJournalValidator creates a validator that also fails on missing or
// duplicate ids and self-referencing related lists.
func NewStrictJournalValidator() *JournalValidator {
	return &JournalValidator{strict: true}
}

// Validate checks id uniqueness, date order and related references.
// Dangling related ids and unknown categories are always warnings.
func (v *JournalValidator) Validate(c *models.Collection) *ValidationResult {
	result := &ValidationResult{
		Stats: ValidationStats{
			TotalEntries: len(c.Entries),
			Categories:   len(c.Categories),
		},
	}

	ids := make(map[string]int, len(c.Entries))

	for i, e := range c.Entries {
		if e.ID == "" {
			v.report(result, ValidationError{Err: ErrMissingID, Field: "id", Position: i})
		} else if first, ok := ids[e.ID]; ok {
			v.report(result, ValidationError{
				Err: fmt.Errorf("%w (first at %d)", ErrDuplicateID, first), Field: "id", Value: e.ID, Position: i,
			})
		} else {
			ids[e.ID] = i
		}

		if i > 0 && c.Entries[i-1].Date < e.Date {
			result.Errors = append(result.Errors, ValidationError{Err: ErrOutOfOrder, Field: "date", Value: e.Date, Position: i})
		}

		if e.Category != "" {
			if _, ok := c.Categories[e.Category]; !ok {
				result.Stats.UnknownCategories++
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("entry %s uses unregistered category %q", e.ID, e.Category))
			}
		}
	}

	for i, e := range c.Entries {
		if len(e.Related) > 0 {
			result.Stats.EntriesWithRelated++
		}

		for _, rel := range e.Related {
			if rel == e.ID {
				v.report(result, ValidationError{Err: ErrSelfReference, Field: "related", Value: rel, Position: i})

				continue
			}

			if _, ok := ids[rel]; !ok {
				result.Stats.DanglingRelated++
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("entry %s relates to unknown id %q", e.ID, rel))
			}
		}
	}

	result.IsValid = len(result.Errors) == 0

	return result
}

// report records a strict-mode failure as an error, otherwise as a warning.
func (v *JournalValidator) report(result *ValidationResult, failure ValidationError) {
	if v.strict {
		result.Errors = append(result.Errors, failure)

		return
	}

	result.Warnings = append(result.Warnings, failure.Error())
}

// Err returns nil for a valid result, otherwise ErrIntegrity joined with every failure.
func (r *ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}

	errs := make([]error, 0, len(r.Errors)+1)
	errs = append(errs, ErrIntegrity)

	for _, e := range r.Errors {
		errs = append(errs, e)
	}

	return errors.Join(errs...)
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf(
		"%s | Entries: %d | Categories: %d | With related: %d | Errors: %d | Warnings: %d",
		status,
		r.Stats.TotalEntries,
		r.Stats.Categories,
		r.Stats.EntriesWithRelated,
		len(r.Errors),
		len(r.Warnings),
	)
}

// PrintErrors prints validation errors in readable format.
func (r *ValidationResult) PrintErrors(w io.Writer) {
	if len(r.Errors) == 0 {
		return
	}

	fmt.Fprintln(w, "❌ Validation Errors:")

	for _, err := range r.Errors {
		fmt.Fprintf(w, "  %s\n", err.Error())
	}
}

// PrintWarnings prints validation warnings.
func (r *ValidationResult) PrintWarnings(w io.Writer) {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Fprintln(w, "⚠️  Validation Warnings:")

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  %s\n", warn)
	}
}
