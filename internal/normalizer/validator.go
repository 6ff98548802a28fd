package normalizer

import (
	"errors"
	"fmt"

	"sparkjournal/internal/models"
)

// Validation errors.
var (
	ErrNilRecord       = errors.New("source record is nil")
	ErrMissingID       = errors.New("metadata entry has no id")
	ErrInvalidSeverity = errors.New("metadata severity must be one of: info, success, warning, critical")
)

var validSeverities = map[string]bool{
	models.SeverityInfo:     true,
	models.SeveritySuccess:  true,
	models.SeverityWarning:  true,
	models.SeverityCritical: true,
}

// Validator checks that an input can become a well-formed entry.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks if in meets requirements.
func (v *Validator) Validate(in Input) error {
	if in.Record == nil {
		return ErrNilRecord
	}

	if in.Meta.ID == "" {
		return fmt.Errorf("%w at index %d", ErrMissingID, in.Index)
	}

	// Severity is optional, but when present the viewer must know it.
	if in.Meta.Severity != "" && !validSeverities[in.Meta.Severity] {
		return fmt.Errorf("%w: %q (%s)", ErrInvalidSeverity, in.Meta.Severity, in.Meta.ID)
	}

	return nil
}
