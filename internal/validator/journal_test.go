package validator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"sparkjournal/internal/models"
)

func validCollection() *models.Collection {
	return &models.Collection{
		Categories: map[string]models.CategoryLabel{
			"system": {HE: "מערכת", EN: "System"},
		},
		Entries: []models.Entry{
			{ID: "b", Date: "2026-02-27T10:00:00Z", Category: "system", Related: []string{"a"}},
			{ID: "a", Date: "2026-02-27T00:00:00Z", Category: "system", Related: []string{"b"}},
			{ID: "c", Date: "2026-02-20T00:00:00Z", Category: "system"},
		},
	}
}

func TestJournalValidator_Valid(t *testing.T) {
	result := NewJournalValidator().Validate(validCollection())

	if !result.IsValid {
		t.Fatalf("expected valid, got errors: %v", result.Errors)
	}

	if result.Err() != nil {
		t.Errorf("Err() = %v, want nil", result.Err())
	}

	if result.Stats.TotalEntries != 3 || result.Stats.EntriesWithRelated != 2 {
		t.Errorf("unexpected stats: %+v", result.Stats)
	}

	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	if !strings.HasPrefix(result.String(), "✅ VALID") {
		t.Errorf("String() = %s", result.String())
	}
}

func TestJournalValidator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *models.Collection)
		wantErr error
	}{
		{"duplicate id", func(c *models.Collection) { c.Entries[2].ID = "b" }, ErrDuplicateID},
		{"missing id", func(c *models.Collection) { c.Entries[2].ID = "" }, ErrMissingID},
		{"out of order", func(c *models.Collection) { c.Entries[2].Date = "2026-03-01T00:00:00Z" }, ErrOutOfOrder},
		{"self reference", func(c *models.Collection) { c.Entries[2].Related = []string{"c"} }, ErrSelfReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCollection()
			tt.mutate(c)

			result := NewStrictJournalValidator().Validate(c)
			if result.IsValid {
				t.Fatal("expected invalid result")
			}

			err := result.Err()
			if !errors.Is(err, ErrIntegrity) || !errors.Is(err, tt.wantErr) {
				t.Errorf("Err() = %v, want ErrIntegrity and %v", err, tt.wantErr)
			}

			var buf bytes.Buffer

			result.PrintErrors(&buf)

			if !strings.Contains(buf.String(), "Validation Errors") {
				t.Errorf("PrintErrors output = %q", buf.String())
			}
		})
	}
}

func TestJournalValidator_IDProblemsAreWarnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *models.Collection)
		want   string
	}{
		{"duplicate id", func(c *models.Collection) { c.Entries[2].ID = "b" }, ErrDuplicateID.Error()},
		{"missing id", func(c *models.Collection) { c.Entries[2].ID = "" }, ErrMissingID.Error()},
		{"self reference", func(c *models.Collection) { c.Entries[2].Related = []string{"c"} }, ErrSelfReference.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCollection()
			tt.mutate(c)

			result := NewJournalValidator().Validate(c)
			if !result.IsValid {
				t.Fatalf("expected valid result, got errors: %v", result.Errors)
			}

			if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], tt.want) {
				t.Errorf("Warnings = %v, want one containing %q", result.Warnings, tt.want)
			}
		})
	}
}

func TestJournalValidator_OrderIsAlwaysAnError(t *testing.T) {
	c := validCollection()
	c.Entries[2].Date = "2026-03-01T00:00:00Z"

	result := NewJournalValidator().Validate(c)
	if result.IsValid || !errors.Is(result.Err(), ErrOutOfOrder) {
		t.Errorf("Err() = %v, want ErrOutOfOrder", result.Err())
	}
}

func TestJournalValidator_Warnings(t *testing.T) {
	c := validCollection()
	c.Entries[2].Related = []string{"gone"}
	c.Entries[2].Category = "research"

	result := NewJournalValidator().Validate(c)

	if !result.IsValid {
		t.Fatalf("warnings must not invalidate: %v", result.Errors)
	}

	if result.Stats.DanglingRelated != 1 || result.Stats.UnknownCategories != 1 {
		t.Errorf("unexpected stats: %+v", result.Stats)
	}

	var buf bytes.Buffer

	result.PrintWarnings(&buf)

	out := buf.String()
	if !strings.Contains(out, `unknown id "gone"`) || !strings.Contains(out, `category "research"`) {
		t.Errorf("PrintWarnings output = %q", out)
	}
}
