package models

// Severity values understood by the journal viewer.
const (
	SeverityInfo     = "info"
	SeveritySuccess  = "success"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// MetadataEntry is the hand-curated description of one source record.
type MetadataEntry struct {
	ID        string   `json:"id" yaml:"id"`
	Category  string   `json:"category" yaml:"category"`
	Severity  string   `json:"severity" yaml:"severity"`
	Tags      []string `json:"tags" yaml:"tags"`
	TitleEN   string   `json:"title_en" yaml:"title_en"`
	TitleHE   string   `json:"title_he" yaml:"title_he"`
	SummaryEN string   `json:"summary_en" yaml:"summary_en"`
	SummaryHE string   `json:"summary_he" yaml:"summary_he"`
}

// DatePrefix returns the YYYY-MM-DD part of the id.
func (m MetadataEntry) DatePrefix() string {
	return DatePrefix(m.ID)
}

// DatePrefix returns the first 10 characters of s, or s itself when shorter.
func DatePrefix(s string) string {
	if len(s) < 10 {
		return s
	}

	return s[:10]
}
