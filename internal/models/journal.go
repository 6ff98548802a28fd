package models

import (
	"bytes"
	"encoding/json"
)

// Entry is one published record of the journal.
// Fields the importer does not know about are kept in Extra and written back unchanged.
// An entry read from disk is written back with the same set of known keys it
// was read with, plus any key the importer filled in.
type Entry struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	Tags        []string `json:"tags"`
	TitleEN     string   `json:"title_en"`
	TitleHE     string   `json:"title_he"`
	SummaryEN   string   `json:"summary_en"`
	SummaryHE   string   `json:"summary_he"`
	DetailsEN   string   `json:"details_en"`
	DetailsHE   string   `json:"details_he"`
	Related     []string `json:"related"`
	SourceEmail string   `json:"source_email,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`

	// present holds the known keys of a decoded entry; nil for new entries.
	present map[string]struct{}
}

var entryFields = []string{
	"id", "date", "category", "severity", "tags",
	"title_en", "title_he", "summary_en", "summary_he",
	"details_en", "details_he", "related", "source_email",
}

type entryAlias Entry

// entryMember is one known key with its value and whether the value is non-empty.
type entryMember struct {
	key   string
	value any
	set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*entryAlias)(e)); err != nil {
		return err
	}

	extra, present, err := splitUnknown(data, entryFields)
	if err != nil {
		return err
	}

	e.Extra = extra
	e.present = present

	return nil
}

// MarshalJSON implements json.Marshaler.
// New entries always carry every key, with nil lists written as [].
// Decoded entries keep the keys they had; a key they lacked is only added
// once it holds a value, and a null list stays null.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.present == nil {
		if e.Tags == nil {
			e.Tags = []string{}
		}

		if e.Related == nil {
			e.Related = []string{}
		}
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for _, m := range e.members() {
		if !e.emits(m) {
			continue
		}

		if buf.Len() > 1 {
			buf.WriteByte(',')
		}

		if err := writeMember(&buf, m.key, m.value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return appendUnknown(buf.Bytes(), e.Extra)
}

func (e Entry) members() []entryMember {
	return []entryMember{
		{"id", e.ID, e.ID != ""},
		{"date", e.Date, e.Date != ""},
		{"category", e.Category, e.Category != ""},
		{"severity", e.Severity, e.Severity != ""},
		{"tags", e.Tags, e.Tags != nil},
		{"title_en", e.TitleEN, e.TitleEN != ""},
		{"title_he", e.TitleHE, e.TitleHE != ""},
		{"summary_en", e.SummaryEN, e.SummaryEN != ""},
		{"summary_he", e.SummaryHE, e.SummaryHE != ""},
		{"details_en", e.DetailsEN, e.DetailsEN != ""},
		{"details_he", e.DetailsHE, e.DetailsHE != ""},
		{"related", e.Related, e.Related != nil},
		{"source_email", e.SourceEmail, e.SourceEmail != ""},
	}
}

func (e Entry) emits(m entryMember) bool {
	if e.present == nil {
		return m.set || m.key != "source_email"
	}

	_, ok := e.present[m.key]

	return ok || m.set
}

// CategoryLabel is the bilingual display name of a category.
type CategoryLabel struct {
	HE string `json:"he" yaml:"he"`
	EN string `json:"en" yaml:"en"`

	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

type categoryAlias CategoryLabel

// UnmarshalJSON implements json.Unmarshaler.
func (c *CategoryLabel) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*categoryAlias)(c)); err != nil {
		return err
	}

	extra, _, err := splitUnknown(data, []string{"he", "en"})
	if err != nil {
		return err
	}

	c.Extra = extra

	return nil
}

// MarshalJSON implements json.Marshaler.
func (c CategoryLabel) MarshalJSON() ([]byte, error) {
	data, err := encode(categoryAlias(c))
	if err != nil {
		return nil, err
	}

	return appendUnknown(data, c.Extra)
}

// Collection is the whole journal document persisted in entries.json.
type Collection struct {
	Categories map[string]CategoryLabel `json:"categories"`
	Entries    []Entry                  `json:"entries"`

	Extra map[string]json.RawMessage `json:"-"`
}

type collectionAlias Collection

// UnmarshalJSON implements json.Unmarshaler.
func (c *Collection) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*collectionAlias)(c)); err != nil {
		return err
	}

	extra, _, err := splitUnknown(data, []string{"categories", "entries"})
	if err != nil {
		return err
	}

	c.Extra = extra

	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Collection) MarshalJSON() ([]byte, error) {
	alias := collectionAlias(c)
	if alias.Categories == nil {
		alias.Categories = map[string]CategoryLabel{}
	}

	if alias.Entries == nil {
		alias.Entries = []Entry{}
	}

	data, err := encode(alias)
	if err != nil {
		return nil, err
	}

	return appendUnknown(data, c.Extra)
}

// IDs returns the set of entry ids.
func (c *Collection) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(c.Entries))
	for i := range c.Entries {
		ids[c.Entries[i].ID] = struct{}{}
	}

	return ids
}
