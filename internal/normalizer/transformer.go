package normalizer

import (
	"sparkjournal/internal/formatter"
	"sparkjournal/internal/htmltext"
	"sparkjournal/internal/models"
)

// midnightUTC completes a YYYY-MM-DD prefix into an ISO-8601 timestamp.
const midnightUTC = "T00:00:00Z"

// Transformer builds journal entries.
type Transformer struct {
	extractor    *htmltext.Extractor
	details      *formatter.DetailsBuilder
	summaryChars int
}

// NewTransformer creates a new transformer instance.
func NewTransformer(extractor *htmltext.Extractor, summaryChars int) *Transformer {
	return &Transformer{
		extractor:    extractor,
		details:      formatter.NewDetailsBuilder(extractor),
		summaryChars: summaryChars,
	}
}

// Transform builds the entry for in. Curated summaries are used as the
// executive summary; a missing English summary is derived from the record body
// and a missing Hebrew one falls back to the English text.
func (t *Transformer) Transform(in Input) (*models.Entry, error) {
	if in.Record == nil {
		return nil, ErrNilRecord
	}

	meta := in.Meta
	content := in.Record.HTML
	isMarkup := htmltext.IsMarkup(content)

	summaryEN := meta.SummaryEN
	if summaryEN == "" {
		summaryEN = t.extractor.Summarize(content, t.summaryChars)
	}

	summaryHE := meta.SummaryHE
	if summaryHE == "" {
		summaryHE = summaryEN
	}

	details := t.details.Build(content, summaryEN, summaryHE, isMarkup)

	tags := make([]string, len(meta.Tags))
	copy(tags, meta.Tags)

	return &models.Entry{
		ID:          meta.ID,
		Date:        entryDate(in.Record, meta),
		Category:    meta.Category,
		Severity:    meta.Severity,
		Tags:        tags,
		TitleEN:     meta.TitleEN,
		TitleHE:     meta.TitleHE,
		SummaryEN:   summaryEN,
		SummaryHE:   summaryHE,
		DetailsEN:   details.EN,
		DetailsHE:   details.HE,
		Related:     []string{},
		SourceEmail: in.FileName,
	}, nil
}

func entryDate(rec *models.SourceRecord, meta models.MetadataEntry) string {
	if rec.Date != "" {
		return rec.Date
	}

	return meta.DatePrefix() + midnightUTC
}
