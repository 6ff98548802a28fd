// Package formatter assembles the HTML shown in journal entries and the
// plain-text report printed after a run.
package formatter

import (
	"strings"

	"sparkjournal/internal/htmltext"
)

// Captions are the fixed headings of a details block.
type Captions struct {
	Summary    string
	FullReport string
}

// Heading captions per language.
var (
	CaptionsEN = Captions{Summary: "Executive Summary", FullReport: "Full Report"}
	CaptionsHE = Captions{Summary: "תקציר מנהלים", FullReport: "דוח מלא"}
)

// Details holds the English and Hebrew details blocks of one entry.
type Details struct {
	EN string
	HE string
}

// DetailsBuilder renders details blocks: summary heading, summary paragraph,
// divider, full report heading, body.
type DetailsBuilder struct {
	extractor *htmltext.Extractor
}

// NewDetailsBuilder creates a builder that prepares bodies with the given extractor.
func NewDetailsBuilder(extractor *htmltext.Extractor) *DetailsBuilder {
	return &DetailsBuilder{extractor: extractor}
}

// Build renders both language blocks for content.
// Only the summary is language specific: bodies are not translated, so the
// Hebrew block carries the same body as the English one.
func (b *DetailsBuilder) Build(content, summaryEN, summaryHE string, isMarkup bool) Details {
	body := b.Body(content, isMarkup)

	return Details{
		EN: renderBlock(CaptionsEN, summaryEN, body),
		HE: renderBlock(CaptionsHE, summaryHE, body),
	}
}

// Body prepares content for embedding. Markup loses its document wrapper and
// style blocks; plain text is wrapped in a content container untouched.
func (b *DetailsBuilder) Body(content string, isMarkup bool) string {
	if isMarkup {
		return b.extractor.EmbeddableBody(content)
	}

	return `<div class="email-content">` + content + `</div>`
}

func renderBlock(captions Captions, summary, body string) string {
	var sb strings.Builder

	sb.WriteString("<div class=\"exec-summary\">\n")
	sb.WriteString("<h3>" + captions.Summary + "</h3>\n")
	sb.WriteString("<p>" + summary + "</p>\n")
	sb.WriteString("</div>\n<hr class=\"section-divider\">\n")
	sb.WriteString("<h3>" + captions.FullReport + "</h3>\n")
	sb.WriteString(body)

	return sb.String()
}
