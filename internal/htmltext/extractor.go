// Package htmltext turns email markup into plain text and short summaries.
package htmltext

import (
	"html"
	"regexp"
	"strings"

	"sparkjournal/pkg/utils"
)

// Summary limits used when the caller does not override them.
const (
	DefaultSummaryChars  = 500
	DefaultSummaryMinCut = 200
	ellipsis             = "..."
)

// structuralTags are the tag openers that mark content as real markup rather
// than plain text or markdown that happens to contain angle brackets.
var structuralTags = []string{"<h", "<p", "<div", "<table"}

// Extractor strips markup and derives executive summaries.
type Extractor struct {
	stylePattern  *regexp.Regexp
	scriptPattern *regexp.Regexp
	tagPattern    *regexp.Regexp
	// Document wrapper patterns removed before embedding a body.
	htmlOpenPattern  *regexp.Regexp
	htmlClosePattern *regexp.Regexp
	bodyOpenPattern  *regexp.Regexp
	bodyClosePattern *regexp.Regexp
	headPattern      *regexp.Regexp
	helper           *utils.StringHelper
	minCut           int
}

// NewExtractor creates an extractor with the default summary cut position.
func NewExtractor() *Extractor {
	return &Extractor{
		stylePattern:     regexp.MustCompile(`(?s)<style[^>]*>.*?</style>`),
		scriptPattern:    regexp.MustCompile(`(?s)<script[^>]*>.*?</script>`),
		tagPattern:       regexp.MustCompile(`<[^>]+>`),
		htmlOpenPattern:  regexp.MustCompile(`<html[^>]*>`),
		htmlClosePattern: regexp.MustCompile(`</html>`),
		bodyOpenPattern:  regexp.MustCompile(`<body[^>]*>`),
		bodyClosePattern: regexp.MustCompile(`</body>`),
		headPattern:      regexp.MustCompile(`(?s)<head>.*?</head>`),
		helper:           utils.NewStringHelper(),
		minCut:           DefaultSummaryMinCut,
	}
}

// WithMinCut sets the position a full stop must pass for a summary to end on it.
func (x *Extractor) WithMinCut(minCut int) *Extractor {
	x.minCut = minCut

	return x
}

// StripHTML removes style and script blocks and all tags, collapses whitespace
// and decodes entities. Plain text only has its whitespace collapsed and entities decoded.
func (x *Extractor) StripHTML(markup string) string {
	text := x.stylePattern.ReplaceAllString(markup, "")
	text = x.scriptPattern.ReplaceAllString(text, "")
	text = x.tagPattern.ReplaceAllString(text, " ")
	text = x.helper.NormalizeWhitespace(text)

	return html.UnescapeString(text)
}

// ExecSummary shortens text to at most maxChars characters. A cut ends on the
// last full stop inside the limit when that stop lies past the minimum cut
// position; otherwise the raw prefix is returned with an ellipsis.
// A non-positive maxChars means DefaultSummaryChars.
func (x *Extractor) ExecSummary(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultSummaryChars
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	cut := runes[:maxChars]

	lastStop := -1

	for i := len(cut) - 1; i >= 0; i-- {
		if cut[i] == '.' {
			lastStop = i

			break
		}
	}

	if lastStop > x.minCut {
		return string(cut[:lastStop+1])
	}

	return string(cut) + ellipsis
}

// Summarize sanitizes markup and returns its executive summary.
func (x *Extractor) Summarize(markup string, maxChars int) string {
	return x.ExecSummary(x.StripHTML(markup), maxChars)
}

// EmbeddableBody removes the document wrapper (html, head and body tags) and
// embedded style blocks so the markup can be placed inside another page.
// All other markup is kept as-is.
func (x *Extractor) EmbeddableBody(markup string) string {
	content := x.htmlOpenPattern.ReplaceAllString(markup, "")
	content = x.htmlClosePattern.ReplaceAllString(content, "")
	content = x.bodyOpenPattern.ReplaceAllString(content, "")
	content = x.bodyClosePattern.ReplaceAllString(content, "")
	content = x.headPattern.ReplaceAllString(content, "")
	content = x.stylePattern.ReplaceAllString(content, "")

	return strings.TrimSpace(content)
}

// IsMarkup reports whether content should be treated as HTML: it must contain
// both angle brackets and at least one heading, paragraph, division or table tag.
func IsMarkup(content string) bool {
	if !strings.Contains(content, "<") || !strings.Contains(content, ">") {
		return false
	}

	lower := strings.ToLower(content)
	for _, tag := range structuralTags {
		if strings.Contains(lower, tag) {
			return true
		}
	}

	return false
}
