// Package normalizer turns one exported email plus its curated metadata into a
// journal entry.
package normalizer

import (
	"fmt"

	"sparkjournal/internal/htmltext"
	"sparkjournal/internal/models"
)

// Input is everything known about one source record.
type Input struct {
	Record   *models.SourceRecord
	Meta     models.MetadataEntry
	FileName string
	Index    int
}

// Processor validates and transforms source records.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a processor using extractor for summaries and bodies.
// summaryChars bounds derived summaries.
func NewProcessor(extractor *htmltext.Extractor, summaryChars int) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(extractor, summaryChars),
	}
}

// Process turns in into a journal entry.
func (p *Processor) Process(in Input) (*models.Entry, error) {
	// 1. Validate the input data
	if err := p.validator.Validate(in); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Transform the data
	entry, err := p.transformer.Transform(in)
	if err != nil {
		return nil, fmt.Errorf("transformation failed: %w", err)
	}

	return entry, nil
}
