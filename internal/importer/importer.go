// Package importer converts exported emails into journal entries and merges
// them into the journal file.
package importer

import (
	"fmt"
	"io"
	"strings"

	"sparkjournal/internal/config"
	"sparkjournal/internal/formatter"
	"sparkjournal/internal/htmltext"
	"sparkjournal/internal/journal"
	"sparkjournal/internal/logger"
	"sparkjournal/internal/models"
	"sparkjournal/internal/normalizer"
	"sparkjournal/internal/source"
	"sparkjournal/internal/validator"
	"sparkjournal/pkg/metadata"
)

// SkipReason explains why an index produced no entry. Skips are expected and
// never abort a run.
type SkipReason string

// Skip reasons, in the order they are checked.
const (
	SkipExcluded   SkipReason = "excluded"
	SkipNoMetadata SkipReason = "no metadata defined"
	SkipExists     SkipReason = "entry already exists"
	SkipNoSource   SkipReason = "source file not found"
)

// Skip records one skipped index.
type Skip struct {
	Reason SkipReason
	ID     string
	Index  int
}

// Created records one new entry and where it came from.
type Created struct {
	Entry models.Entry
	Index int
}

// Result summarizes a run.
type Result struct {
	Created       []Created
	Skipped       []Skip
	Categories    []string
	TotalEntries  int
	RelatedFilled int
}

// Importer runs the load, build, merge, validate and save pipeline once.
type Importer struct {
	cfg       *config.Config
	table     *metadata.Table
	reader    *source.Reader
	store     *journal.Store
	processor *normalizer.Processor
	validator *validator.JournalValidator
	log       *logger.Logger
	out       io.Writer
}

// New wires an importer from cfg. Progress lines are written to out.
func New(cfg *config.Config, table *metadata.Table, log *logger.Logger, out io.Writer) *Importer {
	extractor := htmltext.NewExtractor().WithMinCut(cfg.Summary.MinCut)

	return &Importer{
		cfg:       cfg,
		table:     table,
		reader:    source.NewReader(cfg.Importer.SourceDir),
		store:     journal.NewStore(cfg.Importer.EntriesFile, cfg.Output),
		processor: normalizer.NewProcessor(extractor, cfg.Summary.MaxChars),
		validator: validator.NewJournalValidator(),
		log:       log,
		out:       out,
	}
}

// Run performs the import. Any read, parse or integrity failure aborts the run
// before the entries file is touched.
func (im *Importer) Run() (*Result, error) {
	collection, err := im.store.Load()
	if err != nil {
		return nil, err
	}

	im.log.Info("loaded journal", "path", im.store.Path(), "entries", len(collection.Entries))

	journal.RegisterCategories(collection, im.cfg.Importer.Categories)

	existing := collection.IDs()
	skip := im.cfg.SkipSet()
	result := &Result{}

	var added []models.Entry

	for index := 0; index < im.cfg.Importer.MaxIndex; index++ {
		entry, skipped, err := im.buildOne(index, skip, existing)
		if err != nil {
			return nil, err
		}

		if skipped != nil {
			result.Skipped = append(result.Skipped, *skipped)
			im.reportSkip(*skipped)

			continue
		}

		existing[entry.ID] = struct{}{}
		added = append(added, *entry)
		result.Created = append(result.Created, Created{Entry: *entry, Index: index})

		fmt.Fprintf(im.out, "✅ Created entry: %s (%s) from %s\n", entry.ID, entry.Category, entry.SourceEmail)
		im.log.Debug("entry created", "index", index, "id", entry.ID, "date", entry.Date)
	}

	result.RelatedFilled = journal.Merge(collection, added, im.cfg.Related.Max)

	check := im.validator.Validate(collection)
	check.PrintWarnings(im.out)

	if len(check.Warnings) > 0 {
		im.log.Warn("integrity check reported warnings", "count", len(check.Warnings))
	}

	if !check.IsValid {
		check.PrintErrors(im.out)

		return nil, check.Err()
	}

	im.log.Debug("integrity check", "result", check.String())

	if err := im.store.Save(collection); err != nil {
		return nil, err
	}

	result.TotalEntries = len(collection.Entries)
	result.Categories = journal.CategoryKeys(collection)

	im.log.Info("journal written",
		"path", im.store.Path(),
		"total", result.TotalEntries,
		"new", len(result.Created),
		"skipped", len(result.Skipped),
		"related_filled", result.RelatedFilled,
	)

	im.printSummary(result)

	return result, nil
}

// buildOne returns either the entry for index or the reason it was skipped.
func (im *Importer) buildOne(index int, skip map[int]struct{}, existing map[string]struct{}) (*models.Entry, *Skip, error) {
	if _, ok := skip[index]; ok {
		return nil, &Skip{Index: index, Reason: SkipExcluded}, nil
	}

	meta, ok := im.table.Lookup(index)
	if !ok {
		return nil, &Skip{Index: index, Reason: SkipNoMetadata}, nil
	}

	if _, ok := existing[meta.ID]; ok {
		return nil, &Skip{Index: index, Reason: SkipExists, ID: meta.ID}, nil
	}

	name, found, err := im.reader.Find(index)
	if err != nil {
		return nil, nil, err
	}

	if !found {
		return nil, &Skip{Index: index, Reason: SkipNoSource, ID: meta.ID}, nil
	}

	record, err := im.reader.Read(name)
	if err != nil {
		return nil, nil, err
	}

	entry, err := im.processor.Process(normalizer.Input{
		Record:   record,
		Meta:     meta,
		FileName: name,
		Index:    index,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("record %s: %w", name, err)
	}

	return entry, nil, nil
}

func (im *Importer) reportSkip(s Skip) {
	switch s.Reason {
	case SkipExists:
		fmt.Fprintf(im.out, "⏭️  Skipping email %02d — entry %s already exists\n", s.Index, s.ID)
	case SkipNoSource:
		fmt.Fprintf(im.out, "⚠️  Email file not found for %02d\n", s.Index)
	default:
		fmt.Fprintf(im.out, "⏭️  Skipping email %02d (%s)\n", s.Index, s.Reason)
	}

	im.log.Debug("record skipped", "index", s.Index, "reason", string(s.Reason), "id", s.ID)
}

func (im *Importer) printSummary(r *Result) {
	fmt.Fprintf(im.out, "\n📈 Done! Total entries: %d (%d new)\n", r.TotalEntries, len(r.Created))
	fmt.Fprintf(im.out, "📂 Categories: %s\n", strings.Join(r.Categories, ", "))

	if len(r.Created) == 0 {
		return
	}

	rows := make([]formatter.ReportRow, 0, len(r.Created))
	for _, c := range r.Created {
		rows = append(rows, formatter.ReportRow{
			Index:    c.Index,
			ID:       c.Entry.ID,
			Category: c.Entry.Category,
			Severity: c.Entry.Severity,
			Title:    c.Entry.TitleEN,
		})
	}

	fmt.Fprintln(im.out)
	fmt.Fprintln(im.out, formatter.RenderReport(rows))
}
