package journal

import (
	"sort"

	"sparkjournal/internal/models"
)

// Merge appends added to the collection, sorts every entry by date descending
// and backfills related ids for entries that have none. It returns the number
// of entries whose related list was filled.
func Merge(c *models.Collection, added []models.Entry, maxRelated int) int {
	c.Entries = append(c.Entries, added...)
	SortByDateDesc(c.Entries)

	return BackfillRelated(c.Entries, maxRelated)
}

// SortByDateDesc orders entries by their ISO-8601 date string, newest first.
// Entries with equal dates keep their relative order.
func SortByDateDesc(entries []models.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

// BackfillRelated fills the related list of every entry whose list is empty
// with up to maxRelated ids of other entries from the same calendar day, in
// collection order. Curated lists are left alone. Entries without a date are
// never grouped. It returns the number of entries it filled.
func BackfillRelated(entries []models.Entry, maxRelated int) int {
	if maxRelated <= 0 {
		return 0
	}

	byDate := make(map[string][]string)

	for i := range entries {
		if entries[i].Date == "" {
			continue
		}

		day := models.DatePrefix(entries[i].Date)
		byDate[day] = append(byDate[day], entries[i].ID)
	}

	filled := 0

	for i := range entries {
		e := &entries[i]
		if len(e.Related) > 0 || e.Date == "" {
			continue
		}

		siblings := make([]string, 0, maxRelated)

		for _, id := range byDate[models.DatePrefix(e.Date)] {
			if id == e.ID {
				continue
			}

			siblings = append(siblings, id)
			if len(siblings) == maxRelated {
				break
			}
		}

		if len(siblings) == 0 {
			continue
		}

		e.Related = siblings
		filled++
	}

	return filled
}

// RegisterCategories adds or replaces the given category labels.
func RegisterCategories(c *models.Collection, categories map[string]models.CategoryLabel) {
	if c.Categories == nil {
		c.Categories = make(map[string]models.CategoryLabel, len(categories))
	}

	for key, label := range categories {
		c.Categories[key] = label
	}
}

// CategoryKeys returns the category keys in sorted order.
func CategoryKeys(c *models.Collection) []string {
	keys := make([]string, 0, len(c.Categories))
	for k := range c.Categories {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
