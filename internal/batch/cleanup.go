package batch

import (
	"context"
	"fmt"
	"log"

	"geethahub/internal/textclean"
	"geethahub/internal/verse"
)

// Cleaner strips markdown bold markers and parenthetical notes from every
// stored text column. It is meant to be run once by hand after a populate
// or enhance pass left formatting artifacts in the data.
type Cleaner struct {
	Repo *verse.Repo
}

// NewCleaner returns a Cleaner over the given store.
func NewCleaner(repo *verse.Repo) *Cleaner {
	return &Cleaner{Repo: repo}
}

// CleanupStats counts the outcomes of one cleanup run.
type CleanupStats struct {
	Rows    int // rows with at least one cleaned column
	Columns int // column writes performed
	Failed  int // store errors
}

// Run rewrites every text column whose value changes under textclean.Clean.
// NULL and empty columns are left untouched, and a failed write on one
// column does not stop the rest of the pass.
func (c *Cleaner) Run(ctx context.Context) (CleanupStats, error) {
	var stats CleanupStats

	rows, err := c.Repo.ListAll(ctx)
	if err != nil {
		return stats, fmt.Errorf("list verses: %w", err)
	}
	if len(rows) == 0 {
		log.Println("[cleanup] no verses to clean")
		return stats, nil
	}
	log.Printf("[cleanup] checking %d verses", len(rows))

	for _, rec := range rows {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		touched := false
		for _, f := range verse.TextFields {
			val := f.Value(&rec)
			if val == nil || *val == "" {
				continue
			}
			cleaned := textclean.Clean(*val)
			if cleaned == *val {
				continue
			}

			ok, err := c.Repo.UpdateField(ctx, rec.ID, f.Column, cleaned)
			switch {
			case err != nil:
				log.Printf("[cleanup] update %s for chapter %d, verse %d: %v", f.Column, rec.Chapter, rec.Verse, err)
				stats.Failed++
			case !ok:
				log.Printf("[cleanup] row %d disappeared while cleaning %s", rec.ID, f.Column)
				stats.Failed++
			default:
				log.Printf("[cleanup] cleaned %s for chapter %d, verse %d", f.Column, rec.Chapter, rec.Verse)
				stats.Columns++
				touched = true
			}
		}
		if touched {
			stats.Rows++
		}
	}

	return stats, nil
}
