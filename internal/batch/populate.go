package batch

import (
	"context"
	"log"
	"sort"
	"time"

	"geethahub/internal/verse"
	"geethahub/pkg/models"
)

// ChapterVerseCounts maps each chapter of the Bhagavad Gita to the number
// of verses it contains, 700 across the 18 chapters.
var ChapterVerseCounts = map[int]int{
	1:  46,
	2:  72,
	3:  43,
	4:  42,
	5:  29,
	6:  47,
	7:  30,
	8:  28,
	9:  34,
	10: 42,
	11: 55,
	12: 20,
	13: 35,
	14: 27,
	15: 20,
	16: 24,
	17: 28,
	18: 78,
}

// DefaultPopulateDelay is the rate-limit pause after each fetch call.
const DefaultPopulateDelay = 10 * time.Second

// Populator fills the verses table by walking every chapter and verse in
// order and fetching the ones whose Sanskrit text is still missing.
type Populator struct {
	Repo    *verse.Repo
	Fetcher Fetcher

	// Delay is slept after every fetch call, successful or not. Verses
	// skipped without an API call do not sleep.
	Delay time.Duration

	// Counts maps chapter number to verse count.
	Counts map[int]int
}

// NewPopulator returns a Populator over the full Gita with the default
// rate-limit delay.
func NewPopulator(repo *verse.Repo, fetcher Fetcher) *Populator {
	return &Populator{
		Repo:    repo,
		Fetcher: fetcher,
		Delay:   DefaultPopulateDelay,
		Counts:  ChapterVerseCounts,
	}
}

// PopulateStats counts the outcomes of one populate run.
type PopulateStats struct {
	Inserted int // new rows written
	Updated  int // existing rows refreshed with fetched text
	Skipped  int // rows that already had Sanskrit text
	Failed   int // fetch or store errors
}

// Run walks p.Counts chapter by chapter. A row whose Sanskrit column is
// non-NULL is left alone; an empty string written by an earlier cleanup
// still counts as populated. A row that exists without Sanskrit text is
// refreshed through the enhancement columns, keeping any description it
// already carries. Run keeps going past per-verse failures and stops only
// when ctx is cancelled.
func (p *Populator) Run(ctx context.Context) (PopulateStats, error) {
	var stats PopulateStats

	chapters := make([]int, 0, len(p.Counts))
	for chapter := range p.Counts {
		chapters = append(chapters, chapter)
	}
	sort.Ints(chapters)

	for _, chapter := range chapters {
		log.Printf("[populate] chapter %d: %d verses", chapter, p.Counts[chapter])

		for verseNum := 1; verseNum <= p.Counts[chapter]; verseNum++ {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			rec, err := p.Repo.Get(ctx, chapter, verseNum)
			if err != nil {
				log.Printf("[populate] load chapter %d, verse %d: %v", chapter, verseNum, err)
				stats.Failed++
				continue
			}
			if rec != nil && rec.SanskritVerseTeluguScript != nil {
				stats.Skipped++
				continue
			}

			content, err := p.Fetcher.FetchVerse(ctx, chapter, verseNum)
			switch {
			case err != nil:
				log.Printf("[populate] fetch chapter %d, verse %d: %v", chapter, verseNum, err)
				stats.Failed++
			case rec != nil:
				p.refresh(ctx, rec.Chapter, rec.Verse, content, rec.TeluguDescription, &stats)
			default:
				p.insert(ctx, chapter, verseNum, content, &stats)
			}

			if err := sleep(ctx, p.Delay); err != nil {
				return stats, err
			}
		}
	}

	return stats, nil
}

// refresh rewrites a row that exists but never got its Sanskrit text. The
// fetched translation doubles as the polished text until an enhancement
// pass replaces it; the stored description is carried over unchanged.
func (p *Populator) refresh(ctx context.Context, chapter, verseNum int, content *models.VerseContent, description *string, stats *PopulateStats) {
	ok, err := p.Repo.UpdateEnhancements(ctx, chapter, verseNum,
		content.SanskritVerseTeluguScript, content.TeluguVerse, content.TeluguMeaning, description)
	switch {
	case err != nil:
		log.Printf("[populate] refresh chapter %d, verse %d: %v", chapter, verseNum, err)
		stats.Failed++
	case !ok:
		log.Printf("[populate] refresh chapter %d, verse %d: row disappeared", chapter, verseNum)
		stats.Failed++
	default:
		log.Printf("[populate] refreshed chapter %d, verse %d", chapter, verseNum)
		stats.Updated++
	}
}

func (p *Populator) insert(ctx context.Context, chapter, verseNum int, content *models.VerseContent, stats *PopulateStats) {
	inserted, err := p.Repo.Insert(ctx, chapter, verseNum,
		content.SanskritVerseTeluguScript, content.TeluguVerse, content.TeluguMeaning)
	switch {
	case err != nil:
		log.Printf("[populate] insert chapter %d, verse %d: %v", chapter, verseNum, err)
		stats.Failed++
	case !inserted:
		log.Printf("[populate] chapter %d, verse %d was stored by another writer", chapter, verseNum)
		stats.Skipped++
	default:
		log.Printf("[populate] inserted chapter %d, verse %d", chapter, verseNum)
		stats.Inserted++
	}
}
