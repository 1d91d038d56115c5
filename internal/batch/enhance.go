package batch

import (
	"context"
	"fmt"
	"log"
	"time"

	"geethahub/internal/verse"
)

// DefaultEnhanceDelay is the rate-limit pause after each enhancement call.
// Enhancement prompts are heavier than fetches, so the pause is longer.
const DefaultEnhanceDelay = 15 * time.Second

// Enhancer reworks stored verses through the language model, filling the
// polished text columns and the description.
type Enhancer struct {
	Repo     *verse.Repo
	Polisher Polisher

	// Delay is slept after every enhancement call, successful or not.
	// Rows skipped for missing base text do not sleep.
	Delay time.Duration
}

// NewEnhancer returns an Enhancer with the default rate-limit delay.
func NewEnhancer(repo *verse.Repo, polisher Polisher) *Enhancer {
	return &Enhancer{Repo: repo, Polisher: polisher, Delay: DefaultEnhanceDelay}
}

// EnhanceStats counts the outcomes of one enhancement run.
type EnhanceStats struct {
	Enhanced int // rows updated with polished text and a description
	Skipped  int // rows whose base text is missing or empty
	Failed   int // enhancement or store errors
}

// Run enhances every verse whose polished text or description is still
// NULL. Rows missing any base field are skipped, since the prompt needs
// all three. Run keeps going past per-verse failures and stops only when
// ctx is cancelled.
func (e *Enhancer) Run(ctx context.Context) (EnhanceStats, error) {
	var stats EnhanceStats

	rows, err := e.Repo.ListNeedingEnhancement(ctx)
	if err != nil {
		return stats, fmt.Errorf("list verses to enhance: %w", err)
	}
	if len(rows) == 0 {
		log.Println("[enhance] nothing to enhance")
		return stats, nil
	}
	log.Printf("[enhance] %d verses need enhancement", len(rows))

	for _, rec := range rows {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if !rec.Complete() {
			log.Printf("[enhance] skipping chapter %d, verse %d: base text missing", rec.Chapter, rec.Verse)
			stats.Skipped++
			continue
		}

		enh, err := e.Polisher.EnhanceVerse(ctx, rec.Chapter, rec.Verse,
			*rec.SanskritVerseTeluguScript, *rec.TeluguVerse, *rec.TeluguMeaning)
		if err != nil {
			log.Printf("[enhance] enhance chapter %d, verse %d: %v", rec.Chapter, rec.Verse, err)
			stats.Failed++
		} else {
			ok, uerr := e.Repo.UpdateEnhancements(ctx, rec.Chapter, rec.Verse,
				*rec.SanskritVerseTeluguScript, enh.PolishedTeluguVerse, enh.PolishedTeluguMeaning, &enh.TeluguDescription)
			switch {
			case uerr != nil:
				log.Printf("[enhance] store chapter %d, verse %d: %v", rec.Chapter, rec.Verse, uerr)
				stats.Failed++
			case !ok:
				log.Printf("[enhance] store chapter %d, verse %d: row disappeared", rec.Chapter, rec.Verse)
				stats.Failed++
			default:
				log.Printf("[enhance] enhanced chapter %d, verse %d", rec.Chapter, rec.Verse)
				stats.Enhanced++
			}
		}

		if err := sleep(ctx, e.Delay); err != nil {
			return stats, err
		}
	}

	return stats, nil
}
