// Package batch holds the offline jobs that fill and maintain the verse
// store: a populate pass that fetches missing verses, an enhance pass that
// polishes stored text and a cleanup pass that strips formatting artifacts
// from rows that are already stored.
package batch

import (
	"context"
	"time"

	"geethahub/pkg/models"
)

// Fetcher produces the base text for one verse. *gemini.Client implements it.
type Fetcher interface {
	FetchVerse(ctx context.Context, chapter, verse int) (*models.VerseContent, error)
}

// Polisher produces polished text and a description for a verse that is
// already stored. *gemini.Client implements it.
type Polisher interface {
	EnhanceVerse(ctx context.Context, chapter, verse int, sanskrit, verseText, meaning string) (*models.VerseEnhancement, error)
}

// sleep pauses for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
