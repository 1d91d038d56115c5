package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"geethahub/internal/verse"
	"geethahub/pkg/models"
)

type stubPolisher struct {
	calls int
	// hook runs before each reply; a non-nil error is returned to the
	// caller instead of an enhancement.
	hook func(chapter, verseNum int) error
	// description overrides the generated description when set.
	description *string
}

func (p *stubPolisher) EnhanceVerse(ctx context.Context, chapter, verseNum int, sanskrit, verseText, meaning string) (*models.VerseEnhancement, error) {
	p.calls++
	if p.hook != nil {
		if err := p.hook(chapter, verseNum); err != nil {
			return nil, err
		}
	}

	desc := fmt.Sprintf("వివరణ %d.%d", chapter, verseNum)
	if p.description != nil {
		desc = *p.description
	}
	return &models.VerseEnhancement{
		PolishedTeluguVerse:   "మెరుగైన " + verseText,
		PolishedTeluguMeaning: "మెరుగైన " + meaning,
		TeluguDescription:     desc,
	}, nil
}

func seedVerse(t *testing.T, repo *verse.Repo, chapter, verseNum int) {
	t.Helper()

	_, err := repo.Insert(context.Background(), chapter, verseNum,
		fmt.Sprintf("సంస్కృతం %d.%d", chapter, verseNum),
		fmt.Sprintf("శ్లోకం %d.%d", chapter, verseNum),
		fmt.Sprintf("అర్థం %d.%d", chapter, verseNum))
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
}

func TestEnhanceFillsPolishedColumns(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedVerse(t, repo, 1, 1)
	seedVerse(t, repo, 1, 2)

	polisher := &stubPolisher{}
	e := &Enhancer{Repo: repo, Polisher: polisher}

	stats, err := e.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stats.Enhanced != 2 || stats.Skipped != 0 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want 2 enhanced", stats)
	}
	if polisher.calls != 2 {
		t.Errorf("polisher called %d times, want 2", polisher.calls)
	}

	rec, err := repo.Get(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	wantText(t, "PolishedTeluguVerse", rec.PolishedTeluguVerse, "మెరుగైన శ్లోకం 1.1")
	wantText(t, "PolishedTeluguMeaning", rec.PolishedTeluguMeaning, "మెరుగైన అర్థం 1.1")
	wantText(t, "TeluguDescription", rec.TeluguDescription, "వివరణ 1.1")
	// base text is untouched by enhancement
	wantText(t, "SanskritVerseTeluguScript", rec.SanskritVerseTeluguScript, "సంస్కృతం 1.1")
	wantText(t, "TeluguVerse", rec.TeluguVerse, "శ్లోకం 1.1")
	if !rec.Enhanced() {
		t.Error("Enhanced() = false after an enhancement run")
	}
}

func TestEnhanceSkipsRowsMissingBaseText(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, 1, 1, "సంస్కృతం", "", "అర్థం"); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	polisher := &stubPolisher{}
	e := &Enhancer{Repo: repo, Polisher: polisher}

	stats, err := e.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stats.Skipped != 1 || stats.Enhanced != 0 {
		t.Errorf("stats = %+v, want 1 skipped", stats)
	}
	if polisher.calls != 0 {
		t.Errorf("polisher called %d times for an incomplete row, want 0", polisher.calls)
	}
}

func TestEnhanceLeavesFinishedRowsAlone(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedVerse(t, repo, 1, 1)

	desc := "ఇప్పటికే ఉన్న వివరణ"
	if _, err := repo.UpdateEnhancements(ctx, 1, 1, "సంస్కృతం 1.1", "మెరుగైన శ్లోకం", "మెరుగైన అర్థం", &desc); err != nil {
		t.Fatalf("UpdateEnhancements() error: %v", err)
	}

	polisher := &stubPolisher{}
	e := &Enhancer{Repo: repo, Polisher: polisher}

	stats, err := e.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stats != (EnhanceStats{}) {
		t.Errorf("stats = %+v, want zero for a finished store", stats)
	}
	if polisher.calls != 0 {
		t.Errorf("polisher called %d times, want 0", polisher.calls)
	}
}

func TestEnhanceContinuesPastFailures(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedVerse(t, repo, 1, 1)
	seedVerse(t, repo, 1, 2)

	polisher := &stubPolisher{hook: func(chapter, verseNum int) error {
		if verseNum == 1 {
			return errors.New("gemini: api error (status 500)")
		}
		return nil
	}}
	e := &Enhancer{Repo: repo, Polisher: polisher}

	stats, err := e.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stats.Failed != 1 || stats.Enhanced != 1 {
		t.Errorf("stats = %+v, want 1 failed and 1 enhanced", stats)
	}

	rec, err := repo.Get(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if rec.Enhanced() {
		t.Error("Enhanced() = true for the row whose call failed")
	}
	rec, err = repo.Get(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !rec.Enhanced() {
		t.Error("Enhanced() = false for the row whose call succeeded")
	}
}

func TestEnhanceStoresEmptyDescription(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedVerse(t, repo, 1, 1)

	empty := ""
	polisher := &stubPolisher{description: &empty}
	e := &Enhancer{Repo: repo, Polisher: polisher}

	stats, err := e.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stats.Enhanced != 1 {
		t.Errorf("stats = %+v, want 1 enhanced", stats)
	}

	rec, err := repo.Get(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	// an empty description is a stored value, not a NULL
	wantText(t, "TeluguDescription", rec.TeluguDescription, "")

	rows, err := repo.ListNeedingEnhancement(ctx)
	if err != nil {
		t.Fatalf("ListNeedingEnhancement() error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("ListNeedingEnhancement() returned %d rows, want 0", len(rows))
	}
}
