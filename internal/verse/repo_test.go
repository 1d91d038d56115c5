package verse

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"geethahub/pkg/database"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return NewRepo(db)
}

func wantText(t *testing.T, name string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %q", name, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %q, want %q", name, *got, want)
	}
}

func TestInsertGetRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx := context.Background()

	ok, err := repo.Insert(ctx, 2, 47, "కర్మణ్యేవాధికారస్తే", "నీకు కర్మ చేయుటలోనే అధికారము", "ఫలితాలపై కాదు")
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if !ok {
		t.Fatal("Insert() = false, want true")
	}

	rec, err := repo.Get(ctx, 2, 47)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if rec == nil {
		t.Fatal("Get() = nil, want record")
	}

	if rec.ID == 0 {
		t.Error("ID was not assigned")
	}
	if rec.Chapter != 2 || rec.Verse != 47 {
		t.Errorf("key = (%d, %d), want (2, 47)", rec.Chapter, rec.Verse)
	}
	wantText(t, "SanskritVerseTeluguScript", rec.SanskritVerseTeluguScript, "కర్మణ్యేవాధికారస్తే")
	wantText(t, "TeluguVerse", rec.TeluguVerse, "నీకు కర్మ చేయుటలోనే అధికారము")
	wantText(t, "TeluguMeaning", rec.TeluguMeaning, "ఫలితాలపై కాదు")

	// Enhancement columns stay NULL until the enhancement pass runs.
	if rec.PolishedTeluguVerse != nil {
		t.Errorf("PolishedTeluguVerse = %q, want nil", *rec.PolishedTeluguVerse)
	}
	if rec.PolishedTeluguMeaning != nil {
		t.Errorf("PolishedTeluguMeaning = %q, want nil", *rec.PolishedTeluguMeaning)
	}
	if rec.TeluguDescription != nil {
		t.Errorf("TeluguDescription = %q, want nil", *rec.TeluguDescription)
	}
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	rec, err := repo.Get(context.Background(), 3, 14)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if rec != nil {
		t.Errorf("Get() = %+v, want nil for missing key", rec)
	}
}

func TestInsertDuplicateKeepsFirstRecord(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, 1, 1, "మొదటిది", "వెర్షన్ 1", "అర్థం 1"); err != nil {
		t.Fatalf("first Insert() error: %v", err)
	}

	ok, err := repo.Insert(ctx, 1, 1, "రెండవది", "వెర్షన్ 2", "అర్థం 2")
	if err != nil {
		t.Fatalf("second Insert() error: %v", err)
	}
	if ok {
		t.Error("second Insert() = true, want false on duplicate key")
	}

	rec, err := repo.Get(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	wantText(t, "SanskritVerseTeluguScript", rec.SanskritVerseTeluguScript, "మొదటిది")
	wantText(t, "TeluguVerse", rec.TeluguVerse, "వెర్షన్ 1")
}

func TestUpdateEnhancements(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, 2, 47, "పాత సంస్కృతం", "మూల శ్లోకం", "మూల అర్థం"); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	desc := "ఒక చిన్న కథ."
	ok, err := repo.UpdateEnhancements(ctx, 2, 47, "సరిచేసిన సంస్కృతం", "మెరుగైన శ్లోకం", "మెరుగైన అర్థం", &desc)
	if err != nil {
		t.Fatalf("UpdateEnhancements() error: %v", err)
	}
	if !ok {
		t.Fatal("UpdateEnhancements() = false, want true")
	}

	rec, err := repo.Get(ctx, 2, 47)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	wantText(t, "SanskritVerseTeluguScript", rec.SanskritVerseTeluguScript, "సరిచేసిన సంస్కృతం")
	wantText(t, "PolishedTeluguVerse", rec.PolishedTeluguVerse, "మెరుగైన శ్లోకం")
	wantText(t, "PolishedTeluguMeaning", rec.PolishedTeluguMeaning, "మెరుగైన అర్థం")
	wantText(t, "TeluguDescription", rec.TeluguDescription, "ఒక చిన్న కథ.")

	// Base fields are not touched by the enhancement update.
	wantText(t, "TeluguVerse", rec.TeluguVerse, "మూల శ్లోకం")
	wantText(t, "TeluguMeaning", rec.TeluguMeaning, "మూల అర్థం")
}

func TestUpdateEnhancementsMissingRow(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	desc := "కథ"
	ok, err := repo.UpdateEnhancements(context.Background(), 9, 9, "స", "శ్లో", "అర్థ", &desc)
	if err != nil {
		t.Fatalf("UpdateEnhancements() error: %v", err)
	}
	if ok {
		t.Error("UpdateEnhancements() = true, want false when no row matches")
	}
}

func TestUpdateEnhancementsNilDescription(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, 4, 7, "స", "శ్లో", "అర్థ"); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	// The populate refresh path carries a missing description through.
	ok, err := repo.UpdateEnhancements(ctx, 4, 7, "స", "శ్లో", "అర్థ", nil)
	if err != nil {
		t.Fatalf("UpdateEnhancements() error: %v", err)
	}
	if !ok {
		t.Fatal("UpdateEnhancements() = false, want true")
	}

	rec, err := repo.Get(ctx, 4, 7)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if rec.TeluguDescription != nil {
		t.Errorf("TeluguDescription = %q, want nil", *rec.TeluguDescription)
	}
	wantText(t, "PolishedTeluguVerse", rec.PolishedTeluguVerse, "శ్లో")
}

func TestUpdateField(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, 1, 2, "స", "పాత పాఠం", "అర్థ"); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	rec, err := repo.Get(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	ok, err := repo.UpdateField(ctx, rec.ID, "telugu_verse", "కొత్త పాఠం")
	if err != nil {
		t.Fatalf("UpdateField() error: %v", err)
	}
	if !ok {
		t.Fatal("UpdateField() = false, want true")
	}

	rec, err = repo.Get(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	wantText(t, "TeluguVerse", rec.TeluguVerse, "కొత్త పాఠం")
}

func TestUpdateFieldRejectsUnknownColumn(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, 1, 3, "స", "శ్లో", "అర్థ"); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	rec, err := repo.Get(ctx, 1, 3)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	ok, err := repo.UpdateField(ctx, rec.ID, "chapter", "9")
	if ok {
		t.Error("UpdateField() = true, want false for unknown column")
	}

	var fieldErr *UnknownFieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("UpdateField() error = %v, want UnknownFieldError", err)
	}
	if fieldErr.Column != "chapter" {
		t.Errorf("Column = %q, want %q", fieldErr.Column, "chapter")
	}

	// Nothing may have been written.
	rec, err = repo.Get(ctx, 1, 3)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if rec.Chapter != 1 {
		t.Errorf("Chapter = %d, want 1", rec.Chapter)
	}
}

func TestUpdateFieldMissingID(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)

	ok, err := repo.UpdateField(context.Background(), 12345, "telugu_verse", "ఏమీ లేదు")
	if err != nil {
		t.Fatalf("UpdateField() error: %v", err)
	}
	if ok {
		t.Error("UpdateField() = true, want false for missing id")
	}
}

func TestListNeedingEnhancement(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx := context.Background()

	// Insert out of key order on purpose.
	seeds := []struct{ chapter, verse int }{{2, 1}, {1, 2}, {1, 1}}
	for _, s := range seeds {
		if _, err := repo.Insert(ctx, s.chapter, s.verse, "స", "శ్లో", "అర్థ"); err != nil {
			t.Fatalf("Insert(%d, %d) error: %v", s.chapter, s.verse, err)
		}
	}

	// Fully enhanced rows drop out of the work list.
	desc := "కథ"
	if _, err := repo.UpdateEnhancements(ctx, 1, 1, "స", "మెరుగు", "మెరుగు", &desc); err != nil {
		t.Fatalf("UpdateEnhancements() error: %v", err)
	}
	// A row with polished text but no description still needs work.
	if _, err := repo.UpdateEnhancements(ctx, 2, 1, "స", "మెరుగు", "మెరుగు", nil); err != nil {
		t.Fatalf("UpdateEnhancements() error: %v", err)
	}

	rows, err := repo.ListNeedingEnhancement(ctx)
	if err != nil {
		t.Fatalf("ListNeedingEnhancement() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ListNeedingEnhancement() returned %d rows, want 2", len(rows))
	}
	if rows[0].Chapter != 1 || rows[0].Verse != 2 {
		t.Errorf("rows[0] = (%d, %d), want (1, 2)", rows[0].Chapter, rows[0].Verse)
	}
	if rows[1].Chapter != 2 || rows[1].Verse != 1 {
		t.Errorf("rows[1] = (%d, %d), want (2, 1)", rows[1].Chapter, rows[1].Verse)
	}

	for _, row := range rows {
		if row.Enhanced() {
			t.Errorf("row (%d, %d) is fully enhanced but was listed", row.Chapter, row.Verse)
		}
	}
}

func TestListAllOrdering(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx := context.Background()

	seeds := []struct{ chapter, verse int }{{18, 78}, {1, 2}, {2, 47}, {1, 1}}
	for _, s := range seeds {
		if _, err := repo.Insert(ctx, s.chapter, s.verse, "స", "శ్లో", "అర్థ"); err != nil {
			t.Fatalf("Insert(%d, %d) error: %v", s.chapter, s.verse, err)
		}
	}

	rows, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}

	want := [][2]int{{1, 1}, {1, 2}, {2, 47}, {18, 78}}
	if len(rows) != len(want) {
		t.Fatalf("ListAll() returned %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Chapter != w[0] || rows[i].Verse != w[1] {
			t.Errorf("rows[%d] = (%d, %d), want (%d, %d)", i, rows[i].Chapter, rows[i].Verse, w[0], w[1])
		}
	}
}
