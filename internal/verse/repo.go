package verse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"geethahub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// TextField pairs a verses column with its accessor on a record. The order
// matches the table schema; the cleanup pass walks fields in this order.
type TextField struct {
	Column string
	Value  func(*models.VerseRecord) *string
}

// TextFields lists every text column UpdateField may touch.
var TextFields = []TextField{
	{"sanskrit_verse_telugu_script", func(r *models.VerseRecord) *string { return r.SanskritVerseTeluguScript }},
	{"telugu_verse", func(r *models.VerseRecord) *string { return r.TeluguVerse }},
	{"telugu_meaning", func(r *models.VerseRecord) *string { return r.TeluguMeaning }},
	{"polished_telugu_verse", func(r *models.VerseRecord) *string { return r.PolishedTeluguVerse }},
	{"polished_telugu_meaning", func(r *models.VerseRecord) *string { return r.PolishedTeluguMeaning }},
	{"telugu_description", func(r *models.VerseRecord) *string { return r.TeluguDescription }},
}

var updatableColumns = make(map[string]bool, len(TextFields))

func init() {
	for _, f := range TextFields {
		updatableColumns[f.Column] = true
	}
}

// UnknownFieldError reports an attempt to update a column that is not one
// of the verse text columns.
type UnknownFieldError struct {
	Column string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown verse field %q", e.Column)
}

const verseCols = `id, chapter, verse, sanskrit_verse_telugu_script, telugu_verse, telugu_meaning, polished_telugu_verse, polished_telugu_meaning, telugu_description`

// Get looks a record up by its natural key. A missing record is (nil, nil),
// not an error.
func (r *Repo) Get(ctx context.Context, chapter, verse int) (*models.VerseRecord, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+verseCols+`
		FROM verses
		WHERE chapter = ? AND verse = ?
	`, chapter, verse)

	rec, err := scanVerse(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan verse: %w", err)
	}
	return rec, nil
}

// Insert stores a freshly fetched record. A (chapter, verse) collision, for
// example losing a race against a concurrent request, returns (false, nil)
// and leaves the existing row untouched.
func (r *Repo) Insert(ctx context.Context, chapter, verse int, sanskrit, verseText, meaning string) (bool, error) {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO verses (chapter, verse, sanskrit_verse_telugu_script, telugu_verse, telugu_meaning)
		VALUES (?, ?, ?, ?, ?)
	`, chapter, verse, sanskrit, verseText, meaning)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return false, nil
		}
		return false, fmt.Errorf("insert verse: %w", err)
	}
	return true, nil
}

// UpdateEnhancements overwrites the sanskrit column and all three
// enhancement columns of an existing row. description is a pointer so the
// populate refresh path can carry a row's existing (possibly NULL)
// description through. Returns false when no row matches the key; there is
// no insert-on-missing.
func (r *Repo) UpdateEnhancements(ctx context.Context, chapter, verse int, sanskrit, polishedVerse, polishedMeaning string, description *string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE verses
		SET sanskrit_verse_telugu_script = ?,
		    polished_telugu_verse = ?,
		    polished_telugu_meaning = ?,
		    telugu_description = ?
		WHERE chapter = ? AND verse = ?
	`, sanskrit, polishedVerse, polishedMeaning, description, chapter, verse)
	if err != nil {
		return false, fmt.Errorf("update enhancements: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// UpdateField overwrites one named text column by surrogate id. The column
// must be one of TextFields; anything else is an UnknownFieldError and no
// write happens.
func (r *Repo) UpdateField(ctx context.Context, id int64, column, text string) (bool, error) {
	if !updatableColumns[column] {
		return false, &UnknownFieldError{Column: column}
	}

	// column is whitelisted above; only the value is parameterized
	res, err := r.DB.ExecContext(ctx, fmt.Sprintf(`UPDATE verses SET %s = ? WHERE id = ?`, column), text, id)
	if err != nil {
		return false, fmt.Errorf("update %s: %w", column, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// ListNeedingEnhancement returns the rows the enhancement pass still has
// work on: polished verse or description absent, in (chapter, verse) order.
func (r *Repo) ListNeedingEnhancement(ctx context.Context) ([]models.VerseRecord, error) {
	return r.queryVerses(ctx, `
		SELECT `+verseCols+`
		FROM verses
		WHERE polished_telugu_verse IS NULL OR telugu_description IS NULL
		ORDER BY chapter, verse
	`)
}

// ListAll returns every row in (chapter, verse) order.
func (r *Repo) ListAll(ctx context.Context) ([]models.VerseRecord, error) {
	return r.queryVerses(ctx, `
		SELECT `+verseCols+`
		FROM verses
		ORDER BY chapter, verse
	`)
}

func (r *Repo) queryVerses(ctx context.Context, query string, args ...any) ([]models.VerseRecord, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verses: %w", err)
	}
	defer rows.Close()

	var out []models.VerseRecord
	for rows.Next() {
		rec, err := scanVerse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verse row: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func scanVerse(s interface{ Scan(dest ...any) error }) (*models.VerseRecord, error) {
	var (
		rec      models.VerseRecord
		sanskrit sql.NullString
		verse    sql.NullString
		meaning  sql.NullString
		pVerse   sql.NullString
		pMeaning sql.NullString
		desc     sql.NullString
	)

	if err := s.Scan(
		&rec.ID, &rec.Chapter, &rec.Verse,
		&sanskrit, &verse, &meaning, &pVerse, &pMeaning, &desc,
	); err != nil {
		return nil, err
	}

	rec.SanskritVerseTeluguScript = nullToPtr(sanskrit)
	rec.TeluguVerse = nullToPtr(verse)
	rec.TeluguMeaning = nullToPtr(meaning)
	rec.PolishedTeluguVerse = nullToPtr(pVerse)
	rec.PolishedTeluguMeaning = nullToPtr(pMeaning)
	rec.TeluguDescription = nullToPtr(desc)
	return &rec, nil
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
