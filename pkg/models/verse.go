package models

// VerseRecord is the stored form of one Bhagavad Gita verse, keyed by
// (chapter, verse). The text columns are nullable in the database, so they
// are pointers here: nil means the column was never populated, which is
// different from an empty string written by a cleanup pass.
type VerseRecord struct {
	ID      int64 `json:"id"`
	Chapter int   `json:"chapter"`
	Verse   int   `json:"verse"`

	SanskritVerseTeluguScript *string `json:"sanskrit_verse_telugu_script"` // Sanskrit transliterated into Telugu script
	TeluguVerse               *string `json:"telugu_verse"`                 // initial Telugu translation
	TeluguMeaning             *string `json:"telugu_meaning"`               // initial Telugu meaning
	PolishedTeluguVerse       *string `json:"polished_telugu_verse"`        // set by enhancement only
	PolishedTeluguMeaning     *string `json:"polished_telugu_meaning"`      // set by enhancement only
	TeluguDescription         *string `json:"telugu_description"`           // set by enhancement only
}

// Complete reports whether the three base fields are all present and
// non-empty, i.e. the record can be served without another fetch.
func (r *VerseRecord) Complete() bool {
	return hasText(r.SanskritVerseTeluguScript) &&
		hasText(r.TeluguVerse) &&
		hasText(r.TeluguMeaning)
}

// Enhanced reports whether the enhancement pass has produced both a
// polished verse and a description for this record.
func (r *VerseRecord) Enhanced() bool {
	return hasText(r.PolishedTeluguVerse) && hasText(r.TeluguDescription)
}

func hasText(s *string) bool {
	return s != nil && *s != ""
}

// VerseContent is the result of an initial fetch from the language model:
// the three base fields, already cleaned.
type VerseContent struct {
	SanskritVerseTeluguScript string
	TeluguVerse               string
	TeluguMeaning             string
}

// VerseEnhancement is the result of an enhancement call: polished
// translation, polished meaning and a short descriptive passage.
type VerseEnhancement struct {
	PolishedTeluguVerse   string
	PolishedTeluguMeaning string
	TeluguDescription     string
}

// VerseResponse is the JSON body served by GET /verse. Text fields stay
// pointers without omitempty so absent values are rendered as explicit
// nulls, which the frontend relies on.
type VerseResponse struct {
	Chapter                   int     `json:"chapter"`
	Verse                     int     `json:"verse"`
	SanskritVerseTeluguScript *string `json:"sanskrit_verse_telugu_script"`
	TeluguVerse               *string `json:"telugu_verse"`
	TeluguMeaning             *string `json:"telugu_meaning"`
	PolishedTeluguVerse       *string `json:"polished_telugu_verse"`
	PolishedTeluguMeaning     *string `json:"polished_telugu_meaning"`
	TeluguDescription         *string `json:"telugu_description"`
	Source                    string  `json:"source"` // "Database" or "Gemini API (Initial Fetch & Cleaned)"
}
