package verse

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"geethahub/pkg/models"
)

// Fetcher produces base verse content when the store has none. Satisfied
// by the gemini client.
type Fetcher interface {
	FetchVerse(ctx context.Context, chapter, verse int) (*models.VerseContent, error)
}

type Handler struct {
	Repo    *Repo
	Fetcher Fetcher
}

func NewHandler(repo *Repo, fetcher Fetcher) *Handler {
	return &Handler{Repo: repo, Fetcher: fetcher}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.index)          // GET /
	rg.GET("/verse", h.getVerse) // GET /verse?chapter=&verse=
}

const (
	sourceDatabase = "Database"
	sourceGemini   = "Gemini API (Initial Fetch & Cleaned)"
)

// Client-facing messages are Telugu; the frontend shows them verbatim.
const (
	msgMissingParams  = "దయచేసి 'chapter' మరియు 'verse' పారామితులను అందించండి."
	msgNotPositive    = "అధ్యాయం మరియు శ్లోకం సంఖ్యలు ధనాత్మకంగా ఉండాలి."
	msgFetchFailedFmt = "అధ్యాయం %d, శ్లోకం %d డేటాబేస్ లేదా బాహ్య మూలం నుండి పొందలేకపోయింది."
)

func (h *Handler) index(c *gin.Context) {
	log.Println("Bhagavath Geetha Telugu API is running!")
	c.String(http.StatusOK, "Bhagavath Geetha Telugu API is running!")
}

// getVerse serves one verse. Database hits win; on a miss the verse is
// fetched from Gemini, stored for next time and served directly. Losing an
// insert race is logged, never surfaced: the fetched data is still good.
func (h *Handler) getVerse(c *gin.Context) {
	log.Printf("[api] request from %s, user-agent: %s", c.ClientIP(), c.Request.UserAgent())

	chapter, errC := strconv.Atoi(c.Query("chapter"))
	verse, errV := strconv.Atoi(c.Query("verse"))
	if errC != nil || errV != nil {
		log.Printf("[api] validation error: missing or malformed chapter/verse")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingParams})
		return
	}
	if chapter <= 0 || verse <= 0 {
		log.Printf("[api] validation error: non-positive chapter %d or verse %d", chapter, verse)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNotPositive})
		return
	}

	ctx := c.Request.Context()

	rec, err := h.Repo.Get(ctx, chapter, verse)
	if err != nil {
		log.Printf("[api] lookup chapter %d verse %d: %v", chapter, verse, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf(msgFetchFailedFmt, chapter, verse)})
		return
	}
	if rec != nil {
		log.Printf("[api] serving chapter %d verse %d from database", chapter, verse)
		c.JSON(http.StatusOK, responseFromRecord(rec))
		return
	}

	log.Printf("[api] chapter %d verse %d not in database, fetching from gemini", chapter, verse)
	content, err := h.Fetcher.FetchVerse(ctx, chapter, verse)
	if err != nil {
		log.Printf("[api] fetch chapter %d verse %d: %v", chapter, verse, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf(msgFetchFailedFmt, chapter, verse)})
		return
	}

	inserted, err := h.Repo.Insert(ctx, chapter, verse, content.SanskritVerseTeluguScript, content.TeluguVerse, content.TeluguMeaning)
	if err != nil {
		log.Printf("[api] store chapter %d verse %d: %v", chapter, verse, err)
	} else if !inserted {
		log.Printf("[api] chapter %d verse %d already stored by a concurrent request", chapter, verse)
	}

	c.JSON(http.StatusOK, responseFromContent(chapter, verse, content))
}

// pick returns polished when it holds text, else base. Once the
// enhancement pass fills the polished columns they win over the originals.
func pick(polished, base *string) *string {
	if polished != nil && *polished != "" {
		return polished
	}
	return base
}

func responseFromRecord(rec *models.VerseRecord) models.VerseResponse {
	return models.VerseResponse{
		Chapter:                   rec.Chapter,
		Verse:                     rec.Verse,
		SanskritVerseTeluguScript: rec.SanskritVerseTeluguScript,
		TeluguVerse:               pick(rec.PolishedTeluguVerse, rec.TeluguVerse),
		TeluguMeaning:             pick(rec.PolishedTeluguMeaning, rec.TeluguMeaning),
		PolishedTeluguVerse:       rec.PolishedTeluguVerse,
		PolishedTeluguMeaning:     rec.PolishedTeluguMeaning,
		TeluguDescription:         rec.TeluguDescription,
		Source:                    sourceDatabase,
	}
}

// responseFromContent shapes a just-fetched verse: the polished fields
// serve the same cleaned text as the base fields until the enhancement
// pass rewrites them, and the description stays null.
func responseFromContent(chapter, verse int, content *models.VerseContent) models.VerseResponse {
	sanskrit := content.SanskritVerseTeluguScript
	verseText := content.TeluguVerse
	meaning := content.TeluguMeaning

	return models.VerseResponse{
		Chapter:                   chapter,
		Verse:                     verse,
		SanskritVerseTeluguScript: &sanskrit,
		TeluguVerse:               &verseText,
		TeluguMeaning:             &meaning,
		PolishedTeluguVerse:       &verseText,
		PolishedTeluguMeaning:     &meaning,
		TeluguDescription:         nil,
		Source:                    sourceGemini,
	}
}
