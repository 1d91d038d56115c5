package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"geethahub/internal/batch"
	"geethahub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	global := flag.NewFlagSet("geethahub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	asJSON := global.Bool("json", false, "print raw JSON instead of formatted text")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	// a cache miss waits on a Gemini call, so the timeout is generous
	client := &http.Client{Timeout: 90 * time.Second}

	switch args[0] {
	case "verse":
		handleVerse(ctx, client, *baseURL, *asJSON, args[1:])
	case "random":
		handleRandom(ctx, client, *baseURL, *asJSON)
	case "health":
		handleHealth(ctx, client, *baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleVerse(ctx context.Context, client *http.Client, baseURL string, asJSON bool, args []string) {
	fs := flag.NewFlagSet("verse", flag.ExitOnError)
	chapter := fs.Int("chapter", 0, "chapter number (1-18)")
	verseNum := fs.Int("verse", 0, "verse number within the chapter")
	_ = fs.Parse(args)

	if *chapter <= 0 || *verseNum <= 0 {
		log.Fatal("chapter and verse are required and must be positive")
	}
	fetchAndPrint(ctx, client, baseURL, *chapter, *verseNum, asJSON)
}

func handleRandom(ctx context.Context, client *http.Client, baseURL string, asJSON bool) {
	chapter, verseNum := randomVerse()
	fetchAndPrint(ctx, client, baseURL, chapter, verseNum, asJSON)
}

func handleHealth(ctx context.Context, client *http.Client, baseURL string) {
	var resp map[string]any
	if err := doJSON(ctx, client, baseURL+"/health", &resp); err != nil {
		log.Fatalf("health check failed: %v", err)
	}
	printJSON(resp)
}

// randomVerse picks uniformly across all 700 verses, so longer chapters
// come up proportionally more often.
func randomVerse() (int, int) {
	chapters := make([]int, 0, len(batch.ChapterVerseCounts))
	total := 0
	for chapter, count := range batch.ChapterVerseCounts {
		chapters = append(chapters, chapter)
		total += count
	}
	sort.Ints(chapters)

	n := rand.Intn(total)
	for _, chapter := range chapters {
		if n < batch.ChapterVerseCounts[chapter] {
			return chapter, n + 1
		}
		n -= batch.ChapterVerseCounts[chapter]
	}
	return chapters[len(chapters)-1], 1
}

func fetchAndPrint(ctx context.Context, client *http.Client, baseURL string, chapter, verseNum int, asJSON bool) {
	u, err := url.Parse(baseURL + "/verse")
	if err != nil {
		log.Fatalf("invalid base url: %v", err)
	}
	qv := u.Query()
	qv.Set("chapter", strconv.Itoa(chapter))
	qv.Set("verse", strconv.Itoa(verseNum))
	u.RawQuery = qv.Encode()

	var resp models.VerseResponse
	if err := doJSON(ctx, client, u.String(), &resp); err != nil {
		log.Fatalf("fetch verse failed: %v", err)
	}
	if asJSON {
		printJSON(resp)
		return
	}
	printVerse(resp)
}

// printVerse renders a verse as plain text: the Sanskrit first, then the
// Telugu translation, meaning and description.
func printVerse(v models.VerseResponse) {
	fmt.Printf("అధ్యాయం %d, శ్లోకం %d\n\n", v.Chapter, v.Verse)
	printSection("సంస్కృత శ్లోకం", v.SanskritVerseTeluguScript)
	printSection("తెలుగు అనువాదం", v.TeluguVerse)
	printSection("భావం", v.TeluguMeaning)
	printSection("వివరణ", v.TeluguDescription)
	fmt.Printf("మూలం: %s\n", v.Source)
}

func printSection(title string, text *string) {
	if text == nil || *text == "" {
		return
	}
	fmt.Printf("%s:\n%s\n\n", title, *text)
}

func doJSON(ctx context.Context, client *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s failed: %s", endpoint, strings.TrimSpace(string(data)))
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func printUsage() {
	fmt.Println("geethahub <command> [flags]")
	fmt.Println("commands:")
	fmt.Println("  verse -chapter N -verse N   fetch one verse")
	fmt.Println("  random                      fetch a random verse")
	fmt.Println("  health                      check the API server")
}
