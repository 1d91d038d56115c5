// Package gemini calls the Google generative-language REST API to fetch
// and enhance Bhagavad Gita verses, and parses the label-formatted replies.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"geethahub/internal/textclean"
	"geethahub/pkg/models"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
)

// ErrNoAPIKey is returned by every call when the client was constructed
// without an API key.
var ErrNoAPIKey = errors.New("gemini: api key not set")

type Config struct {
	APIKey     string
	Model      string       // default gemini-2.0-flash
	BaseURL    string       // default Google endpoint; tests point this at a local server
	HTTPClient *http.Client // optional
}

// Client is a thin REST client for the generateContent endpoint. All
// settings are fixed at construction; nothing is read from the environment
// at call time.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  httpClient,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents []geminiContent `json:"contents"`
}

// geminiContent wraps text parts for the Gemini API.
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// geminiPart is a single text part.
type geminiPart struct {
	Text string `json:"text"`
}

// generateResponse is the generateContent response body.
type generateResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

// geminiError represents a Gemini API error.
type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// generate sends one prompt and returns the first candidate's text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	reqBody := generateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gemini: unmarshal response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("gemini: api error: %s", result.Error.Message)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no candidates in response")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// FetchVerse asks the model for one chapter/verse and parses the three
// labeled sections out of the reply. The Telugu verse and meaning are
// cleaned before they are returned; the Sanskrit section is only trimmed.
func (c *Client) FetchVerse(ctx context.Context, chapter, verse int) (*models.VerseContent, error) {
	log.Printf("[gemini] fetching chapter %d, verse %d", chapter, verse)
	text, err := c.generate(ctx, fetchPrompt(chapter, verse))
	if err != nil {
		return nil, err
	}

	sections, err := extractSections(text, []string{labelSanskrit, labelVerse, labelMeaning})
	if err != nil {
		return nil, fmt.Errorf("gemini: parse fetch response: %w", err)
	}

	return &models.VerseContent{
		SanskritVerseTeluguScript: sections[0],
		TeluguVerse:               textclean.Clean(sections[1]),
		TeluguMeaning:             textclean.Clean(sections[2]),
	}, nil
}

// EnhanceVerse sends the stored base fields back to the model for
// polishing plus a short description. All three results are cleaned. The
// exchange is atomic: any missing or misordered label fails the whole
// call and nothing is returned.
func (c *Client) EnhanceVerse(ctx context.Context, chapter, verse int, sanskrit, verseText, meaning string) (*models.VerseEnhancement, error) {
	log.Printf("[gemini] enhancing chapter %d, verse %d", chapter, verse)
	text, err := c.generate(ctx, enhancePrompt(sanskrit, verseText, meaning))
	if err != nil {
		return nil, err
	}

	sections, err := extractSections(text, []string{labelPolishedVerse, labelPolishedMeaning, labelDescription})
	if err != nil {
		return nil, fmt.Errorf("gemini: parse enhance response: %w", err)
	}

	return &models.VerseEnhancement{
		PolishedTeluguVerse:   textclean.Clean(sections[0]),
		PolishedTeluguMeaning: textclean.Clean(sections[1]),
		TeluguDescription:     textclean.Clean(sections[2]),
	}, nil
}
