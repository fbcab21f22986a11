package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hakif/knowforum/internal/pkg/apperrors"
	"github.com/hakif/knowforum/internal/pkg/logger"
)

// Config holds the analysis service connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// AnalyzeRequest is the payload sent to the analysis service.
type AnalyzeRequest struct {
	NoteID   int64  `json:"note_id"`
	Content  string `json:"content"`
	CourseID int64  `json:"course_id"`
	AuthorID int64  `json:"author_id"`
}

// Dimension is one critique dimension of an analysis result. Score is in
// [0,1].
type Dimension struct {
	Dimension   string   `json:"dimension"`
	Score       float64  `json:"score"`
	Explanation string   `json:"explanation"`
	Suggestions []string `json:"suggestions"`
}

// AnalyzeResult is the structured critique returned by the analysis service.
type AnalyzeResult struct {
	NoteID                 int64       `json:"note_id"`
	OverallQuality         float64     `json:"overall_quality"`
	Dimensions             []Dimension `json:"dimensions"`
	ScaffoldingSuggestions []string    `json:"scaffolding_suggestions"`
	Keywords               []string    `json:"keywords"`
}

// Client talks to the external note analysis service. The service is treated
// as opaque; any transport or decoding failure surfaces as
// apperrors.ErrUpstreamFailure so callers never depend on its internals.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an analysis service client.
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AnalyzeNote submits note content for analysis and returns the parsed
// critique.
func (c *Client) AnalyzeNote(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error encoding analyze request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze-note", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building analyze request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", req.NoteID).Msg("Analysis service unreachable")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a little of the body for the log, never for the caller.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Error().
			Int("status", resp.StatusCode).
			Int64("noteID", req.NoteID).
			Str("body", string(snippet)).
			Msg("Analysis service returned non-success status")
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrUpstreamFailure, resp.StatusCode)
	}

	var result AnalyzeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Error().Err(err).Int64("noteID", req.NoteID).Msg("Analysis service returned malformed body")
		return nil, fmt.Errorf("%w: malformed response", apperrors.ErrUpstreamFailure)
	}

	return &result, nil
}
