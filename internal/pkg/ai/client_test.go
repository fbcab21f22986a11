package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakif/knowforum/internal/pkg/apperrors"
)

func TestAnalyzeNote(t *testing.T) {
	var gotReq AnalyzeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/analyze-note", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(AnalyzeResult{
			NoteID:         7,
			OverallQuality: 0.8,
			Dimensions: []Dimension{
				{Dimension: "evidence", Score: 0.6, Explanation: "cites no sources", Suggestions: []string{"add a reference"}},
			},
			ScaffoldingSuggestions: []string{"My theory is..."},
			Keywords:               []string{"photosynthesis"},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "key-123"})
	result, err := client.AnalyzeNote(context.Background(), &AnalyzeRequest{
		NoteID:   7,
		Content:  "Plants make food from light.",
		CourseID: 3,
		AuthorID: 11,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), gotReq.NoteID)
	assert.Equal(t, int64(3), gotReq.CourseID)
	assert.Equal(t, int64(7), result.NoteID)
	assert.Equal(t, 0.8, result.OverallQuality)
	require.Len(t, result.Dimensions, 1)
	assert.Equal(t, "evidence", result.Dimensions[0].Dimension)
}

func TestAnalyzeNoteNoAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(AnalyzeResult{NoteID: 1})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.AnalyzeNote(context.Background(), &AnalyzeRequest{NoteID: 1})
	require.NoError(t, err)
}

func TestAnalyzeNoteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.AnalyzeNote(context.Background(), &AnalyzeRequest{NoteID: 1})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}

func TestAnalyzeNoteMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.AnalyzeNote(context.Background(), &AnalyzeRequest{NoteID: 1})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}

func TestAnalyzeNoteUnreachable(t *testing.T) {
	// Grab a port that nothing listens on
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: url, Timeout: time.Second})
	_, err := client.AnalyzeNote(context.Background(), &AnalyzeRequest{NoteID: 1})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}
