package adapters_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldreach/coldreach/internal/adapters"
	"github.com/coldreach/coldreach/internal/core"
	"github.com/coldreach/coldreach/internal/gemini"
)

func searchRequest() *gemini.Request {
	return &gemini.Request{
		Contents: []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "find news"}}}},
		Tools:    []gemini.Tool{{GoogleSearch: &gemini.GoogleSearch{}}},
	}
}

func TestGatewayClient_DecodesCandidates(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody gemini.Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"hello"}]},
			"groundingMetadata":{"webSearchQueries":["q1"],
			"groundingChunks":[{"web":{"uri":"http://a.com","title":"A"}}]}}]}`))
	}))
	defer srv.Close()

	client := adapters.NewGatewayClient(srv.URL)
	resp, err := client.Generate(context.Background(), searchRequest())
	require.NoError(t, err)

	assert.Equal(t, "/api/generate", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "find news", gotBody.Contents[0].Parts[0].Text)

	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "hello", resp.Candidates[0].Content.Parts[0].Text)
	require.NotNil(t, resp.Candidates[0].GroundingMetadata)
	assert.Equal(t, []string{"q1"}, resp.Candidates[0].GroundingMetadata.WebSearchQueries)
}

func TestGatewayClient_NonSuccessBecomesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	client := adapters.NewGatewayClient(srv.URL)
	_, err := client.Generate(context.Background(), searchRequest())

	var upstream *core.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
	assert.Equal(t, "quota exceeded", upstream.Message)
}

func TestGatewayClient_NonJSONErrorBodyKept(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	client := adapters.NewGatewayClient(srv.URL)
	_, err := client.Generate(context.Background(), searchRequest())

	var upstream *core.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "bad gateway", upstream.Message)
}

func TestGatewayClient_UnreachableGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Closed before use: the dial must fail.

	client := adapters.NewGatewayClient(srv.URL)
	_, err := client.Generate(context.Background(), searchRequest())
	require.Error(t, err)

	var upstream *core.UpstreamError
	assert.False(t, errors.As(err, &upstream), "transport failures are not upstream errors")
}
