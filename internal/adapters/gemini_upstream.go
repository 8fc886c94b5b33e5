package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/coldreach/coldreach/internal/gateway"
)

// GeminiUpstream forwards validated bodies to the generative-content
// endpoint, carrying the credential as a query parameter.
type GeminiUpstream struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
}

func NewGeminiUpstream(baseURL, model, apiKey string, timeout time.Duration) *GeminiUpstream {
	if timeout <= 0 {
		timeout = 60 * time.Second // Long timeout for LLM generation
	}
	return &GeminiUpstream{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
	}
}

// Forward posts the body verbatim. Any upstream status is returned as a
// result for relay; an error means the call never produced one.
func (u *GeminiUpstream) Forward(ctx context.Context, body []byte) (*gateway.UpstreamResult, error) {
	if u.apiKey == "" {
		return nil, gateway.ErrCredentialMisconfigured
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		u.baseURL, u.model, url.QueryEscape(u.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading upstream response: %w", err)
	}

	return &gateway.UpstreamResult{StatusCode: resp.StatusCode, Body: respBody}, nil
}
