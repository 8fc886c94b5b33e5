package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coldreach/coldreach/internal/core"
	"github.com/coldreach/coldreach/internal/gemini"
)

// GatewayClient is the orchestrator's Generator implementation: it sends
// request envelopes through the proxy gateway rather than to the upstream
// directly, so the credential never leaves the server.
type GatewayClient struct {
	client  *http.Client
	baseURL string
}

func NewGatewayClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		client:  &http.Client{Timeout: 90 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *GatewayClient) Generate(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr gemini.APIError
		message := strings.TrimSpace(string(body))
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			message = apiErr.Error.Message
		}
		return nil, &core.UpstreamError{Status: resp.StatusCode, Message: message}
	}

	var out gemini.Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding gateway response: %w", err)
	}
	return &out, nil
}
