// Package gateway implements the secure proxy in front of the generative
// API: it validates and bounds every inbound request, injects the server-held
// credential, and relays the upstream response or a sanitized error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coldreach/coldreach/internal/gemini"
)

// ErrCredentialMisconfigured marks credential or configuration trouble. It is
// always reported to the caller as an opaque internal error.
var ErrCredentialMisconfigured = errors.New("credential misconfigured")

// Upstream is the outbound capability: forward a validated body, get back
// whatever status and body the upstream answered with. A non-2xx upstream
// status is a result, not an error; errors mean the call never completed.
type Upstream interface {
	Forward(ctx context.Context, body []byte) (*UpstreamResult, error)
}

// UpstreamResult carries the upstream response for verbatim relay.
type UpstreamResult struct {
	StatusCode int
	Body       []byte
}

// HandlerConfig holds the validation policy.
type HandlerConfig struct {
	// Credential is the server-held API key, read once at startup. It is
	// embedded in the upstream URL and never logged or echoed.
	Credential string

	// MaxPayloadBytes caps the serialized request body size.
	MaxPayloadBytes int
}

const (
	defaultMaxPayloadBytes = 10000
	credentialPrefix       = "AIza"

	// hardReadCap bounds how much of a body is read at all. Anything past
	// it cannot parse as JSON and fails the shape check.
	hardReadCap = 1 << 20
)

// Handler serves the single POST endpoint of the gateway.
type Handler struct {
	upstream Upstream
	limiter  *Limiter
	cfg      HandlerConfig
	logger   *zap.Logger
}

func NewHandler(upstream Upstream, limiter *Limiter, cfg HandlerConfig, logger *zap.Logger) *Handler {
	if cfg.MaxPayloadBytes <= 0 {
		cfg.MaxPayloadBytes = defaultMaxPayloadBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{upstream: upstream, limiter: limiter, cfg: cfg, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setSecurityHeaders(w)

	start := time.Now()
	logger := h.logger.With(zap.String("request_id", uuid.NewString()))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed")
		logger.Warn("method rejected", zap.String("method", r.Method))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, hardReadCap))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		logger.Warn("body read failed", zap.Error(err))
		return
	}

	var payload struct {
		Contents json.RawMessage `json:"contents"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		logger.Warn("body rejected", zap.Error(err))
		return
	}

	if !isJSONArray(payload.Contents) {
		writeError(w, http.StatusBadRequest, "Missing or invalid contents array")
		logger.Warn("contents rejected")
		return
	}

	if len(body) > h.cfg.MaxPayloadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "Request payload too large")
		logger.Warn("payload rejected", zap.Int("bytes", len(body)))
		return
	}

	identity := clientIdentity(r)
	if ok, retryAfter := h.limiter.Allow(identity, time.Now()); !ok {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
		writeError(w, http.StatusTooManyRequests, "Too many requests")
		logger.Warn("rate limited", zap.String("identity", identity))
		return
	}

	if !strings.HasPrefix(h.cfg.Credential, credentialPrefix) {
		// Opaque to the caller; the real cause stays server-side.
		writeError(w, http.StatusInternalServerError, "Internal server error")
		logger.Error("credential misconfigured")
		return
	}

	result, err := h.upstream.Forward(r.Context(), body)
	if err != nil {
		if errors.Is(err, ErrCredentialMisconfigured) {
			writeError(w, http.StatusInternalServerError, "Internal server error")
		} else {
			writeError(w, http.StatusInternalServerError, "An error occurred while processing your request")
		}
		logger.Error("upstream call failed", zap.Error(err))
		return
	}

	// Success and upstream errors alike are relayed verbatim.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.StatusCode)
	w.Write(result.Body)

	logger.Info("request forwarded",
		zap.String("identity", identity),
		zap.Int("upstream_status", result.StatusCode),
		zap.Duration("latency", time.Since(start)))
}

func setSecurityHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(gemini.APIError{Error: gemini.APIErrorDetail{Message: message}})
}

// isJSONArray reports whether raw is present and holds a JSON array.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// clientIdentity derives the rate-limit key: the first forwarded-for hop when
// present, the raw peer host otherwise.
func clientIdentity(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
