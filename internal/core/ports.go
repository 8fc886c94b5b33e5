package core

import (
	"context"

	"github.com/coldreach/coldreach/internal/core/domain"
	"github.com/coldreach/coldreach/internal/gemini"
)

// --- Ports (Interfaces) ---

// Generator is the opaque upstream capability: send a request envelope,
// receive a candidate response or an error. The gateway HTTP client satisfies
// it in production; tests substitute scripted implementations.
type Generator interface {
	Generate(ctx context.Context, req *gemini.Request) (*gemini.Response, error)
}

// OutreachServicePort is the main entry point for the business logic.
type OutreachServicePort interface {
	Execute(ctx context.Context, input domain.RunInput) (*domain.RunResult, error)
}
