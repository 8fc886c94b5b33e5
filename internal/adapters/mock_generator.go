package adapters

import (
	"context"
	"errors"
	"sync"

	"github.com/coldreach/coldreach/internal/gemini"
)

// ScriptedGenerator replays canned candidate responses in order and records
// every request envelope it receives. It lets the orchestrator scenarios run
// without any live network dependency.
type ScriptedGenerator struct {
	mu        sync.Mutex
	Responses []*gemini.Response
	Err       error

	Requests []*gemini.Request
}

func (g *ScriptedGenerator) Generate(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Requests = append(g.Requests, req)
	if g.Err != nil {
		return nil, g.Err
	}
	i := len(g.Requests) - 1
	if i >= len(g.Responses) {
		return nil, errors.New("scripted generator: no response scripted for call")
	}
	return g.Responses[i], nil
}
