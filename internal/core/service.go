package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coldreach/coldreach/internal/core/domain"
	"github.com/coldreach/coldreach/internal/gemini"
)

// UpstreamError reports a non-success status relayed by the gateway.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gateway returned status %d: %s", e.Status, e.Message)
}

// OutreachService runs the two-stage search-then-generate pipeline. The two
// upstream calls are strictly sequential: the generation request embeds the
// facts extracted from the search response.
type OutreachService struct {
	generator    Generator
	logger       *zap.Logger
	stageTimeout time.Duration
}

const defaultStageTimeout = 90 * time.Second

func NewOutreachService(generator Generator, logger *zap.Logger, stageTimeout time.Duration) *OutreachService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if stageTimeout <= 0 {
		stageTimeout = defaultStageTimeout
	}
	return &OutreachService{
		generator:    generator,
		logger:       logger,
		stageTimeout: stageTimeout,
	}
}

// runState carries the intermediate values between stages of one run.
type runState struct {
	input   domain.RunInput
	finding domain.Finding
	draft   string
}

// Execute drives one run from Idle to Rendered, or to Failed. The returned
// error is always a *RunError; its UserMessage is the only text an operator
// should see.
func (s *OutreachService) Execute(ctx context.Context, input domain.RunInput) (*domain.RunResult, error) {
	if err := validateInput(input); err != nil {
		return nil, &RunError{Kind: FailureLocalValidation, State: domain.StateIdle, Err: err}
	}

	run := &runState{input: input}
	stages := []struct {
		state domain.RunState
		fn    func(ctx context.Context, run *runState) error
	}{
		{domain.StateSearching, s.search},
		{domain.StateGenerating, s.generate},
	}

	for _, stage := range stages {
		stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
		err := stage.fn(stageCtx, run)
		cancel()
		if err != nil {
			runErr := s.classify(stage.state, err)
			s.logger.Error("run failed",
				zap.String("state", string(stage.state)),
				zap.String("kind", string(runErr.Kind)),
				zap.Error(err))
			return nil, runErr
		}
	}

	output := run.draft + renderDiagnostics(run.finding)
	s.logger.Info("run rendered",
		zap.String("company", input.Company),
		zap.Bool("grounded", run.finding.Grounded),
		zap.Int("sources", len(run.finding.Sources)))

	return &domain.RunResult{
		State:   domain.StateRendered,
		Draft:   run.draft,
		Finding: run.finding,
		Output:  output,
	}, nil
}

func validateInput(input domain.RunInput) error {
	if strings.TrimSpace(input.Company) == "" ||
		strings.TrimSpace(input.Names) == "" ||
		strings.TrimSpace(input.Titles) == "" {
		return errors.New("Please fill out all required fields: Company Domain, Prospect Name(s), and Job Title(s).")
	}
	return nil
}

// search issues the grounded fact-gathering request and extracts the finding.
// Low-variance sampling keeps the summary close to the tool output.
func (s *OutreachService) search(ctx context.Context, run *runState) error {
	req := &gemini.Request{
		Contents: []gemini.Content{{
			Role:  "user",
			Parts: []gemini.Part{{Text: buildSearchPrompt(run.input.Company)}},
		}},
		GenerationConfig: &gemini.GenerationConfig{Temperature: 0.3, TopP: 1, TopK: 1},
		Tools:            []gemini.Tool{{GoogleSearch: &gemini.GoogleSearch{}}},
	}

	resp, err := s.generator.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("search stage: %w", err)
	}

	run.finding = extractFinding(resp)
	s.logger.Info("search stage complete",
		zap.Bool("grounded", run.finding.Grounded),
		zap.Strings("queries", run.finding.Queries),
		zap.Int("sources", len(run.finding.Sources)))
	return nil
}

// generate drafts the emails from the extracted finding. Higher temperature
// than the search stage: the drafts should vary, the facts should not.
func (s *OutreachService) generate(ctx context.Context, run *runState) error {
	parts := []gemini.Part{{Text: buildEmailPrompt(
		run.input.Company,
		run.finding.CompanyInfo,
		run.input.Names,
		run.input.Titles,
		run.input.Screenshot != nil,
	)}}
	if shot := run.input.Screenshot; shot != nil {
		parts = append(parts, gemini.Part{InlineData: &gemini.InlineData{
			MimeType: shot.MimeType,
			Data:     shot.Data,
		}})
	}

	req := &gemini.Request{
		Contents:         []gemini.Content{{Role: "user", Parts: parts}},
		GenerationConfig: &gemini.GenerationConfig{Temperature: 0.7, TopP: 1, TopK: 1},
	}

	resp, err := s.generator.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate stage: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return fmt.Errorf("generate stage: %w", errMissingCandidates)
	}
	cand := resp.Candidates[0]
	if len(cand.Content.Parts) == 0 || cand.Content.Parts[0].Text == "" {
		return fmt.Errorf("generate stage: %w", errMissingContent)
	}

	run.draft = cand.Content.Parts[0].Text
	return nil
}

var (
	errMissingCandidates = errors.New("response has no candidates")
	errMissingContent    = errors.New("candidate has no text content")
)

func (s *OutreachService) classify(state domain.RunState, err error) *RunError {
	kind := FailureNetwork
	var upstream *UpstreamError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = FailureTimeout
	case errors.As(err, &upstream):
		kind = FailureUpstream
	case errors.Is(err, errMissingCandidates) || errors.Is(err, errMissingContent):
		kind = FailureStructural
	}
	return &RunError{Kind: kind, State: state, Err: err}
}

// renderDiagnostics builds the block appended below the draft. When grounding
// metadata existed it reports the queries, a preview of the company info, and
// the numbered source list; otherwise it states that no web search ran.
func renderDiagnostics(f domain.Finding) string {
	var b strings.Builder
	if !f.Grounded {
		b.WriteString("\n\n--- WEB SEARCH STATUS ---\n")
		b.WriteString("Web search was not performed\n")
		return b.String()
	}

	b.WriteString("\n\n--- WEB SEARCH RESULTS ---\n")
	b.WriteString("Web search was performed successfully\n")
	fmt.Fprintf(&b, "Search queries used: %s\n", strings.Join(f.Queries, ", "))
	fmt.Fprintf(&b, "Company info found: %s...\n", truncate(f.CompanyInfo, 200))

	if len(f.Sources) > 0 {
		b.WriteString("\nSources:\n")
		for i, src := range f.Sources {
			fmt.Fprintf(&b, "%d. %s <%s>\n", i+1, src.Title, src.URL)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
