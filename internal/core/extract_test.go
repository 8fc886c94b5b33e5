package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coldreach/coldreach/internal/gemini"
)

func candidateWithText(text string) gemini.Candidate {
	return gemini.Candidate{Content: gemini.Content{
		Role:  "model",
		Parts: []gemini.Part{{Text: text}},
	}}
}

func TestExtractFinding_NoCandidates(t *testing.T) {
	finding := extractFinding(&gemini.Response{})
	assert.Equal(t, noInfoSentinel, finding.CompanyInfo)
	assert.False(t, finding.Grounded)
	assert.Empty(t, finding.Sources)

	finding = extractFinding(nil)
	assert.Equal(t, noInfoSentinel, finding.CompanyInfo)
}

func TestExtractFinding_TextWithoutGrounding(t *testing.T) {
	resp := &gemini.Response{Candidates: []gemini.Candidate{candidateWithText("Acme Co launched Product X")}}

	finding := extractFinding(resp)
	assert.Equal(t, "Acme Co launched Product X", finding.CompanyInfo)
	assert.False(t, finding.Grounded)
}

func TestExtractFinding_DeduplicatesSourcesByURL(t *testing.T) {
	cand := candidateWithText("summary")
	cand.GroundingMetadata = &gemini.GroundingMetadata{
		WebSearchQueries: []string{"acme news"},
		GroundingChunks: []gemini.GroundingChunk{
			{Web: &gemini.WebSource{URI: "http://a.com", Title: "A"}},
			{Web: &gemini.WebSource{URI: "http://a.com", Title: "A-dup"}},
			{Web: &gemini.WebSource{URI: "http://b.com", Title: "B"}},
		},
	}
	resp := &gemini.Response{Candidates: []gemini.Candidate{cand}}

	finding := extractFinding(resp)
	assert.True(t, finding.Grounded)
	assert.Equal(t, []string{"acme news"}, finding.Queries)
	assert.Len(t, finding.Sources, 2)
	assert.Equal(t, "http://a.com", finding.Sources[0].URL)
	assert.Equal(t, "A", finding.Sources[0].Title, "first-seen title wins")
	assert.Equal(t, "http://b.com", finding.Sources[1].URL)
}

func TestExtractFinding_TitleDefaultsAndChunksWithoutWeb(t *testing.T) {
	cand := candidateWithText("summary")
	cand.GroundingMetadata = &gemini.GroundingMetadata{
		GroundingChunks: []gemini.GroundingChunk{
			{},
			{Web: &gemini.WebSource{URI: ""}},
			{Web: &gemini.WebSource{URI: "http://c.com"}},
		},
	}
	resp := &gemini.Response{Candidates: []gemini.Candidate{cand}}

	finding := extractFinding(resp)
	assert.Len(t, finding.Sources, 1)
	assert.Equal(t, "Source", finding.Sources[0].Title)
}

func TestRenderDiagnostics_NotGrounded(t *testing.T) {
	out := renderDiagnostics(extractFinding(nil))
	assert.Contains(t, out, "Web search was not performed")
	assert.NotContains(t, out, "Sources:")
}

func TestRenderDiagnostics_TruncatesCompanyInfo(t *testing.T) {
	long := make([]rune, 300)
	for i := range long {
		long[i] = 'a'
	}
	finding := extractFinding(&gemini.Response{Candidates: []gemini.Candidate{candidateWithText(string(long))}})
	finding.Grounded = true

	out := renderDiagnostics(finding)
	assert.Contains(t, out, string(long[:200])+"...")
	assert.NotContains(t, out, string(long))
}
