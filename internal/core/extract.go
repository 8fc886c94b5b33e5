package core

import (
	"github.com/coldreach/coldreach/internal/core/domain"
	"github.com/coldreach/coldreach/internal/gemini"
)

// extractFinding derives the per-run finding from a search-stage response.
// A missing candidate or empty text falls back to the no-information sentinel;
// grounding metadata, when present, contributes the executed queries and an
// order-preserving source list deduplicated by URL.
func extractFinding(resp *gemini.Response) domain.Finding {
	finding := domain.Finding{CompanyInfo: noInfoSentinel}
	if resp == nil || len(resp.Candidates) == 0 {
		return finding
	}

	cand := resp.Candidates[0]
	if len(cand.Content.Parts) > 0 && cand.Content.Parts[0].Text != "" {
		finding.CompanyInfo = cand.Content.Parts[0].Text
	}

	gm := cand.GroundingMetadata
	if gm == nil {
		return finding
	}
	finding.Grounded = true
	finding.Queries = gm.WebSearchQueries

	seen := make(map[string]bool)
	for _, chunk := range gm.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		if seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true

		title := chunk.Web.Title
		if title == "" {
			title = "Source"
		}
		finding.Sources = append(finding.Sources, domain.Source{
			URL:   chunk.Web.URI,
			Title: title,
		})
	}
	return finding
}
