// Package gemini declares the wire types for the Google generative-content
// REST API. The gateway relays bodies verbatim, so these mirror the upstream
// JSON schema directly instead of going through an SDK.
package gemini

// Request is the generateContent request body.
type Request struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
	Tools            []Tool            `json:"tools,omitempty"`
}

// Content is a role-tagged list of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part carries either text or an inline attachment.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// InlineData is a base64-encoded attachment, used for screenshot uploads.
type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// GenerationConfig holds the sampling parameters.
type GenerationConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"topP,omitempty"`
	TopK        int     `json:"topK,omitempty"`
}

// Tool declares a built-in capability. Only Google Search grounding is used.
type Tool struct {
	GoogleSearch *GoogleSearch `json:"google_search,omitempty"`
}

// GoogleSearch enables the web-search grounding tool. It has no options.
type GoogleSearch struct{}

// Response is the generateContent response body.
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one model answer with optional grounding metadata.
type Candidate struct {
	Content           Content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// GroundingMetadata reports the searches the model actually ran and the
// web sources its answer is grounded in.
type GroundingMetadata struct {
	WebSearchQueries []string         `json:"webSearchQueries,omitempty"`
	GroundingChunks  []GroundingChunk `json:"groundingChunks,omitempty"`
}

// GroundingChunk optionally points at a web source.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// WebSource is a grounding reference.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// APIError is the `{error:{message}}` envelope used by the upstream API and
// mirrored by the gateway for its own errors.
type APIError struct {
	Error APIErrorDetail `json:"error"`
}

// APIErrorDetail carries the error message.
type APIErrorDetail struct {
	Message string `json:"message"`
}
