package domain

// RunState tracks an orchestration run through its lifecycle.
type RunState string

const (
	StateIdle       RunState = "idle"
	StateSearching  RunState = "searching"
	StateGenerating RunState = "generating"
	StateRendered   RunState = "rendered"
	StateFailed     RunState = "failed"
)

// RunInput is the operator-supplied input for one orchestration run.
// Names and Titles follow the comma-delimited convention with matching order.
type RunInput struct {
	Company string
	Names   string
	Titles  string

	// Optional screenshot of a recent company post, attached to the
	// generation request when present.
	Screenshot *Screenshot
}

// Screenshot is a base64-encoded image attachment.
type Screenshot struct {
	MimeType string
	Data     string
}

// Source is one grounding reference extracted from a search response.
type Source struct {
	URL   string
	Title string
}

// Finding is the derived result of the search stage: a plain-text company
// summary plus the grounding references backing it. It lives only for the
// duration of one run.
type Finding struct {
	CompanyInfo string
	Queries     []string
	Sources     []Source

	// Grounded records whether the response carried grounding metadata at
	// all; the diagnostics block distinguishes "searched, no sources" from
	// "search never ran".
	Grounded bool
}

// RunResult is the terminal output of a successful run.
type RunResult struct {
	State   RunState
	Draft   string
	Finding Finding

	// Output is the draft with the diagnostics block appended, ready to
	// show the operator verbatim.
	Output string
}
