package pipeline

// FailureKind tags the stage a run died in. The kind of the first failing
// stage is surfaced verbatim to the caller.
type FailureKind string

const (
	// FailNoInput: no document supplied in live mode.
	FailNoInput FailureKind = "no_input"
	// FailExtraction: OCR call errored or recognized no text.
	FailExtraction FailureKind = "extraction_failure"
	// FailStructuring: LLM call errored (network, auth, quota).
	FailStructuring FailureKind = "structuring_failure"
	// FailMalformedOutput: LLM output is not parseable as JSON.
	FailMalformedOutput FailureKind = "malformed_output"
	// FailSchemaViolation: parsed JSON breaks the card contract.
	FailSchemaViolation FailureKind = "schema_violation"
)

// Failure is the error type every pipeline run returns on the failure path.
// Message is short and user-facing; Details carries operator diagnostics
// (raw model output, field paths) which may be elided from end-user views but
// are never discarded here.
type Failure struct {
	Kind    FailureKind
	Message string
	Details map[string]any
	Cause   error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return string(f.Kind) + ": " + f.Message + ": " + f.Cause.Error()
	}
	return string(f.Kind) + ": " + f.Message
}

func (f *Failure) Unwrap() error { return f.Cause }

func newFailure(kind FailureKind, message string, details map[string]any, cause error) *Failure {
	return &Failure{Kind: kind, Message: message, Details: details, Cause: cause}
}
