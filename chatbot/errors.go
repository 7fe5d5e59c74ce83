package chatbot

import "errors"

// Report errors form a small closed taxonomy. Handlers return them through
// the normal error path; they become the fixed user-facing strings at the
// response boundary only. Nothing below it retries or logs.
var (
	ErrNotConnected = errors.New("chatbot: data source unreachable")
	ErrNoResults    = errors.New("chatbot: no matching records")
	ErrDenied       = errors.New("chatbot: access denied")
	ErrInvalid      = errors.New("chatbot: invalid request")
)

// ReportError pairs one of the sentinel kinds with the fixed user-facing
// line for the state it describes. errors.Is sees the kind.
type ReportError struct {
	kind  error
	text  string
	cause error
}

func (e *ReportError) Error() string {
	if e.cause != nil {
		return e.kind.Error() + ": " + e.cause.Error()
	}
	return e.kind.Error()
}

func (e *ReportError) Unwrap() error { return e.kind }

func notConnected(cause error) error {
	return &ReportError{kind: ErrNotConnected, text: msgNotConnected, cause: cause}
}

func noResults(text string) error {
	return &ReportError{kind: ErrNoResults, text: text}
}

func denied(text string) error {
	return &ReportError{kind: ErrDenied, text: text}
}

func invalid(text string) error {
	return &ReportError{kind: ErrInvalid, text: text}
}

// userMessage resolves a report error to its fixed user-facing line.
func userMessage(err error) string {
	var re *ReportError
	if errors.As(err, &re) {
		return re.text
	}
	return msgNotConnected
}
