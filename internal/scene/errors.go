package scene

// ============================================================
// Load Errors
// ============================================================

// ParseError reports malformed JSON text, before any payload
// inspection happens.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidPayload reports syntactically valid JSON with no locatable
// elements array.
type InvalidPayload struct {
	Reason string
}

func (e *InvalidPayload) Error() string {
	return "invalid payload: " + e.Reason
}
