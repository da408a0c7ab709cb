package ankimcp

import "fmt"

// fieldsKey is the Note member holding named content strings. Violations
// nested below it are content problems; violations on it are structural.
const fieldsKey = "fields"

// escapeHint is appended to violations on string values inside a note's
// fields map. Fixed text: the LLM keys on it to re-escape and retry.
const escapeHint = " Hint: If this error is on a string field containing HTML or MathJax," +
	" please ensure all special characters (like '<', '>', '\\', '\"') are correctly escaped or handled."

// Violation describes a single schema violation: the validator's message, the
// path from the document root to the violating value, and the value found
// there. Constructed once per failed validation call and never mutated.
type Violation struct {
	Message string
	Path    Path
	Value   any
}

// EnrichViolation composes the final message for a violation. Every violation
// gets the base message naming the instance path; a violation on a string
// value nested inside a named member of the fields map (the path continues
// past "fields") additionally gets the escaping hint. A path ending exactly
// at "fields" — the map has the wrong type, or a required field is missing —
// stays unhinted: escaping guidance would point the caller the wrong way.
func EnrichViolation(v Violation) string {
	msg := fmt.Sprintf("schema validation failed: %s on instance path '%s'.", v.Message, v.Path)
	if _, isString := v.Value.(string); isString && v.Path.ContainsKeyBeforeEnd(fieldsKey) {
		msg += escapeHint
	}
	return msg
}
