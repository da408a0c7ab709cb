package ankimcp

import (
	"errors"
	"fmt"
)

// Sentinel errors for ankimcp. Use errors.Is to check.
var (
	ErrToolNotFound = errors.New("tool not found")
	ErrTimeout      = errors.New("tool execution timeout")
	ErrValidation   = errors.New("validation failed")
	ErrShutdown     = errors.New("registry is shutting down")
)

// ArgumentTypeError reports that the candidate document is not a JSON object
// at all. It signals a caller programming error: no schema evaluation was
// attempted. Got is the JSON type name actually observed (e.g. "string").
type ArgumentTypeError struct {
	Got string
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("invalid argument type: arguments must be a JSON object, but received %s", e.Got)
}

// Unwrap ties the error to the ErrValidation sentinel.
func (e *ArgumentTypeError) Unwrap() error { return ErrValidation }

// SchemaViolationError reports the first structural nonconformance found in
// an otherwise well-shaped document. The message is already enriched (base
// message plus, for nested field-content violations on strings, the escaping
// hint). Recoverable: the caller is expected to surface it, not crash.
type SchemaViolationError struct {
	Violation Violation
	msg       string
}

func (e *SchemaViolationError) Error() string { return e.msg }

// Unwrap ties the error to the ErrValidation sentinel.
func (e *SchemaViolationError) Unwrap() error { return ErrValidation }

// IsArgumentTypeError returns true if err is or wraps an ArgumentTypeError.
func IsArgumentTypeError(err error) bool {
	var ae *ArgumentTypeError
	return errors.As(err, &ae)
}

// IsSchemaViolation returns true if err is or wraps a SchemaViolationError.
func IsSchemaViolation(err error) bool {
	var se *SchemaViolationError
	return errors.As(err, &se)
}

// ClientError is an error that should be sent back to the LLM for
// self-correction (e.g. invalid JSON, schema validation failure).
// Do not expose stack traces or internal details to the LLM.
// Err optionally wraps a sentinel or a typed validation error for
// errors.Is/errors.As.
type ClientError struct {
	Reason string
	// Retryable is set by the application. When true, the orchestrator may
	// retry the same call without changing arguments.
	Retryable bool
	Err       error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("invalid tool input: %s", e.Reason)
}

// Unwrap supports errors.Is/errors.As on wrapped chains.
func (e *ClientError) Unwrap() error { return e.Err }

// SystemError represents an internal failure (backend down, panic, etc.).
// The LLM should not see the underlying error message or stack.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string {
	return "internal system error during tool execution"
}

func (e *SystemError) Unwrap() error { return e.Err }

// IsClientError returns true if err is or wraps a ClientError.
func IsClientError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}

// IsSystemError returns true if err is or wraps a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// wrapJSONParseError returns a ClientError for JSON unmarshal failures so
// parse errors are reported consistently across the extractor and tools.
func wrapJSONParseError(err error) error {
	return &ClientError{Reason: "json parse error: " + err.Error()}
}

// wrapValidationError converts validator errors into ClientError for the tool
// pipeline, keeping the typed error in the chain for errors.As.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return &ClientError{Reason: err.Error(), Err: err}
}
