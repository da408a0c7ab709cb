package ankimcp

import (
	"encoding/json"
	"reflect"
)

// Extractor provides JSON Schema generation and two-layer validation (schema
// + Validatable) for type T without binding to the Tool interface. Use it in
// custom orchestrators that need schema export and validated parsing but not
// the Execute([]byte) ([]byte, error) pipeline.
type Extractor[T any] struct {
	schema    *Schema
	validator *ArgsValidator
}

// NewExtractor creates an Extractor for type T. When strict is true, the
// generated schema has additionalProperties: false for all objects and all
// properties required (OpenAI Structured Outputs).
func NewExtractor[T any](strict bool) (*Extractor[T], error) {
	s, err := SchemaFor[T](strict)
	if err != nil {
		return nil, err
	}
	return &Extractor[T]{
		schema:    s,
		validator: NewArgsValidator(s),
	}, nil
}

// Schema returns a shallow copy of the JSON Schema (top-level keys only).
// Nested maps are shared; callers must not mutate them.
func (e *Extractor[T]) Schema() map[string]any {
	return e.schema.Raw()
}

// ParseAndValidate deserializes argsJSON into T, runs Layer 1 (type gate plus
// schema validation, with path-classified enriched messages) and Layer 2
// (Validatable.Validate() if T implements it). Returns ClientError for
// invalid JSON or validation failures so the caller can pass the message to
// the LLM for self-correction; the typed ArgumentTypeError or
// SchemaViolationError stays reachable via errors.As.
func (e *Extractor[T]) ParseAndValidate(argsJSON []byte) (T, error) {
	var zero T
	var v any
	if err := json.Unmarshal(argsJSON, &v); err != nil {
		return zero, wrapJSONParseError(err)
	}
	if err := e.validator.Validate(v); err != nil {
		if IsSystemError(err) {
			return zero, err
		}
		return zero, wrapValidationError(err)
	}
	var args T
	if err := json.Unmarshal(argsJSON, &args); err != nil {
		return zero, wrapJSONParseError(err)
	}
	// Layer 2: Validatable. Try args first (value receiver or T is *SomeType),
	// then &args only for value type T when args does not implement
	// Validatable (pointer receiver).
	if err := runLayer2Validation(args); err != nil {
		if IsClientError(err) {
			return zero, err
		}
		return zero, &ClientError{Reason: err.Error(), Err: ErrValidation}
	}
	return args, nil
}

// runLayer2Validation runs Validatable.Validate() on args; if args does not
// implement Validatable, it tries &args for value types (pointer receiver).
// Never calls Validate twice for the same receiver.
func runLayer2Validation[T any](args T) error {
	if err := validateCustom(any(args)); err != nil {
		return err
	}
	if _, ok := any(args).(Validatable); ok {
		return nil
	}
	typ := reflect.TypeOf(args)
	if typ == nil || typ.Kind() == reflect.Pointer {
		return nil
	}
	return validateCustom(any(&args))
}
