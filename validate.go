package ankimcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// violationPrinter localizes validator error kinds into the message text
// embedded in SchemaViolationError.
var violationPrinter = message.NewPrinter(language.English)

// Validatable is implemented by argument structs that need custom business
// validation. Called after schema validation and unmarshaling.
type Validatable interface {
	Validate() error
}

// ArgsValidator checks a candidate argument document against a compiled
// Schema and converts the first violation into a path-classified, enriched
// error. It holds no per-call state and is safe for concurrent use.
type ArgsValidator struct {
	schema *Schema
}

// NewArgsValidator creates a validator over the given contract.
func NewArgsValidator(s *Schema) *ArgsValidator {
	return &ArgsValidator{schema: s}
}

// NewBatchCreateNotesValidator creates a validator over the built-in
// batch_create_notes contract.
func NewBatchCreateNotesValidator() (*ArgsValidator, error) {
	s, err := BatchCreateNotesSchema()
	if err != nil {
		return nil, err
	}
	return NewArgsValidator(s), nil
}

// Validate checks an already-parsed JSON value (e.g. map[string]any from
// json.Unmarshal). The type gate runs first: a document that is not a JSON
// object fails with ArgumentTypeError before any schema evaluation. A
// well-shaped document that violates the contract fails with
// SchemaViolationError carrying the enriched message.
//
// Only the first violation is reported. "First" means the first leaf cause in
// the underlying evaluator's document-traversal order, so with several
// coexisting violations the caller sees the one closest to the start of the
// document.
func (v *ArgsValidator) Validate(document any) error {
	doc, ok := document.(map[string]any)
	if !ok {
		return &ArgumentTypeError{Got: jsonTypeName(document)}
	}
	err := v.schema.validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		// The compiled schema only ever returns *ValidationError; anything
		// else is an internal failure, not caller input.
		return &SystemError{Err: err}
	}
	leaf := firstLeafCause(ve)
	path, value := locate(doc, leaf.InstanceLocation)
	viol := Violation{
		Message: leaf.ErrorKind.LocalizedString(violationPrinter),
		Path:    path,
		Value:   value,
	}
	return &SchemaViolationError{Violation: viol, msg: EnrichViolation(viol)}
}

// ValidateJSON parses raw JSON and validates the result. Parse failures are
// reported as ClientError; everything else matches Validate.
func (v *ArgsValidator) ValidateJSON(data []byte) error {
	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return wrapJSONParseError(err)
	}
	return v.Validate(document)
}

// firstLeafCause descends into the first cause at every level, yielding the
// leaf the evaluator found first.
func firstLeafCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// locate converts the evaluator's instance location into a typed Path and
// returns the value at that location. A token is an array index only when the
// container actually is an array; everything else is an object key.
func locate(doc any, location []string) (Path, any) {
	cur := doc
	path := make(Path, 0, len(location))
	for _, token := range location {
		switch c := cur.(type) {
		case []any:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(c) {
				path = append(path, Key(token))
				cur = nil
				continue
			}
			path = append(path, Index(i))
			cur = c[i]
		case map[string]any:
			path = append(path, Key(token))
			cur = c[token]
		default:
			path = append(path, Key(token))
			cur = nil
		}
	}
	return path, cur
}

// jsonTypeName names the JSON type of a decoded value for error messages.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// validateCustom runs Layer 2 (Validatable) if args implements it.
func validateCustom(args any) error {
	if v, ok := args.(Validatable); ok {
		return v.Validate()
	}
	return nil
}
