package ankimcp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// BatchCreateNotesToolName is the name the tool is registered and called under.
const BatchCreateNotesToolName = "batch_create_notes"

const batchCreateNotesDescription = "Create a batch of Anki notes. " +
	"Each note names its note type, target deck, and field contents; " +
	"string fields containing HTML or MathJax must be escaped."

// Tool is the contract for an LLM-callable instrument.
// It is provider-agnostic (no knowledge of OpenAI, Anthropic, etc.).
type Tool interface {
	Name() string
	Description() string
	// Parameters returns a valid JSON Schema as map (compatible with LLM tool definitions).
	Parameters() map[string]any
	// Execute runs the tool on a raw JSON argument payload and returns the
	// marshaled result. Validation failures come back as ClientError so the
	// message can be handed to the LLM for self-correction.
	Execute(ctx context.Context, argsJSON []byte) ([]byte, error)
}

// ToolMetadata is implemented by tools created in this package and provides
// optional per-tool settings. Registry uses Timeout() to override the default
// execution timeout when set.
type ToolMetadata interface {
	Timeout() time.Duration
	Tags() []string
	Version() string
	IsDangerous() bool
}

// ToolCall is a single execution request (as produced by the LLM).
type ToolCall struct {
	ID       string
	ToolName string
	Args     json.RawMessage // JSON payload of arguments
}

// ToolResult is passed to the after-execution hook (WithOnAfterExecute) when
// a tool execution finishes (success or error).
type ToolResult struct {
	CallID   string
	ToolName string
	Data     []byte
	Err      error
}

// tool is the internal implementation of Tool built by NewTool,
// NewDynamicTool, or NewBatchCreateNotesTool.
type tool struct {
	name        string
	description string
	schema      map[string]any
	execute     func(context.Context, []byte) ([]byte, error)
	opts        toolOptions
}

// NewBatchCreateNotesTool builds the batch_create_notes tool around a
// NoteAdder backend. Arguments pass the type gate and schema validation
// before any note reaches the backend; violation messages are enriched with
// the escaping hint where the path points at field content. The contract can
// be swapped with WithSchema (e.g. one loaded via LoadSchemaFile).
func NewBatchCreateNotesTool(adder NoteAdder, opts ...ToolOption) (Tool, error) {
	if adder == nil {
		return nil, fmt.Errorf("note adder must not be nil")
	}
	var o toolOptions
	for _, opt := range opts {
		opt(&o)
	}
	contract := o.schema
	if contract == nil {
		var err error
		contract, err = SchemaFor[BatchCreateNotesArgs](o.strict)
		if err != nil {
			return nil, err
		}
	}
	validator := NewArgsValidator(contract)
	execute := func(ctx context.Context, argsJSON []byte) ([]byte, error) {
		if err := validator.ValidateJSON(argsJSON); err != nil {
			return nil, toPipelineError(err)
		}
		var args BatchCreateNotesArgs
		if err := json.Unmarshal(argsJSON, &args); err != nil {
			return nil, wrapJSONParseError(err)
		}
		added, err := adder.AddNotes(ctx, args.Notes)
		if err != nil {
			return nil, wrapHandlerError(err)
		}
		b, err := json.Marshal(BatchCreateNotesResult{Added: added})
		if err != nil {
			return nil, &SystemError{Err: err}
		}
		return b, nil
	}
	return &tool{
		name:        BatchCreateNotesToolName,
		description: batchCreateNotesDescription,
		schema:      contract.Raw(),
		execute:     execute,
		opts:        o,
	}, nil
}

// NewTool builds a Tool from a typed function. Schema and validation are
// delegated to Extractor[T]. Execute runs ParseAndValidate, fn, then marshals
// the result. Returns an error if schema generation fails (e.g. unsupported type).
func NewTool[T any, R any](
	name, description string,
	fn func(ctx context.Context, args T) (R, error),
	opts ...ToolOption,
) (Tool, error) {
	var o toolOptions
	for _, opt := range opts {
		opt(&o)
	}
	ext, err := NewExtractor[T](o.strict)
	if err != nil {
		return nil, err
	}
	execute := func(ctx context.Context, argsJSON []byte) ([]byte, error) {
		args, err := ext.ParseAndValidate(argsJSON)
		if err != nil {
			return nil, err
		}
		res, err := fn(ctx, args)
		if err != nil {
			return nil, wrapHandlerError(err)
		}
		b, err := json.Marshal(res)
		if err != nil {
			return nil, &SystemError{Err: err}
		}
		return b, nil
	}
	return &tool{
		name:        name,
		description: description,
		schema:      ext.Schema(),
		execute:     execute,
		opts:        o,
	}, nil
}

// NewDynamicTool creates a Tool from a raw JSON Schema map and a function
// that receives the validated raw JSON. Useful for runtime contract
// integration (e.g. a schema file shipped with the deployment). Layer 1
// (type gate + schema) validation only; the handler receives raw []byte.
// The provided schemaMap is not mutated; a defensive copy is made before any
// modifications (e.g. WithStrict).
func NewDynamicTool(
	name, description string,
	schemaMap map[string]any,
	fn func(ctx context.Context, argsJSON []byte) ([]byte, error),
	opts ...ToolOption,
) (Tool, error) {
	var o toolOptions
	for _, opt := range opts {
		opt(&o)
	}
	if schemaMap == nil {
		return nil, fmt.Errorf("dynamic schema map must not be nil")
	}
	if fn == nil {
		return nil, fmt.Errorf("dynamic tool handler must not be nil")
	}
	// Defensive deep copy before any modifications so the caller's map is never mutated.
	data, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("failed to deep copy schema map: %w", err)
	}
	var schemaCopy map[string]any
	if err := json.Unmarshal(data, &schemaCopy); err != nil {
		return nil, fmt.Errorf("failed to deep copy schema map: %w", err)
	}
	if o.strict {
		applyStrictMode(schemaCopy)
	}
	stripSchemaIDs(schemaCopy)
	contract, err := compileSchemaMap(schemaCopy)
	if err != nil {
		return nil, fmt.Errorf("failed to compile dynamic schema: %w", err)
	}
	validator := NewArgsValidator(contract)
	execute := func(ctx context.Context, argsJSON []byte) ([]byte, error) {
		if err := validator.ValidateJSON(argsJSON); err != nil {
			return nil, toPipelineError(err)
		}
		res, err := fn(ctx, argsJSON)
		if err != nil {
			return nil, wrapHandlerError(err)
		}
		return res, nil
	}
	return &tool{
		name:        name,
		description: description,
		schema:      contract.Raw(),
		execute:     execute,
		opts:        o,
	}, nil
}

func (t *tool) Name() string        { return t.name }
func (t *tool) Description() string { return t.description }

// Parameters returns a shallow copy of the JSON Schema (top-level keys only).
// Nested maps (e.g. under "properties") are shared; callers must not mutate them.
func (t *tool) Parameters() map[string]any { return maps.Clone(t.schema) }

func (t *tool) Execute(ctx context.Context, argsJSON []byte) ([]byte, error) {
	return t.execute(ctx, argsJSON)
}

func (t *tool) Timeout() time.Duration { return t.opts.timeout }
func (t *tool) Tags() []string         { return append([]string(nil), t.opts.tags...) }
func (t *tool) Version() string        { return t.opts.version }
func (t *tool) IsDangerous() bool      { return t.opts.dangerous }

// wrapHandlerError passes through ClientError; wraps other errors as SystemError.
func wrapHandlerError(err error) error {
	if err == nil {
		return nil
	}
	if IsClientError(err) {
		return err
	}
	return &SystemError{Err: err}
}

// toPipelineError converts validator errors into the ClientError/SystemError
// split the tool pipeline reports, keeping typed errors in the chain.
func toPipelineError(err error) error {
	if err == nil || IsClientError(err) || IsSystemError(err) {
		return err
	}
	return wrapValidationError(err)
}

var (
	_ Tool         = (*tool)(nil)
	_ ToolMetadata = (*tool)(nil)
)
