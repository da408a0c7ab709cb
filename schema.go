package ankimcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	genschema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// schemaResourceURL is the resource name schemas are compiled under. Real
// URLs are irrelevant: $id is stripped and nothing resolves across resources.
const schemaResourceURL = "schema.json"

var errNilSchema = errors.New("schema reflection returned nil")

// Schema is a compiled argument contract: the raw JSON Schema document (as
// shown to the LLM) plus the compiled validator. Build one with
// BatchCreateNotesSchema, SchemaFor, CompileSchema, or LoadSchemaFile.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns a shallow copy of the JSON Schema (top-level keys only).
// Nested maps are shared; callers must not mutate them.
func (s *Schema) Raw() map[string]any {
	return maps.Clone(s.raw)
}

// validate checks an already-parsed JSON value against the compiled schema.
func (s *Schema) validate(v any) error {
	return s.compiled.Validate(v)
}

// BatchCreateNotesSchema returns the built-in batch_create_notes argument
// contract, generated from BatchCreateNotesArgs.
func BatchCreateNotesSchema() (*Schema, error) {
	return SchemaFor[BatchCreateNotesArgs](false)
}

// SchemaFor generates and compiles the JSON Schema for type T. strict sets
// additionalProperties: false and marks every property required on all
// objects (OpenAI Structured Outputs).
func SchemaFor[T any](strict bool) (*Schema, error) {
	r := &genschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	reflected := r.Reflect(new(T))
	if reflected == nil {
		return nil, errNilSchema
	}
	data, err := json.Marshal(reflected)
	if err != nil {
		return nil, err
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return nil, err
	}
	if strict {
		applyStrictMode(schemaMap)
	}
	stripSchemaIDs(schemaMap)
	return compileSchemaMap(schemaMap)
}

// CompileSchema compiles an externally supplied raw JSON Schema. The caller's
// map is never mutated: a deep copy is made before IDs are stripped.
func CompileSchema(schemaMap map[string]any) (*Schema, error) {
	if schemaMap == nil {
		return nil, fmt.Errorf("schema map must not be nil")
	}
	data, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("failed to deep copy schema map: %w", err)
	}
	var schemaCopy map[string]any
	if err := json.Unmarshal(data, &schemaCopy); err != nil {
		return nil, fmt.Errorf("failed to deep copy schema map: %w", err)
	}
	stripSchemaIDs(schemaCopy)
	return compileSchemaMap(schemaCopy)
}

// LoadSchemaFile reads a schema document from a YAML or JSON file and
// compiles it. This is the swappable, versioned form of the argument
// contract: the shape lives next to the deployment, not in code.
func LoadSchemaFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	return CompileSchema(doc)
}

// compileSchemaMap compiles a raw JSON Schema map. The map is stored as the
// Schema's raw form; callers pass ownership.
func compileSchemaMap(schemaMap map[string]any) (*Schema, error) {
	data, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, err
	}
	// Round-trip through the validator's own decoder so numeric schema
	// keywords (minItems etc.) arrive in the representation it expects.
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaResourceURL, doc); err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	compiled, err := c.Compile(schemaResourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Schema{raw: schemaMap, compiled: compiled}, nil
}

// walkSchema recursively visits every map node in the schema tree (including
// $defs and definitions).
func walkSchema(schemaMap map[string]any, visit func(map[string]any)) {
	if schemaMap == nil {
		return
	}
	visit(schemaMap)
	for _, val := range schemaMap {
		switch v := val.(type) {
		case map[string]any:
			walkSchema(v, visit)
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					walkSchema(m, visit)
				}
			}
		}
	}
}

// applyStrictMode sets additionalProperties: false and requires every
// property for every object in the schema.
func applyStrictMode(schemaMap map[string]any) {
	walkSchema(schemaMap, func(n map[string]any) {
		props, isObj := n["properties"].(map[string]any)
		if !isObj {
			return
		}
		n["additionalProperties"] = false
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		if len(keys) == 0 {
			return
		}
		slices.Sort(keys)
		required := make([]any, len(keys))
		for i, k := range keys {
			required[i] = k
		}
		n["required"] = required
	})
}

// stripSchemaIDs removes id and $id from the schema so resolution does not
// depend on them.
func stripSchemaIDs(schemaMap map[string]any) {
	walkSchema(schemaMap, func(n map[string]any) {
		delete(n, "id")
		delete(n, "$id")
	})
}
