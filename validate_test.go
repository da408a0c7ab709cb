package ankimcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *ArgsValidator {
	t.Helper()
	v, err := NewBatchCreateNotesValidator()
	require.NoError(t, err)
	return v
}

func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

// The type gate rejects every non-object document before any schema
// evaluation, naming the observed JSON type.
func TestArgsValidator_TypeGate(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)
	tests := []struct {
		name     string
		document any
		wantType string
	}{
		{"string", "not a dict", "string"},
		{"number", 42.0, "number"},
		{"array", []any{"a"}, "array"},
		{"null", nil, "null"},
		{"boolean", true, "boolean"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(tt.document)
			require.Error(t, err)
			assert.True(t, IsArgumentTypeError(err))
			assert.False(t, IsSchemaViolation(err))
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), "must be a JSON object")
			assert.Contains(t, err.Error(), tt.wantType)
		})
	}
}

func TestArgsValidator_ConformingDocuments(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)
	tests := []struct {
		name string
		raw  string
	}{
		{
			"full note",
			`{"notes":[{"type":"Basic","deck":"D","fields":{"Front":"Q","Back":"A","Explanation":"ok"},"tags":["t1","t2"]}]}`,
		},
		{
			"tags and Explanation are optional",
			`{"notes":[{"type":"Basic","deck":"D","fields":{"Front":"Q","Back":"A"}}]}`,
		},
		{
			"several notes",
			`{"notes":[
				{"type":"Basic","deck":"D","fields":{"Front":"Q1","Back":"A1"}},
				{"type":"Cloze","deck":"E","fields":{"Front":"Q2","Back":"A2","Explanation":"because"}}
			]}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.NoError(t, v.Validate(decodeJSON(t, tt.raw)))
			// A document the validator accepts must round-trip into the typed payload.
			var args BatchCreateNotesArgs
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &args))
			assert.NotEmpty(t, args.Notes)
		})
	}
}

func TestArgsValidator_Violations(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)
	tests := []struct {
		name     string
		raw      string
		wantPath string
		wantHint bool
	}{
		{
			"Explanation contains raw '<'",
			`{"notes":[{"type":"Basic","deck":"D","fields":{"Front":"Q","Back":"A","Explanation":"x<y"}}]}`,
			"notes->0->fields->Explanation",
			true,
		},
		{
			"fields is not an object",
			`{"notes":[{"type":"Basic","deck":"D","fields":"oops"}]}`,
			"notes->0->fields",
			false,
		},
		{
			"empty notes array",
			`{"notes":[]}`,
			"notes",
			false,
		},
		{
			"missing deck",
			`{"notes":[{"type":"Basic","fields":{"Front":"f","Back":"b"}}]}`,
			"notes->0",
			false,
		},
		{
			"missing notes key",
			`{"some_other_key":"value"}`,
			"root",
			false,
		},
		{
			"notes is not an array",
			`{"notes":"not an array"}`,
			"notes",
			false,
		},
		{
			"tags element is not a string",
			`{"notes":[{"type":"Basic","deck":"D","fields":{"Front":"f","Back":"b"},"tags":["tag1",123]}]}`,
			"notes->0->tags->1",
			false,
		},
		{
			"note type is not a string",
			`{"notes":[{"type":123,"deck":"D","fields":{"Front":"f","Back":"b"}}]}`,
			"notes->0->type",
			false,
		},
		{
			"missing Back inside fields",
			`{"notes":[{"type":"Basic","deck":"D","fields":{"Front":"Question Only"}}]}`,
			"notes->0->fields",
			false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(decodeJSON(t, tt.raw))
			require.Error(t, err)
			require.True(t, IsSchemaViolation(err), "expected SchemaViolationError, got %T: %v", err, err)
			assert.False(t, IsArgumentTypeError(err))
			assert.ErrorIs(t, err, ErrValidation)

			var sve *SchemaViolationError
			require.ErrorAs(t, err, &sve)
			assert.Equal(t, tt.wantPath, sve.Violation.Path.String())
			assert.Contains(t, err.Error(), "schema validation failed:")
			assert.Contains(t, err.Error(), "on instance path '"+tt.wantPath+"'.")
			if tt.wantHint {
				assert.Contains(t, err.Error(), "Hint: If this error is on a string field")
			} else {
				assert.NotContains(t, err.Error(), "Hint:")
			}
		})
	}
}

// The descriptor carries the value found at the violation path.
func TestArgsValidator_OffendingValue(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)

	err := v.Validate(decodeJSON(t, `{"notes":[{"type":"Basic","deck":"D","fields":{"Front":"Q","Back":"A","Explanation":"x<y"}}]}`))
	var sve *SchemaViolationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, "x<y", sve.Violation.Value)

	err = v.Validate(decodeJSON(t, `{"notes":[]}`))
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, []any{}, sve.Violation.Value)
}

func TestArgsValidator_ValidateJSON(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)

	require.NoError(t, v.ValidateJSON([]byte(`{"notes":[{"type":"Basic","deck":"D","fields":{"Front":"Q","Back":"A"}}]}`)))

	err := v.ValidateJSON([]byte(`{"notes": [`))
	require.Error(t, err)
	assert.True(t, IsClientError(err))
	assert.Contains(t, err.Error(), "json parse error")

	err = v.ValidateJSON([]byte(`"not a dict"`))
	require.Error(t, err)
	assert.True(t, IsArgumentTypeError(err))
}

func TestLocate(t *testing.T) {
	t.Parallel()
	doc := decodeJSON(t, `{"notes":[{"tags":["a",1]}]}`)

	path, value := locate(doc, []string{"notes", "0", "tags", "1"})
	assert.Equal(t, "notes->0->tags->1", path.String())
	assert.Equal(t, 1.0, value)

	path, value = locate(doc, nil)
	assert.Equal(t, "root", path.String())
	assert.Equal(t, doc, value)

	// A numeric token under an object stays a key.
	objDoc := decodeJSON(t, `{"0":{"x":true}}`)
	path, value = locate(objDoc, []string{"0", "x"})
	assert.Equal(t, "0->x", path.String())
	assert.False(t, path[0].IsIndex())
	assert.Equal(t, true, value)

	// Out-of-range index degrades to a key segment with a nil value.
	path, value = locate(doc, []string{"notes", "7"})
	assert.Equal(t, "notes->7", path.String())
	assert.Nil(t, value)
}

func TestJSONTypeName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "null", jsonTypeName(nil))
	assert.Equal(t, "boolean", jsonTypeName(false))
	assert.Equal(t, "string", jsonTypeName("s"))
	assert.Equal(t, "number", jsonTypeName(1.5))
	assert.Equal(t, "array", jsonTypeName([]any{}))
	assert.Equal(t, "object", jsonTypeName(map[string]any{}))
	assert.Equal(t, "int", jsonTypeName(7))
}
