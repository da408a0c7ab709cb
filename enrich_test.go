package ankimcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrichViolation_BaseMessage(t *testing.T) {
	t.Parallel()
	v := Violation{
		Message: "minItems: got 0, want 1",
		Path:    Path{Key("notes")},
		Value:   []any{},
	}
	got := EnrichViolation(v)
	assert.Equal(t, "schema validation failed: minItems: got 0, want 1 on instance path 'notes'.", got)
}

func TestEnrichViolation_EmptyPathRendersRoot(t *testing.T) {
	t.Parallel()
	v := Violation{Message: "missing property 'notes'", Path: nil, Value: map[string]any{}}
	got := EnrichViolation(v)
	assert.Contains(t, got, "on instance path 'root'.")
	assert.NotContains(t, got, "Hint:")
}

// Hint precision: present iff the path continues past "fields" AND the
// offending value is a string.
func TestEnrichViolation_HintPrecision(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		path     Path
		value    any
		wantHint bool
	}{
		{"string nested in fields", Path{Key("notes"), Index(0), Key("fields"), Key("Explanation")}, "x<y", true},
		{"string on fields itself", Path{Key("notes"), Index(0), Key("fields")}, "oops", false},
		{"non-string nested in fields", Path{Key("notes"), Index(0), Key("fields"), Key("Front")}, 42.0, false},
		{"string outside fields", Path{Key("notes"), Index(0), Key("deck")}, "", false},
		{"non-string tags element", Path{Key("notes"), Index(0), Key("tags"), Index(1)}, 123.0, false},
		{"map on fields (missing required)", Path{Key("notes"), Index(0), Key("fields")}, map[string]any{"Front": "Q"}, false},
		{"string nested two levels past fields", Path{Key("notes"), Index(0), Key("fields"), Key("Extra"), Index(0)}, "a<b", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := EnrichViolation(Violation{Message: "m", Path: tt.path, Value: tt.value})
			if tt.wantHint {
				assert.Contains(t, got, "Hint: If this error is on a string field")
			} else {
				assert.NotContains(t, got, "Hint:")
			}
		})
	}
}

func TestEnrichViolation_HintText(t *testing.T) {
	t.Parallel()
	v := Violation{
		Message: "'x<y' does not match pattern",
		Path:    Path{Key("notes"), Index(0), Key("fields"), Key("Explanation")},
		Value:   "x<y",
	}
	got := EnrichViolation(v)
	assert.Contains(t, got, "please ensure all special characters (like '<', '>', '\\', '\"') are correctly escaped or handled.")
}
