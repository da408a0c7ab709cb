package ankimcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment_Variants(t *testing.T) {
	t.Parallel()
	key := Key("fields")
	assert.False(t, key.IsIndex())
	assert.Equal(t, "fields", key.KeyName())
	assert.Equal(t, -1, key.ArrayIndex())
	assert.Equal(t, "fields", key.String())

	idx := Index(3)
	assert.True(t, idx.IsIndex())
	assert.Equal(t, "", idx.KeyName())
	assert.Equal(t, 3, idx.ArrayIndex())
	assert.Equal(t, "3", idx.String())
}

func TestPath_String(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		path   Path
		expect string
	}{
		{"empty renders as root", Path{}, "root"},
		{"nil renders as root", nil, "root"},
		{"single key", Path{Key("notes")}, "notes"},
		{"keys and indices", Path{Key("notes"), Index(0), Key("fields"), Key("Explanation")}, "notes->0->fields->Explanation"},
		{"index last", Path{Key("notes"), Index(2)}, "notes->2"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, tt.path.String())
		})
	}
}

func TestPath_ContainsKeyBeforeEnd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		path   Path
		expect bool
	}{
		{"nested past fields", Path{Key("notes"), Index(0), Key("fields"), Key("Explanation")}, true},
		{"path ends at fields", Path{Key("notes"), Index(0), Key("fields")}, false},
		{"fields absent", Path{Key("notes"), Index(0), Key("tags"), Index(1)}, false},
		{"empty path", Path{}, false},
		{"index does not match key", Path{Key("notes"), Index(0), Key("x")}, false},
		{"fields at root with trailing segment", Path{Key("fields"), Key("Front")}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, tt.path.ContainsKeyBeforeEnd("fields"))
		})
	}
}
