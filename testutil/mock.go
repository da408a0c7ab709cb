// Package testutil provides test helpers for ankimcp (e.g. MockTool, MockAdder).
package testutil

import (
	"context"

	ankimcp "github.com/ooopus/anki-mcp-server"
)

// MockTool is a configurable Tool implementation for tests.
type MockTool struct {
	NameVal   string
	DescVal   string
	ParamsVal map[string]any
	ExecuteFn func(ctx context.Context, args []byte) ([]byte, error)
}

// Name returns the tool name.
func (m *MockTool) Name() string {
	if m.NameVal != "" {
		return m.NameVal
	}
	return "mock"
}

// Description returns the tool description.
func (m *MockTool) Description() string {
	return m.DescVal
}

// Parameters returns the parameters schema (or empty map).
func (m *MockTool) Parameters() map[string]any {
	if m.ParamsVal != nil {
		return m.ParamsVal
	}
	return map[string]any{}
}

// Execute runs ExecuteFn if set, otherwise returns an empty JSON object.
func (m *MockTool) Execute(ctx context.Context, args []byte) ([]byte, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, args)
	}
	return []byte(`{}`), nil
}

// MockAdder is a NoteAdder that records the notes it receives and returns
// canned results.
type MockAdder struct {
	Notes   []ankimcp.Note
	Results []ankimcp.AddedNote
	Err     error
}

// AddNotes records notes and returns the configured results or error.
func (m *MockAdder) AddNotes(_ context.Context, notes []ankimcp.Note) ([]ankimcp.AddedNote, error) {
	m.Notes = append(m.Notes, notes...)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

// Ensure the mocks implement their contracts.
var (
	_ ankimcp.Tool      = (*MockTool)(nil)
	_ ankimcp.NoteAdder = (*MockAdder)(nil)
)
