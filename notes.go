package ankimcp

import "context"

// NoteFields holds the named content strings of a note. Front and Back are
// required; Explanation is optional but, when present, must not contain a raw
// '<' — HTML/MathJax content has to arrive escaped.
type NoteFields struct {
	Front       string `json:"Front" jsonschema:"description=Question side of the card"`
	Back        string `json:"Back" jsonschema:"description=Answer side of the card"`
	Explanation string `json:"Explanation,omitempty" jsonschema:"pattern=^[^<]*$,description=Optional extra context shown with the answer"`
}

// Note is one flashcard record in a batch_create_notes payload.
type Note struct {
	Type   string     `json:"type" jsonschema:"description=Anki note type (model) name"`
	Deck   string     `json:"deck" jsonschema:"description=Target deck name"`
	Fields NoteFields `json:"fields"`
	Tags   []string   `json:"tags,omitempty" jsonschema:"description=Optional tags attached to the note"`
}

// BatchCreateNotesArgs is the full argument payload of the batch_create_notes
// tool. An empty batch is a schema violation.
type BatchCreateNotesArgs struct {
	Notes []Note `json:"notes" jsonschema:"minItems=1"`
}

// AddedNote reports the outcome for a single note in a batch.
type AddedNote struct {
	NoteID int64  `json:"note_id"`
	Deck   string `json:"deck"`
}

// BatchCreateNotesResult is the tool's response payload.
type BatchCreateNotesResult struct {
	Added []AddedNote `json:"added"`
}

// NoteAdder is the backend port the batch_create_notes tool hands validated
// notes to (e.g. an AnkiConnect client). Implementations receive only
// payloads that passed schema validation.
type NoteAdder interface {
	AddNotes(ctx context.Context, notes []Note) ([]AddedNote, error)
}

// NoteAdderFunc adapts a function to the NoteAdder interface.
type NoteAdderFunc func(ctx context.Context, notes []Note) ([]AddedNote, error)

// AddNotes calls f.
func (f NoteAdderFunc) AddNotes(ctx context.Context, notes []Note) ([]AddedNote, error) {
	return f(ctx, notes)
}
