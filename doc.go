// Package ankimcp validates the argument payload of the batch_create_notes
// tool and turns schema violations into messages an LLM can act on.
//
// # Overview
//
// LLMs produce tool calls as JSON. Before any note reaches Anki, the payload
// is checked in two steps: a type gate (the arguments must be a JSON object)
// and structural validation against a JSON Schema generated from the typed
// payload structs. On failure, the violation's instance path is classified:
// a bad value nested inside a named field of a note's fields map gets an
// escaping hint appended, because unescaped HTML/MathJax characters are the
// usual culprit there. Structural problems (missing keys, wrong container
// types) keep the plain message.
//
// Pipeline: argument struct → schema (reflection) → ArgsValidator (type gate,
// validate, enrich) → Tool → Registry → Execute → result or ClientError.
//
// # Key concepts
//
//   - Single Source of Truth: one set of struct tags drives both the schema
//     sent to the LLM and the validation of incoming JSON.
//   - Swappable contract: the schema is data; CompileSchema and
//     LoadSchemaFile accept an externally supplied contract.
//   - Self-Correction: ClientError carries the enriched message back to the
//     LLM; SystemError hides internal failures.
//
// See ArgsValidator, EnrichViolation, and NewBatchCreateNotesTool for the
// core entry points, and NewRegistry for execution.
//
// # Example
//
//	tool, err := ankimcp.NewBatchCreateNotesTool(adder)
//	if err != nil { ... }
//	reg := ankimcp.NewRegistry()
//	reg.Register(tool)
//	res, err := reg.Execute(ctx, ankimcp.ToolCall{
//	    ID: "1", ToolName: "batch_create_notes",
//	    Args: []byte(`{"notes":[{"type":"Basic","deck":"D","fields":{"Front":"Q","Back":"A"}}]}`),
//	})
package ankimcp
