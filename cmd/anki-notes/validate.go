package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	ankimcp "github.com/ooopus/anki-mcp-server"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an argument document from a file or stdin",
	Long: `Reads a JSON argument document from the given file (or stdin when no file
is given) and validates it against the batch_create_notes contract.
On failure, prints the enriched violation message and exits nonzero.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDocument(args)
		if err != nil {
			return err
		}

		contract, err := loadContract()
		if err != nil {
			return err
		}
		slog.Debug("contract compiled", "source", contractSource())

		validator := ankimcp.NewArgsValidator(contract)
		if err := validator.ValidateJSON(data); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "input validation successful: document conforms to the schema")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// readDocument reads the candidate document from the positional file argument
// or, when absent, from stdin.
func readDocument(args []string) ([]byte, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read document from stdin: %w", err)
	}
	return data, nil
}

// loadContract returns the --schema file contract when given, otherwise the
// built-in generated one.
func loadContract() (*ankimcp.Schema, error) {
	if schemaFile != "" {
		return ankimcp.LoadSchemaFile(schemaFile)
	}
	return ankimcp.BatchCreateNotesSchema()
}

func contractSource() string {
	if schemaFile != "" {
		return schemaFile
	}
	return "built-in"
}
