package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the argument contract as JSON Schema",
	Long: `Prints the batch_create_notes argument contract (built-in, or the file
given with --schema after compilation) as indented JSON.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		contract, err := loadContract()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(contract.Raw(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
