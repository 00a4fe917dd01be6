package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rowbin/csvmap/internal/dynamic"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a file's header against an expected column list",
	Long: `Check reads the first line of a CSV file and compares it against
the expected header given with --expected. Columns are matched
positionally; the expected columns absent from the file are reported.

Example:
  csvmap check invoices.csv --expected "RowNumber,Invoice#,Amount,Issued"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expected, _ := cmd.Flags().GetString("expected")
		if expected == "" {
			return fmt.Errorf("--expected is required")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		first, _, _ := strings.Cut(string(data), "\n")
		actual := strings.TrimSuffix(first, "\r")

		codec, err := dynamic.FromHeader(expected, codecOptions())
		if err != nil {
			return err
		}

		missing := codec.HeaderDiff(actual, expected)
		if missing != "" {
			return fmt.Errorf("header mismatch: missing columns %s", missing)
		}
		cmd.Println("header ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("expected", "e", "", "Expected header line (required)")
}
