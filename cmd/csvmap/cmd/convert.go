package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rowbin/csvmap/internal/dynamic"
	"github.com/rowbin/csvmap/internal/logging"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Re-encode a CSV file with different settings",
	Long: `Convert decodes a CSV file and writes it back with a different
separator, an optional EOF sentinel row, and optional keyword
filtering. Column order is preserved.

Examples:
  csvmap convert in.csv out.csv --out-separator ";"
  csvmap convert in.csv out.csv --keyword apple --keyword banana
  csvmap convert in.csv out.csv --emit-eof`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inPath, outPath := args[0], args[1]

		data, err := os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", inPath, err)
		}
		first, _, _ := strings.Cut(string(data), "\n")
		header := strings.TrimSuffix(first, "\r")

		inOpts := codecOptions()
		inCodec, err := dynamic.FromHeader(header, inOpts)
		if err != nil {
			return err
		}

		keywords, _ := cmd.Flags().GetStringArray("keyword")
		records, err := inCodec.Decode(strings.NewReader(string(data)), keywords...)
		if err != nil {
			return err
		}

		outSep, _ := cmd.Flags().GetString("out-separator")
		if outSep == "" {
			outSep = inOpts.Separator
		}
		if len(outSep) != 1 {
			return fmt.Errorf("out-separator must be a single character, got %q", outSep)
		}

		outOpts := inOpts
		outOpts.Separator = outSep
		outOpts.EmitEOF, _ = cmd.Flags().GetBool("emit-eof")

		cols := dynamic.Columns(header, inOpts.Separator, inOpts.RowNumberTitle)
		outHeader := strings.Join(cols, outSep)
		if !inCodec.Options().OmitRowNumbers {
			outHeader = inOpts.RowNumberTitle + outSep + outHeader
		}

		outCodec, err := dynamic.FromHeader(outHeader, outOpts)
		if err != nil {
			return err
		}

		if err := outCodec.EncodeFile(outPath, records); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}

		logging.WithFields(cmd.Context(),
			"in", inPath,
			"out", outPath,
			"rows", len(records),
		).Info("converted")
		cmd.Printf("wrote %d rows to %s\n", len(records), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("out-separator", "", "Separator for the output file (default: same as input)")
	convertCmd.Flags().Bool("emit-eof", false, "Append an EOF sentinel row to the output")
	convertCmd.Flags().StringArray("keyword", nil, "Keep only rows containing this keyword (repeatable)")
}
