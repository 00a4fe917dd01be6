package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/rowbin/csvmap/internal/dynamic"
	"github.com/rowbin/csvmap/internal/logging"
	"github.com/rowbin/csvmap/internal/pgload"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a CSV file into a Postgres table",
	Long: `Load decodes a CSV file and inserts its rows into a Postgres
table. Column titles are converted to snake_case column names. Rows
that fail to insert are skipped and reported; the rest of the load
continues.

The connection string is taken from DATABASE_URL (or DB_URL).

Example:
  csvmap load invoices.csv --table invoices`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, _ := cmd.Flags().GetString("table")
		if table == "" {
			return fmt.Errorf("--table is required")
		}
		if cfg.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		first, _, _ := strings.Cut(string(data), "\n")
		header := strings.TrimSuffix(first, "\r")

		opts := codecOptions()
		codec, err := dynamic.FromHeader(header, opts)
		if err != nil {
			return err
		}

		records, err := codec.Decode(strings.NewReader(string(data)))
		if err != nil {
			return err
		}

		cols := dynamic.Columns(header, opts.Separator, opts.RowNumberTitle)
		rows := make([][]string, len(records))
		for i, rec := range records {
			row := make([]string, len(cols))
			for j, col := range cols {
				row[j] = rec.Get(col)
			}
			rows[i] = row
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Database.Timeout)
		defer cancel()

		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("parse database URL: %w", err)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("ping: %w", err)
		}

		loader := pgload.New(pool, cfg.Database.BatchSize)
		result, err := loader.LoadRows(ctx, table, cols, rows)
		if err != nil {
			return err
		}

		logging.WithFields(ctx,
			"table", result.Table,
			"inserted", result.Inserted,
			"skipped", result.Skipped,
			"duration", result.Duration,
		).Info("load finished")

		cmd.Printf("inserted %d rows into %s (%d skipped)\n",
			result.Inserted, result.Table, result.Skipped)
		for _, f := range result.FailedRows {
			cmd.Printf("  line %d: %s\n", f.LineNumber, f.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringP("table", "t", "", "Target table name (required)")
}
