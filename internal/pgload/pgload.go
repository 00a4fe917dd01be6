// Package pgload bulk-inserts decoded CSV rows into a PostgreSQL table.
//
// Each row gets its own savepoint, so a failing row rolls back alone
// and the rest of the batch proceeds; the whole load still runs in one
// transaction and commits atomically. Failed rows are reported with
// their line number and reason rather than aborting the load.
package pgload

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rowbin/csvmap/internal/logging"
)

// DB is the subset of pgx pool behavior the loader needs.
// Satisfied by *pgxpool.Pool.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// identRegex validates table and column identifiers before they are
// interpolated (quoted) into SQL.
var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_ #]*$`)

// FailedRow describes one row that could not be inserted.
type FailedRow struct {
	LineNumber int      // 1-based position in the row slice
	Reason     string   // why the insert failed
	Values     []string // the row as decoded
}

// Result summarizes one load.
type Result struct {
	Table      string
	Inserted   int
	Skipped    int
	FailedRows []FailedRow
	Duration   time.Duration
}

// Loader inserts row batches into Postgres.
type Loader struct {
	db        DB
	batchSize int
}

// New creates a loader. batchSize controls progress logging granularity,
// not transaction boundaries.
func New(db DB, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &Loader{db: db, batchSize: batchSize}
}

// LoadRows inserts rows into table. columns are the CSV column titles;
// they are converted to snake_case database column names. Every row
// must have len(columns) values; shorter rows are padded with NULLs.
func (l *Loader) LoadRows(ctx context.Context, table string, columns []string, rows [][]string) (*Result, error) {
	start := time.Now()
	result := &Result{Table: table}

	if !identRegex.MatchString(table) {
		return nil, fmt.Errorf("pgload: invalid table name %q", table)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("pgload: no columns")
	}

	dbCols := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		if !identRegex.MatchString(col) {
			return nil, fmt.Errorf("pgload: invalid column name %q", col)
		}
		dbCols[i] = quoteIdentifier(toDBColumnName(col))
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdentifier(table),
		strings.Join(dbCols, ", "),
		strings.Join(placeholders, ", "),
	)

	logger := logging.WithFields(ctx, "table", table, "rows", len(rows))
	logger.Info("load started")

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("pgload: begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, row := range rows {
		params := buildParams(row, len(columns))

		savepoint := fmt.Sprintf("sp_%d", i)
		if _, err := tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
			return nil, fmt.Errorf("pgload: create savepoint: %w", err)
		}

		if _, err := tx.Exec(ctx, insertSQL, params...); err != nil {
			if _, rbErr := tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
				return nil, fmt.Errorf("pgload: rollback savepoint: %w", rbErr)
			}
			result.FailedRows = append(result.FailedRows, FailedRow{
				LineNumber: i + 1,
				Reason:     fmt.Sprintf("insert: %v", err),
				Values:     row,
			})
			continue
		}

		if _, err := tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
			return nil, fmt.Errorf("pgload: release savepoint: %w", err)
		}

		result.Inserted++
		if result.Inserted%l.batchSize == 0 {
			logger.Debug("load progress", "inserted", result.Inserted)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("pgload: commit: %w", err)
	}

	result.Skipped = len(result.FailedRows)
	result.Duration = time.Since(start)
	logger.Info("load complete",
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// buildParams renders a row as insert parameters. Empty cells become
// NULL via pgtype.Text's Valid flag; missing trailing cells too.
func buildParams(row []string, width int) []any {
	params := make([]any, width)
	for i := 0; i < width; i++ {
		var v string
		if i < len(row) {
			v = strings.TrimSpace(row[i])
		}
		params[i] = pgtype.Text{String: v, Valid: v != ""}
	}
	return params
}

// quoteIdentifier quotes a SQL identifier for safe interpolation.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// toDBColumnName converts a display column name to a database column name.
// "Transaction ID" -> "transaction_id"; "Invoice#" -> "invoice_number".
func toDBColumnName(name string) string {
	name = strings.ReplaceAll(name, "#", " number")
	name = strings.Join(strings.Fields(name), "_")
	return strings.ToLower(name)
}
