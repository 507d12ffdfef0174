package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aevon-lab/primstats/internal/core/summary"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// scanSnapshot scans one accumulators row.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanSnapshot(row scanner) (summary.Snapshot, error) {
	var (
		snap summary.Snapshot
		kind string
	)

	err := row.Scan(
		&kind,
		&snap.Count,
		&snap.Min,
		&snap.Max,
		&snap.Sum,
		&snap.Compensation,
		&snap.SimpleSum,
		&snap.Trues,
	)
	if err != nil {
		return summary.Snapshot{}, fmt.Errorf("failed to scan accumulator row: %w", err)
	}

	snap.Kind = summary.Kind(kind)
	return snap, nil
}
