package postgres

// SQL queries for accumulator snapshot storage

const (
	// queryUpsertSnapshot replaces the whole snapshot for an id.
	// Accumulators are merged in Go, never in SQL, so the row is overwritten.
	queryUpsertSnapshot = `
		INSERT INTO accumulators (
			id, kind, count, min_value, max_value, sum_value,
			compensation, simple_sum, trues, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (id) DO UPDATE SET
			kind         = EXCLUDED.kind,
			count        = EXCLUDED.count,
			min_value    = EXCLUDED.min_value,
			max_value    = EXCLUDED.max_value,
			sum_value    = EXCLUDED.sum_value,
			compensation = EXCLUDED.compensation,
			simple_sum   = EXCLUDED.simple_sum,
			trues        = EXCLUDED.trues,
			updated_at   = EXCLUDED.updated_at
	`

	queryGetSnapshot = `
		SELECT
			kind, count, min_value, max_value, sum_value,
			compensation, simple_sum, trues
		FROM accumulators
		WHERE id = $1
	`

	queryLockSnapshot = `
		SELECT
			kind, count, min_value, max_value, sum_value,
			compensation, simple_sum, trues
		FROM accumulators
		WHERE id = $1
		FOR UPDATE
	`

	queryListIDs = `SELECT id FROM accumulators ORDER BY id ASC`

	queryDeleteSnapshot = `DELETE FROM accumulators WHERE id = $1`

	// queryTableExists checks whether migrations have created the table.
	queryTableExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'accumulators'
		)
	`
)
