package seeder

import (
	"context"
	"fmt"
	"strings"

	"skillmatch/internal/database"
)

// EnsureTableColumns fails fast when the live schema lacks any column a
// seeder is about to write, turning a confusing insert error into a clear
// schema-mismatch message naming every missing column.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(existing) == 0 {
		return fmt.Errorf("schema mismatch: table %s does not exist", table)
	}

	var missing []string
	for _, col := range columns {
		if strings.TrimSpace(col) == "" {
			return fmt.Errorf("empty column")
		}
		if _, ok := existing[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: table %s is missing columns %s", table, strings.Join(missing, ", "))
	}
	return nil
}
