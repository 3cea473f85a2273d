// Package seeder populates the catalog tables with baseline data. Each
// Seeder is idempotent; running the set twice leaves the database unchanged.
package seeder

import (
	"context"
	"fmt"

	"skillmatch/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Runner executes seeders in order, stopping at the first failure.
type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

// Defaults is the seeder set cmd/seeder runs.
func Defaults() []Seeder {
	return []Seeder{TaxonomySeeder{}}
}
