package seeder

import (
	"context"
	"fmt"

	"skillmatch/internal/database"
	"skillmatch/internal/taxonomy"
)

// TaxonomySeeder writes the built-in default skill taxonomy: the skills with
// their categories, aliases, difficulty and demand, then the relationship
// edges between them.
type TaxonomySeeder struct{}

func (TaxonomySeeder) Name() string { return "taxonomy" }

func (TaxonomySeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "aliases", "difficulty", "demand"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "skill_relationships", "source", "target", "kind", "weight"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, s := range taxonomy.DefaultSkills() {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category, aliases, difficulty, demand)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				aliases = EXCLUDED.aliases,
				difficulty = EXCLUDED.difficulty,
				demand = EXCLUDED.demand`,
			s.ID, s.Name, s.Category, s.Aliases, s.Difficulty, s.Demand,
		)
		if err != nil {
			return fmt.Errorf("skill %s: %w", s.ID, err)
		}
	}

	for _, rel := range taxonomy.DefaultRelationships() {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skill_relationships (source, target, kind, weight)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (source, target, kind) DO NOTHING`,
			rel.Source, rel.Target, string(rel.Kind), rel.Weight,
		)
		if err != nil {
			return fmt.Errorf("relationship %s-%s: %w", rel.Source, rel.Target, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
