package repository

import (
	"context"
	"fmt"

	"skillmatch/internal/database"
	"skillmatch/internal/domain/skill"
)

type CatalogRepository interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	ListRelationships(ctx context.Context) ([]skill.Relationship, error)
	UpsertSkill(ctx context.Context, s skill.Skill) error
	InsertRelationship(ctx context.Context, rel skill.Relationship) error
}

type PostgresCatalogRepository struct {
	db database.DB
}

func NewPostgresCatalogRepository(db database.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, aliases, difficulty, demand
		FROM skills
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Aliases, &s.Difficulty, &s.Demand); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCatalogRepository) ListRelationships(ctx context.Context) ([]skill.Relationship, error) {
	rows, err := r.db.Query(ctx, `
		SELECT source, target, kind, weight
		FROM skill_relationships
		ORDER BY source ASC, kind ASC, target ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Relationship, 0)
	for rows.Next() {
		var (
			rel skill.Relationship
			raw string
		)
		if err := rows.Scan(&rel.Source, &rel.Target, &raw, &rel.Weight); err != nil {
			return nil, err
		}
		kind, ok := skill.ParseRelationKind(raw)
		if !ok {
			return nil, fmt.Errorf("unknown relationship kind %q for %s-%s", raw, rel.Source, rel.Target)
		}
		rel.Kind = kind
		out = append(out, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCatalogRepository) UpsertSkill(ctx context.Context, s skill.Skill) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO skills (id, name, category, aliases, difficulty, demand)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			aliases = EXCLUDED.aliases,
			difficulty = EXCLUDED.difficulty,
			demand = EXCLUDED.demand`,
		s.ID, s.Name, s.Category, s.Aliases, s.Difficulty, s.Demand)
	return err
}

func (r *PostgresCatalogRepository) InsertRelationship(ctx context.Context, rel skill.Relationship) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO skill_relationships (source, target, kind, weight)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (source, target, kind) DO NOTHING`,
		rel.Source, rel.Target, string(rel.Kind), rel.Weight)
	return err
}
