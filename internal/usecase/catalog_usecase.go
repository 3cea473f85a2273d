package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"skillmatch/internal/domain/skill"
	"skillmatch/internal/repository"
	"skillmatch/internal/taxonomy"
)

var ErrSkillNotFound = errors.New("skill not found")

// CatalogNotifier receives catalog change events. Implementations must not
// block.
type CatalogNotifier interface {
	SkillAdded(s skill.Skill, version uint64)
	RelationshipAdded(rel skill.Relationship, version uint64)
	CatalogReloaded(version uint64)
}

type CatalogUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	ListRelationships(ctx context.Context) ([]skill.Relationship, error)
	AddSkill(ctx context.Context, s skill.Skill) (skill.Skill, error)
	AddRelationship(ctx context.Context, rel skill.Relationship) error
	EquivalentsOf(ctx context.Context, id string) ([]string, error)
	PrerequisitesOf(ctx context.Context, id string) ([]string, error)
}

// Catalog serializes write-through mutations: the in-memory graph validates
// first, storage follows, and a storage failure rolls the graph back so the
// two never diverge.
type Catalog struct {
	store    *taxonomy.Store
	repo     repository.CatalogRepository
	notifier CatalogNotifier
	mu       sync.Mutex
}

// NewCatalogUsecase accepts a nil repo (no persistence) and a nil notifier
// (no events).
func NewCatalogUsecase(store *taxonomy.Store, repo repository.CatalogRepository, notifier CatalogNotifier) *Catalog {
	return &Catalog{store: store, repo: repo, notifier: notifier}
}

// Hydrate loads the catalog from storage, falling back to the built-in
// default taxonomy when storage is absent or empty. It returns the number of
// skills loaded.
func (u *Catalog) Hydrate(ctx context.Context) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.repo != nil {
		skills, err := u.repo.ListSkills(ctx)
		if err != nil {
			return 0, fmt.Errorf("%w: list skills: %v", ErrInternal, err)
		}
		if len(skills) > 0 {
			rels, err := u.repo.ListRelationships(ctx)
			if err != nil {
				return 0, fmt.Errorf("%w: list relationships: %v", ErrInternal, err)
			}
			for _, s := range skills {
				if err := u.store.AddSkill(s); err != nil && !errors.Is(err, taxonomy.ErrDuplicateSkill) {
					return 0, err
				}
			}
			for _, rel := range rels {
				if err := u.store.AddRelationship(rel); err != nil && !errors.Is(err, taxonomy.ErrDuplicateRelationship) {
					return 0, err
				}
			}
			u.notifyReloaded()
			return u.store.Len(), nil
		}
	}

	if err := taxonomy.LoadDefaults(u.store); err != nil {
		return 0, err
	}
	u.notifyReloaded()
	return u.store.Len(), nil
}

func (u *Catalog) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	return u.store.Skills(), nil
}

func (u *Catalog) ListRelationships(ctx context.Context) ([]skill.Relationship, error) {
	return u.store.Relationships(), nil
}

func (u *Catalog) AddSkill(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	s.ID = taxonomy.NormalizeID(s.ID)

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.store.AddSkill(s); err != nil {
		return skill.Skill{}, err
	}
	stored, _ := u.store.Lookup(s.ID)

	if u.repo != nil {
		if err := u.repo.UpsertSkill(ctx, stored); err != nil {
			_ = u.store.RemoveSkill(stored.ID)
			return skill.Skill{}, fmt.Errorf("%w: persist skill %q: %v", ErrInternal, stored.ID, err)
		}
	}
	if u.notifier != nil {
		u.notifier.SkillAdded(stored, u.store.Version())
	}
	return stored, nil
}

func (u *Catalog) AddRelationship(ctx context.Context, rel skill.Relationship) error {
	rel.Source = taxonomy.NormalizeID(rel.Source)
	rel.Target = taxonomy.NormalizeID(rel.Target)
	// An unparseable kind stays raw so the store rejects it.
	if kind, ok := skill.ParseRelationKind(string(rel.Kind)); ok {
		rel.Kind = kind
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.store.AddRelationship(rel); err != nil {
		return err
	}

	if u.repo != nil {
		if err := u.repo.InsertRelationship(ctx, rel); err != nil {
			_ = u.store.RemoveRelationship(rel.Source, rel.Target, rel.Kind)
			return fmt.Errorf("%w: persist relationship %s-%s: %v", ErrInternal, rel.Source, rel.Target, err)
		}
	}
	if u.notifier != nil {
		u.notifier.RelationshipAdded(rel, u.store.Version())
	}
	return nil
}

func (u *Catalog) EquivalentsOf(ctx context.Context, id string) ([]string, error) {
	id = taxonomy.NormalizeID(id)
	if _, ok := u.store.Lookup(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrSkillNotFound, id)
	}
	return u.store.Equivalents(id), nil
}

func (u *Catalog) PrerequisitesOf(ctx context.Context, id string) ([]string, error) {
	id = taxonomy.NormalizeID(id)
	if _, ok := u.store.Lookup(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrSkillNotFound, id)
	}
	return u.store.Prerequisites(id), nil
}

func (u *Catalog) notifyReloaded() {
	if u.notifier != nil {
		u.notifier.CatalogReloaded(u.store.Version())
	}
}
