package matching

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

const (
	StrategyHybrid             = "hybrid"
	StrategySkillWeighted      = "skill-weighted"
	StrategySemanticWeighted   = "semantic-weighted"
	StrategyExperienceWeighted = "experience-weighted"
)

const (
	FactorSkillOverlap       = "skill_overlap"
	FactorExperienceFit      = "experience_fit"
	FactorLocationFit        = "location_fit"
	FactorSemanticSimilarity = "semantic_similarity"
	FactorCompensationFit    = "compensation_fit"
)

// Weights is one strategy's factor weight vector. Values need not sum to 1;
// they are normalized before combination.
type Weights struct {
	SkillOverlap       float64
	ExperienceFit      float64
	LocationFit        float64
	SemanticSimilarity float64
	CompensationFit    float64
}

func (w Weights) sum() float64 {
	return w.SkillOverlap + w.ExperienceFit + w.LocationFit + w.SemanticSimilarity + w.CompensationFit
}

func (w Weights) validate() error {
	if w.SkillOverlap < 0 || w.ExperienceFit < 0 || w.LocationFit < 0 ||
		w.SemanticSimilarity < 0 || w.CompensationFit < 0 {
		return ErrInvalidWeights
	}
	if w.sum() <= 0 {
		return ErrInvalidWeights
	}
	return nil
}

// Normalize scales the vector so the weights sum to 1.
func (w Weights) Normalize() (Weights, error) {
	if err := w.validate(); err != nil {
		return Weights{}, err
	}
	s := w.sum()
	return Weights{
		SkillOverlap:       w.SkillOverlap / s,
		ExperienceFit:      w.ExperienceFit / s,
		LocationFit:        w.LocationFit / s,
		SemanticSimilarity: w.SemanticSimilarity / s,
		CompensationFit:    w.CompensationFit / s,
	}, nil
}

// Registry maps strategy names to weight vectors. Adding a strategy is a
// data insertion; the scoring algorithm never branches on the name.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Weights
}

func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Weights{
		StrategyHybrid:             {SkillOverlap: 0.35, ExperienceFit: 0.25, LocationFit: 0.15, SemanticSimilarity: 0.15, CompensationFit: 0.10},
		StrategySkillWeighted:      {SkillOverlap: 0.60, ExperienceFit: 0.15, LocationFit: 0.05, SemanticSimilarity: 0.15, CompensationFit: 0.05},
		StrategySemanticWeighted:   {SkillOverlap: 0.20, ExperienceFit: 0.10, LocationFit: 0.05, SemanticSimilarity: 0.60, CompensationFit: 0.05},
		StrategyExperienceWeighted: {SkillOverlap: 0.25, ExperienceFit: 0.50, LocationFit: 0.10, SemanticSimilarity: 0.10, CompensationFit: 0.05},
	}}
}

// Register adds or replaces a named strategy.
func (r *Registry) Register(name string, w Weights) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownStrategy)
	}
	if err := w.validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[name] = w
	return nil
}

// Resolve returns the canonical strategy name and its raw weights. An empty
// name resolves to the hybrid default.
func (r *Registry) Resolve(name string) (string, Weights, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = StrategyHybrid
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.strategies[name]
	if !ok {
		return "", Weights{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return name, w, nil
}

// Names lists registered strategies in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Snapshot copies the registry contents for read-only use.
func (r *Registry) Snapshot() map[string]Weights {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Weights, len(r.strategies))
	for name, w := range r.strategies {
		out[name] = w
	}
	return out
}
