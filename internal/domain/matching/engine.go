package matching

import (
	"fmt"
	"sort"

	"skillmatch/internal/domain/job"
	"skillmatch/internal/domain/match"
	"skillmatch/internal/domain/profile"
	"skillmatch/internal/domain/skill"
	"skillmatch/internal/embedding"
)

// Graph is the read side of the skill graph the engine consults during
// scoring. Ids unknown to the graph simply have no relations.
type Graph interface {
	Lookup(id string) (skill.Skill, bool)
	Equivalents(id string) []string
	Prerequisites(id string) []string
	DirectPrerequisites(id string) []string
}

type emptyGraph struct{}

func (emptyGraph) Lookup(string) (skill.Skill, bool)   { return skill.Skill{}, false }
func (emptyGraph) Equivalents(string) []string         { return nil }
func (emptyGraph) Prerequisites(string) []string       { return nil }
func (emptyGraph) DirectPrerequisites(string) []string { return nil }

// Engine computes match scores and gap reports. It performs no I/O and holds
// no mutable state of its own, so a single instance serves concurrent
// requests.
type Engine struct {
	graph      Graph
	strategies *Registry
	tun        Tunables
	region     RegionFunc
}

func NewEngine(graph Graph, strategies *Registry, tun Tunables, region RegionFunc) *Engine {
	if graph == nil {
		graph = emptyGraph{}
	}
	if strategies == nil {
		strategies = NewRegistry()
	}
	return &Engine{graph: graph, strategies: strategies, tun: tun.sanitized(), region: region}
}

func (e *Engine) Strategies() *Registry {
	return e.strategies
}

// Score computes the weighted multi-factor match between one profile and one
// job under the named strategy. Identical inputs always produce identical
// results.
func (e *Engine) Score(p profile.Profile, j job.Job, strategy string) (match.Result, error) {
	if len(j.RequiredSkills) == 0 {
		return match.Result{}, fmt.Errorf("%w: job %q", ErrEmptyRequirements, j.ID)
	}
	if len(p.Embedding) != len(j.Embedding) {
		return match.Result{}, fmt.Errorf("%w: profile=%d job=%d", ErrDimensionMismatch, len(p.Embedding), len(j.Embedding))
	}

	name, weights, err := e.strategies.Resolve(strategy)
	if err != nil {
		return match.Result{}, err
	}
	norm, err := weights.Normalize()
	if err != nil {
		return match.Result{}, err
	}

	idx := indexProfile(p)
	overlap, matched, missing := e.skillOverlap(idx, j)

	factors := []match.FactorScore{
		{Name: FactorSkillOverlap, Score: overlap, Weight: norm.SkillOverlap},
		{Name: FactorExperienceFit, Score: experienceFit(p.YearsExperience, j.ExperienceMin, j.ExperienceMax, e.tun.OverqualFloor), Weight: norm.ExperienceFit},
		{Name: FactorLocationFit, Score: locationFit(p.PreferredLocations, j.Locations, e.region), Weight: norm.LocationFit},
		{Name: FactorSemanticSimilarity, Score: (embedding.Cosine(p.Embedding, j.Embedding) + 1) / 2, Weight: norm.SemanticSimilarity},
		{Name: FactorCompensationFit, Score: compensationFit(p.DesiredCompMin, p.DesiredCompMax, j.CompMin, j.CompMax, e.tun.CompensationMaxGap), Weight: norm.CompensationFit},
	}

	var overall float64
	for i := range factors {
		factors[i].Score = clamp01(factors[i].Score)
		factors[i].Contribution = factors[i].Score * factors[i].Weight
		overall += factors[i].Contribution
	}
	overall = clamp01(overall)

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Contribution != matched[j].Contribution {
			return matched[i].Contribution > matched[j].Contribution
		}
		return matched[i].SkillID < matched[j].SkillID
	})
	sort.SliceStable(missing, func(i, j int) bool {
		if missing[i].Weight != missing[j].Weight {
			return missing[i].Weight > missing[j].Weight
		}
		return missing[i].SkillID < missing[j].SkillID
	})

	return match.Result{
		ProfileID:     p.ID,
		JobID:         j.ID,
		Strategy:      name,
		OverallScore:  overall,
		Confidence:    match.ConfidenceFor(overall),
		Factors:       factors,
		MatchedSkills: matched,
		MissingSkills: missing,
		PostedAt:      j.PostedAt,
	}, nil
}
