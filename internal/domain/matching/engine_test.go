package matching

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"skillmatch/internal/domain/job"
	"skillmatch/internal/domain/match"
	"skillmatch/internal/domain/profile"
	"skillmatch/internal/domain/skill"
)

type mockGraph struct {
	skills map[string]skill.Skill
	equiv  map[string][]string
	prereq map[string][]string
	direct map[string][]string
}

func (g *mockGraph) Lookup(id string) (skill.Skill, bool) {
	sk, ok := g.skills[id]
	return sk, ok
}

func (g *mockGraph) Equivalents(id string) []string        { return g.equiv[id] }
func (g *mockGraph) Prerequisites(id string) []string      { return g.prereq[id] }
func (g *mockGraph) DirectPrerequisites(id string) []string { return g.direct[id] }

func emptyMockGraph() *mockGraph {
	return &mockGraph{
		skills: map[string]skill.Skill{},
		equiv:  map[string][]string{},
		prereq: map[string][]string{},
		direct: map[string][]string{},
	}
}

func newTestEngine(g Graph) *Engine {
	return NewEngine(g, NewRegistry(), DefaultTunables(), nil)
}

func factorScore(t *testing.T, res match.Result, name string) float64 {
	t.Helper()
	for _, f := range res.Factors {
		if f.Name == name {
			return f.Score
		}
	}
	t.Fatalf("factor %s not found in result", name)
	return 0
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestScoreWorkedExample(t *testing.T) {
	p := profile.Profile{
		ID: "cand-1",
		Skills: []profile.SkillLevel{
			{SkillID: "python", Proficiency: 80},
			{SkillID: "sql", Proficiency: 60},
		},
		Embedding: []float64{1, 0},
	}
	j := job.Job{
		ID: "job-1",
		RequiredSkills: []job.SkillRequirement{
			{SkillID: "python", MinProficiency: 70, Weight: 2},
			{SkillID: "sql", MinProficiency: 70, Weight: 1},
			{SkillID: "aws", MinProficiency: 50, Weight: 1},
		},
		Embedding: []float64{1, 0},
	}

	res, err := newTestEngine(emptyMockGraph()).Score(p, j, StrategyHybrid)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if got := factorScore(t, res, FactorSkillOverlap); !almostEqual(got, 0.75) {
		t.Fatalf("skill overlap = %v, want 0.75", got)
	}
	if len(res.MissingSkills) != 1 || res.MissingSkills[0].SkillID != "aws" {
		t.Fatalf("missing skills = %+v, want exactly aws", res.MissingSkills)
	}
	if res.MissingSkills[0].RequiredLevel != 50 {
		t.Fatalf("missing aws required level = %d, want 50", res.MissingSkills[0].RequiredLevel)
	}
	if len(res.MatchedSkills) != 2 {
		t.Fatalf("matched skills = %+v, want python and sql", res.MatchedSkills)
	}
	for _, m := range res.MatchedSkills {
		if m.Kind != match.MatchExact {
			t.Fatalf("matched skill %s kind = %s, want exact", m.SkillID, m.Kind)
		}
	}
}

func TestScoreDeterminism(t *testing.T) {
	g := emptyMockGraph()
	g.equiv["aws"] = []string{"gcp"}
	e := newTestEngine(g)

	p := profile.Profile{
		ID: "cand-1",
		Skills: []profile.SkillLevel{
			{SkillID: "python", Proficiency: 80},
			{SkillID: "gcp", Proficiency: 75},
		},
		YearsExperience:    4,
		PreferredLocations: []string{"Berlin"},
		DesiredCompMin:     60000,
		DesiredCompMax:     80000,
		Embedding:          []float64{0.5, 0.5, 0.1},
	}
	j := job.Job{
		ID: "job-1",
		RequiredSkills: []job.SkillRequirement{
			{SkillID: "python", MinProficiency: 60, Weight: 2},
			{SkillID: "aws", MinProficiency: 50, Weight: 1},
			{SkillID: "kubernetes", MinProficiency: 40, Weight: 1},
		},
		PreferredSkills: []string{"terraform"},
		ExperienceMin:   3,
		ExperienceMax:   6,
		Locations:       []string{"Munich"},
		CompMin:         65000,
		CompMax:         90000,
		Embedding:       []float64{0.4, 0.6, 0.2},
		PostedAt:        time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	first, err := e.Score(p, j, StrategyHybrid)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	second, err := e.Score(p, j, StrategyHybrid)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestScoreBounds(t *testing.T) {
	g := emptyMockGraph()
	e := newTestEngine(g)

	profiles := []profile.Profile{
		{ID: "empty", Embedding: []float64{0, 0}},
		{ID: "low", Skills: []profile.SkillLevel{{SkillID: "python", Proficiency: 5}}, YearsExperience: 1, Embedding: []float64{-1, 0}},
		{ID: "high", Skills: []profile.SkillLevel{{SkillID: "python", Proficiency: 100}, {SkillID: "sql", Proficiency: 100}}, YearsExperience: 40, PreferredLocations: []string{"REMOTE"}, DesiredCompMin: 1, DesiredCompMax: 1000000, Embedding: []float64{1, 0}},
	}
	jobs := []job.Job{
		{ID: "plain", RequiredSkills: []job.SkillRequirement{{SkillID: "python", Weight: 1}}, Embedding: []float64{1, 0}},
		{ID: "strict", RequiredSkills: []job.SkillRequirement{{SkillID: "python", MinProficiency: 90, Weight: 3}, {SkillID: "sql", MinProficiency: 90, Weight: 2}}, ExperienceMin: 10, ExperienceMax: 12, Locations: []string{"Oslo"}, CompMin: 90000, CompMax: 100000, Embedding: []float64{-1, 0}},
	}

	for _, p := range profiles {
		for _, j := range jobs {
			for _, strat := range []string{StrategyHybrid, StrategySkillWeighted, StrategySemanticWeighted, StrategyExperienceWeighted} {
				res, err := e.Score(p, j, strat)
				if err != nil {
					t.Fatalf("Score(%s, %s, %s): %v", p.ID, j.ID, strat, err)
				}
				if res.OverallScore < 0 || res.OverallScore > 1 {
					t.Fatalf("overall score %v out of bounds for %s/%s/%s", res.OverallScore, p.ID, j.ID, strat)
				}
				for _, f := range res.Factors {
					if f.Score < 0 || f.Score > 1 {
						t.Fatalf("factor %s score %v out of bounds", f.Name, f.Score)
					}
				}
			}
		}
	}
}

func TestScoreInputErrors(t *testing.T) {
	e := newTestEngine(emptyMockGraph())

	p := profile.Profile{ID: "cand", Embedding: []float64{1, 2}}

	_, err := e.Score(p, job.Job{ID: "none"}, StrategyHybrid)
	if !errors.Is(err, ErrEmptyRequirements) {
		t.Fatalf("expected ErrEmptyRequirements, got %v", err)
	}

	j := job.Job{
		ID:             "short",
		RequiredSkills: []job.SkillRequirement{{SkillID: "python"}},
		Embedding:      []float64{1, 2, 3},
	}
	_, err = e.Score(p, j, StrategyHybrid)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}

	j.Embedding = []float64{1, 2}
	_, err = e.Score(p, j, "made-up")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestEquivalentSubstitution(t *testing.T) {
	g := emptyMockGraph()
	g.equiv["aws"] = []string{"azure", "gcp"}
	e := newTestEngine(g)

	j := job.Job{
		ID:             "cloud",
		RequiredSkills: []job.SkillRequirement{{SkillID: "aws", MinProficiency: 50, Weight: 1}},
	}

	t.Run("substitute at required proficiency", func(t *testing.T) {
		p := profile.Profile{
			ID:     "cand",
			Skills: []profile.SkillLevel{{SkillID: "gcp", Proficiency: 70}, {SkillID: "azure", Proficiency: 55}},
		}
		res, err := e.Score(p, j, StrategyHybrid)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if got := factorScore(t, res, FactorSkillOverlap); !almostEqual(got, 0.8) {
			t.Fatalf("skill overlap = %v, want 0.8", got)
		}
		if len(res.MatchedSkills) != 1 {
			t.Fatalf("matched = %+v", res.MatchedSkills)
		}
		m := res.MatchedSkills[0]
		if m.Kind != match.MatchEquivalent || m.ViaSkillID != "gcp" {
			t.Fatalf("expected equivalent match via gcp, got %+v", m)
		}
		if len(res.MissingSkills) != 0 {
			t.Fatalf("substituted skill should not be missing: %+v", res.MissingSkills)
		}
	})

	t.Run("substitute below required proficiency", func(t *testing.T) {
		p := profile.Profile{
			ID:     "cand",
			Skills: []profile.SkillLevel{{SkillID: "gcp", Proficiency: 40}},
		}
		res, err := e.Score(p, j, StrategyHybrid)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if got := factorScore(t, res, FactorSkillOverlap); got != 0 {
			t.Fatalf("skill overlap = %v, want 0", got)
		}
		if len(res.MissingSkills) != 1 || res.MissingSkills[0].SkillID != "aws" {
			t.Fatalf("missing = %+v, want aws", res.MissingSkills)
		}
	})
}

func TestPrerequisitePartialCredit(t *testing.T) {
	g := emptyMockGraph()
	g.direct["react"] = []string{"html-css", "javascript"}
	e := newTestEngine(g)

	j := job.Job{
		ID:             "fe",
		RequiredSkills: []job.SkillRequirement{{SkillID: "react", MinProficiency: 60, Weight: 1}},
	}

	t.Run("all direct prerequisites held", func(t *testing.T) {
		p := profile.Profile{
			ID: "cand",
			Skills: []profile.SkillLevel{
				{SkillID: "javascript", Proficiency: 85},
				{SkillID: "html-css", Proficiency: 70},
			},
		}
		res, err := e.Score(p, j, StrategyHybrid)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if got := factorScore(t, res, FactorSkillOverlap); !almostEqual(got, 0.4) {
			t.Fatalf("skill overlap = %v, want 0.4", got)
		}
		if len(res.MatchedSkills) != 1 || res.MatchedSkills[0].Kind != match.MatchPrerequisite {
			t.Fatalf("matched = %+v, want prerequisite partial", res.MatchedSkills)
		}
		if res.MatchedSkills[0].ViaSkillID != "javascript" {
			t.Fatalf("via = %s, want javascript (strongest prerequisite)", res.MatchedSkills[0].ViaSkillID)
		}
		// Partial credit still reports the skill as missing.
		if len(res.MissingSkills) != 1 || res.MissingSkills[0].SkillID != "react" {
			t.Fatalf("missing = %+v, want react", res.MissingSkills)
		}
	})

	t.Run("incomplete prerequisites earn nothing", func(t *testing.T) {
		p := profile.Profile{
			ID:     "cand",
			Skills: []profile.SkillLevel{{SkillID: "javascript", Proficiency: 85}},
		}
		res, err := e.Score(p, j, StrategyHybrid)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if got := factorScore(t, res, FactorSkillOverlap); got != 0 {
			t.Fatalf("skill overlap = %v, want 0", got)
		}
	})
}

func TestPreferredSkillCoverage(t *testing.T) {
	e := newTestEngine(emptyMockGraph())

	p := profile.Profile{
		ID: "cand",
		Skills: []profile.SkillLevel{
			{SkillID: "python", Proficiency: 80},
			{SkillID: "docker", Proficiency: 60},
		},
	}
	j := job.Job{
		ID:              "be",
		RequiredSkills:  []job.SkillRequirement{{SkillID: "python", MinProficiency: 50, Weight: 1}},
		PreferredSkills: []string{"docker", "kubernetes"},
	}

	res, err := e.Score(p, j, StrategyHybrid)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// 0.7*1.0 required + 0.3*0.5 preferred coverage.
	if got := factorScore(t, res, FactorSkillOverlap); !almostEqual(got, 0.85) {
		t.Fatalf("skill overlap = %v, want 0.85", got)
	}
}

func TestExperienceFit(t *testing.T) {
	cases := []struct {
		name                 string
		years, minY, maxY    int
		want                 float64
	}{
		{"inside range", 4, 3, 6, 1},
		{"at minimum", 3, 3, 6, 1},
		{"at maximum", 6, 3, 6, 1},
		{"halfway under", 2, 4, 8, 0.5},
		{"no experience against requirement", 0, 4, 8, 0},
		{"overqualified at twice max", 12, 3, 6, 0.6},
		{"overqualified beyond twice max", 30, 3, 6, 0.6},
		{"overqualified halfway to floor", 9, 3, 6, 0.8},
		{"unbounded max", 25, 3, 0, 1},
		{"no requirements at all", 0, 0, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := experienceFit(tc.years, tc.minY, tc.maxY, 0.6)
			if !almostEqual(got, tc.want) {
				t.Fatalf("experienceFit(%d, %d, %d) = %v, want %v", tc.years, tc.minY, tc.maxY, got, tc.want)
			}
		})
	}
}

func TestLocationFit(t *testing.T) {
	region := func(a, b string) bool {
		eu := map[string]bool{"berlin": true, "munich": true, "amsterdam": true}
		return eu[a] && eu[b]
	}

	cases := []struct {
		name   string
		prefs  []string
		locs   []string
		region RegionFunc
		want   float64
	}{
		{"exact match", []string{"Berlin"}, []string{"berlin"}, nil, 1},
		{"candidate remote", []string{"REMOTE"}, []string{"Oslo"}, nil, 1},
		{"job remote", []string{"Oslo"}, []string{"Remote"}, nil, 1},
		{"same region", []string{"Berlin"}, []string{"Munich"}, region, 0.5},
		{"different region", []string{"Berlin"}, []string{"Tokyo"}, region, 0},
		{"no region function", []string{"Berlin"}, []string{"Munich"}, nil, 0},
		{"candidate has no preference", nil, []string{"Oslo"}, nil, 0.5},
		{"job lists no location", []string{"Oslo"}, nil, nil, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := locationFit(tc.prefs, tc.locs, tc.region); !almostEqual(got, tc.want) {
				t.Fatalf("locationFit = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCompensationFit(t *testing.T) {
	cases := []struct {
		name                   string
		pMin, pMax, jMin, jMax int64
		want                   float64
	}{
		{"overlapping ranges", 60000, 80000, 70000, 90000, 1},
		{"identical ranges", 50000, 60000, 50000, 60000, 1},
		{"candidate range unspecified", 0, 0, 50000, 60000, 0.5},
		{"job range unspecified", 50000, 60000, 0, 0, 0.5},
		{"candidate wants 10% above", 110000, 120000, 80000, 100000, 0.8},
		{"gap at threshold", 150000, 160000, 80000, 100000, 0},
		{"job pays far below", 200000, 220000, 40000, 50000, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := compensationFit(tc.pMin, tc.pMax, tc.jMin, tc.jMax, 0.5)
			if !almostEqual(got, tc.want) {
				t.Fatalf("compensationFit = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSemanticSimilarityRescaling(t *testing.T) {
	e := newTestEngine(emptyMockGraph())
	j := job.Job{
		ID:             "j",
		RequiredSkills: []job.SkillRequirement{{SkillID: "python"}},
		Embedding:      []float64{1, 0},
	}

	cases := []struct {
		name string
		emb  []float64
		want float64
	}{
		{"identical direction", []float64{1, 0}, 1},
		{"opposite direction", []float64{-1, 0}, 0},
		{"orthogonal", []float64{0, 1}, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := e.Score(profile.Profile{ID: "p", Embedding: tc.emb}, j, StrategyHybrid)
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if got := factorScore(t, res, FactorSemanticSimilarity); !almostEqual(got, tc.want) {
				t.Fatalf("semantic similarity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExplainOrderingAndQualifiers(t *testing.T) {
	res := match.Result{
		Factors: []match.FactorScore{
			{Name: FactorSkillOverlap, Score: 0.9, Weight: 0.35, Contribution: 0.315},
			{Name: FactorExperienceFit, Score: 0.5, Weight: 0.25, Contribution: 0.125},
			{Name: FactorLocationFit, Score: 0.1, Weight: 0.15, Contribution: 0.015},
			{Name: FactorSemanticSimilarity, Score: 0.8, Weight: 0.15, Contribution: 0.12},
			{Name: FactorCompensationFit, Score: 0.0, Weight: 0.10, Contribution: 0.0},
		},
	}

	stmts := Explain(res)
	if len(stmts) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(stmts))
	}

	wantOrder := []string{FactorSkillOverlap, FactorExperienceFit, FactorSemanticSimilarity, FactorLocationFit, FactorCompensationFit}
	for i, want := range wantOrder {
		if stmts[i].Factor != want {
			t.Fatalf("statement %d = %s, want %s", i, stmts[i].Factor, want)
		}
	}

	wantQualifier := map[string]string{
		FactorSkillOverlap:       QualifierPositive,
		FactorExperienceFit:      QualifierNeutral,
		FactorLocationFit:        QualifierNegative,
		FactorSemanticSimilarity: QualifierPositive,
		FactorCompensationFit:    QualifierNegative,
	}
	for _, st := range stmts {
		if st.Qualifier != wantQualifier[st.Factor] {
			t.Fatalf("qualifier for %s = %s, want %s", st.Factor, st.Qualifier, wantQualifier[st.Factor])
		}
	}

	again := Explain(res)
	if !reflect.DeepEqual(stmts, again) {
		t.Fatalf("Explain is not deterministic")
	}
}
