package ranking

import (
	"context"
	"fmt"
	"math"
	"sort"

	"skillmatch/internal/domain/job"
	"skillmatch/internal/domain/match"
	"skillmatch/internal/domain/profile"
)

// Scorer is the single-pair scoring dependency, satisfied by the matching
// engine.
type Scorer interface {
	Score(p profile.Profile, j job.Job, strategy string) (match.Result, error)
}

// Options tune ordering and diversity. Zero values fall back to defaults.
type Options struct {
	// Epsilon is the score width inside which two results count as tied and
	// secondary ordering keys apply.
	Epsilon float64
	// DiversityThreshold is the top-skill overlap ratio at or above which a
	// result is demoted when diversification is requested.
	DiversityThreshold float64
	// MaxDemotions caps how many results one ranking may demote.
	MaxDemotions int
	// Workers sizes the scoring pool.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Epsilon:            0.01,
		DiversityThreshold: 0.8,
		MaxDemotions:       3,
		Workers:            4,
	}
}

func (o Options) sanitized() Options {
	def := DefaultOptions()
	if o.Epsilon <= 0 {
		o.Epsilon = def.Epsilon
	}
	if o.DiversityThreshold <= 0 || o.DiversityThreshold > 1 {
		o.DiversityThreshold = def.DiversityThreshold
	}
	if o.MaxDemotions < 0 {
		o.MaxDemotions = def.MaxDemotions
	}
	if o.Workers <= 0 {
		o.Workers = def.Workers
	}
	return o
}

// bucket collapses scores into epsilon-wide bands so the tie relation stays
// transitive and the resulting order total.
func (o Options) bucket(score float64) int64 {
	return int64(math.Round(score / o.Epsilon))
}

type Ranker struct {
	scorer Scorer
	opts   Options
}

func NewRanker(scorer Scorer, opts Options) *Ranker {
	return &Ranker{scorer: scorer, opts: opts.sanitized()}
}

// RankJobsForProfile scores every job against the profile concurrently and
// returns the results ordered best first. Any scoring failure fails the whole
// ranking; the reported error is the first by input order.
func (r *Ranker) RankJobsForProfile(ctx context.Context, p profile.Profile, jobs []job.Job, strategy string, diversify bool) ([]match.Result, error) {
	results := make([]match.Result, len(jobs))
	errs := make([]error, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	pool := NewPool(r.opts.Workers, len(jobs))
	for i := range jobs {
		i := i
		pool.Submit(func(context.Context) error {
			res, err := r.scorer.Score(p, jobs[i], strategy)
			results[i], errs[i] = res, err
			return err
		})
	}
	pool.Close()
	for range pool.Run(ctx) {
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("score job %q: %w", jobs[i].ID, err)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		bi, bj := r.opts.bucket(results[i].OverallScore), r.opts.bucket(results[j].OverallScore)
		if bi != bj {
			return bi > bj
		}
		if !results[i].PostedAt.Equal(results[j].PostedAt) {
			return results[i].PostedAt.After(results[j].PostedAt)
		}
		return results[i].JobID < results[j].JobID
	})

	if diversify {
		results = r.diversify(results)
	}
	return results, nil
}

// RankProfilesForJob is the reverse direction: candidates ordered best first
// for one job, ties broken by profile id.
func (r *Ranker) RankProfilesForJob(ctx context.Context, j job.Job, profiles []profile.Profile, strategy string) ([]match.Result, error) {
	results := make([]match.Result, len(profiles))
	errs := make([]error, len(profiles))
	if len(profiles) == 0 {
		return results, nil
	}

	pool := NewPool(r.opts.Workers, len(profiles))
	for i := range profiles {
		i := i
		pool.Submit(func(context.Context) error {
			res, err := r.scorer.Score(profiles[i], j, strategy)
			results[i], errs[i] = res, err
			return err
		})
	}
	pool.Close()
	for range pool.Run(ctx) {
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("score profile %q: %w", profiles[i].ID, err)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		bi, bj := r.opts.bucket(results[i].OverallScore), r.opts.bucket(results[j].OverallScore)
		if bi != bj {
			return bi > bj
		}
		return results[i].ProfileID < results[j].ProfileID
	})
	return results, nil
}

// diversify pushes results whose strongest matched skills repeat the
// previously kept result to the back of the list, up to MaxDemotions.
func (r *Ranker) diversify(ranked []match.Result) []match.Result {
	if len(ranked) < 2 {
		return ranked
	}

	out := make([]match.Result, 0, len(ranked))
	deferred := make([]match.Result, 0)
	demoted := 0

	for _, res := range ranked {
		if len(out) > 0 && demoted < r.opts.MaxDemotions &&
			topSkillOverlap(out[len(out)-1], res) >= r.opts.DiversityThreshold {
			deferred = append(deferred, res)
			demoted++
			continue
		}
		out = append(out, res)
	}
	return append(out, deferred...)
}

// topSkillOverlap compares the top three matched skills of two results and
// returns the shared fraction relative to the larger set.
func topSkillOverlap(a, b match.Result) float64 {
	sa := topSkills(a)
	sb := topSkills(b)
	denom := len(sa)
	if len(sb) > denom {
		denom = len(sb)
	}
	if denom == 0 {
		return 0
	}
	shared := 0
	for id := range sa {
		if sb[id] {
			shared++
		}
	}
	return float64(shared) / float64(denom)
}

func topSkills(res match.Result) map[string]bool {
	out := make(map[string]bool, 3)
	for i, m := range res.MatchedSkills {
		if i == 3 {
			break
		}
		out[m.SkillID] = true
	}
	return out
}
