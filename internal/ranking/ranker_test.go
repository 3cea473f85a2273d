package ranking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"skillmatch/internal/domain/job"
	"skillmatch/internal/domain/match"
	"skillmatch/internal/domain/profile"
)

type stubScorer struct {
	fn func(p profile.Profile, j job.Job, strategy string) (match.Result, error)
}

func (s *stubScorer) Score(p profile.Profile, j job.Job, strategy string) (match.Result, error) {
	return s.fn(p, j, strategy)
}

func fixedScores(scores map[string]float64) *stubScorer {
	return &stubScorer{fn: func(p profile.Profile, j job.Job, strategy string) (match.Result, error) {
		return match.Result{
			ProfileID:    p.ID,
			JobID:        j.ID,
			Strategy:     strategy,
			OverallScore: scores[j.ID],
			PostedAt:     j.PostedAt,
		}, nil
	}}
}

func jobIDs(results []match.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.JobID
	}
	return out
}

func TestRankJobsTiedScoresPreferNewer(t *testing.T) {
	older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 0, 14)

	r := NewRanker(fixedScores(map[string]float64{"job-old": 0.62, "job-new": 0.62}), DefaultOptions())
	results, err := r.RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, []job.Job{
		{ID: "job-old", PostedAt: older},
		{ID: "job-new", PostedAt: newer},
	}, "", false)
	if err != nil {
		t.Fatalf("RankJobsForProfile: %v", err)
	}
	if got := jobIDs(results); !reflect.DeepEqual(got, []string{"job-new", "job-old"}) {
		t.Fatalf("order = %v, want newer posting first", got)
	}
}

func TestRankJobsWithinEpsilonCountsAsTie(t *testing.T) {
	older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 0, 7)

	r := NewRanker(fixedScores(map[string]float64{"job-a": 0.622, "job-b": 0.618}), DefaultOptions())
	results, err := r.RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, []job.Job{
		{ID: "job-a", PostedAt: older},
		{ID: "job-b", PostedAt: newer},
	}, "", false)
	if err != nil {
		t.Fatalf("RankJobsForProfile: %v", err)
	}
	// 0.622 and 0.618 land in the same band, so recency decides.
	if got := jobIDs(results); !reflect.DeepEqual(got, []string{"job-b", "job-a"}) {
		t.Fatalf("order = %v, want the newer job despite the marginal score", got)
	}
}

func TestRankJobsBeyondEpsilonKeepsScoreOrder(t *testing.T) {
	older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 1, 0)

	r := NewRanker(fixedScores(map[string]float64{"job-strong": 0.70, "job-weak": 0.55}), DefaultOptions())
	results, err := r.RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, []job.Job{
		{ID: "job-weak", PostedAt: newer},
		{ID: "job-strong", PostedAt: older},
	}, "", false)
	if err != nil {
		t.Fatalf("RankJobsForProfile: %v", err)
	}
	if got := jobIDs(results); !reflect.DeepEqual(got, []string{"job-strong", "job-weak"}) {
		t.Fatalf("order = %v, recency must not override a real score difference", got)
	}
}

func TestRankJobsFullTieFallsBackToJobID(t *testing.T) {
	posted := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	r := NewRanker(fixedScores(map[string]float64{"job-b": 0.5, "job-a": 0.5, "job-c": 0.5}), DefaultOptions())
	results, err := r.RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, []job.Job{
		{ID: "job-b", PostedAt: posted},
		{ID: "job-c", PostedAt: posted},
		{ID: "job-a", PostedAt: posted},
	}, "", false)
	if err != nil {
		t.Fatalf("RankJobsForProfile: %v", err)
	}
	if got := jobIDs(results); !reflect.DeepEqual(got, []string{"job-a", "job-b", "job-c"}) {
		t.Fatalf("order = %v, want lexicographic job ids on a full tie", got)
	}
}

func TestRankJobsScoringFailureFailsWholeRanking(t *testing.T) {
	scoreErr := errors.New("embedding backend down")
	s := &stubScorer{fn: func(p profile.Profile, j job.Job, strategy string) (match.Result, error) {
		if j.ID == "job-bad" || j.ID == "job-worse" {
			return match.Result{}, fmt.Errorf("job %s: %w", j.ID, scoreErr)
		}
		return match.Result{JobID: j.ID, OverallScore: 0.5}, nil
	}}

	r := NewRanker(s, DefaultOptions())
	_, err := r.RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, []job.Job{
		{ID: "job-ok"},
		{ID: "job-bad"},
		{ID: "job-worse"},
	}, "", false)
	if !errors.Is(err, scoreErr) {
		t.Fatalf("expected wrapped scoring error, got %v", err)
	}
	// The first failure by input order is the one reported.
	if want := `score job "job-bad"`; err == nil || len(err.Error()) < len(want) || err.Error()[:len(want)] != want {
		t.Fatalf("error = %v, want prefix %s", err, want)
	}
}

func TestRankJobsConcurrencyMatchesSerial(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	jobs := make([]job.Job, 0, 25)
	scores := make(map[string]float64, 25)
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("job-%02d", i)
		jobs = append(jobs, job.Job{ID: id, PostedAt: base.AddDate(0, 0, i%5)})
		scores[id] = 0.30 + float64(i%8)*0.003
	}

	serialOpts := DefaultOptions()
	serialOpts.Workers = 1
	parallelOpts := DefaultOptions()
	parallelOpts.Workers = 8

	serial, err := NewRanker(fixedScores(scores), serialOpts).
		RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, jobs, "", false)
	if err != nil {
		t.Fatalf("serial ranking: %v", err)
	}
	parallel, err := NewRanker(fixedScores(scores), parallelOpts).
		RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, jobs, "", false)
	if err != nil {
		t.Fatalf("parallel ranking: %v", err)
	}
	if !reflect.DeepEqual(serial, parallel) {
		t.Fatalf("worker count changed the ranking:\nserial:   %v\nparallel: %v", jobIDs(serial), jobIDs(parallel))
	}
}

func TestRankJobsEmptyInput(t *testing.T) {
	r := NewRanker(fixedScores(nil), DefaultOptions())
	results, err := r.RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, nil, "", false)
	if err != nil {
		t.Fatalf("RankJobsForProfile: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %v", results)
	}
}

func TestRankJobsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRanker(fixedScores(map[string]float64{"job-a": 0.5}), DefaultOptions())
	_, err := r.RankJobsForProfile(ctx, profile.Profile{ID: "cand"}, []job.Job{{ID: "job-a"}}, "", false)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDiversityDemotesRepeatedTopSkills(t *testing.T) {
	matched := func(ids ...string) []match.MatchedSkill {
		out := make([]match.MatchedSkill, len(ids))
		for i, id := range ids {
			out[i] = match.MatchedSkill{SkillID: id, Kind: match.MatchExact}
		}
		return out
	}
	results := map[string]match.Result{
		"job-1": {JobID: "job-1", OverallScore: 0.90, MatchedSkills: matched("python", "sql", "aws")},
		"job-2": {JobID: "job-2", OverallScore: 0.88, MatchedSkills: matched("python", "sql", "aws")},
		"job-3": {JobID: "job-3", OverallScore: 0.86, MatchedSkills: matched("react", "typescript")},
		"job-4": {JobID: "job-4", OverallScore: 0.84, MatchedSkills: matched("react", "typescript")},
	}
	s := &stubScorer{fn: func(p profile.Profile, j job.Job, strategy string) (match.Result, error) {
		return results[j.ID], nil
	}}
	jobs := []job.Job{{ID: "job-1"}, {ID: "job-2"}, {ID: "job-3"}, {ID: "job-4"}}

	t.Run("near-duplicates move down", func(t *testing.T) {
		ranked, err := NewRanker(s, DefaultOptions()).
			RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, jobs, "", true)
		if err != nil {
			t.Fatalf("RankJobsForProfile: %v", err)
		}
		want := []string{"job-1", "job-3", "job-2", "job-4"}
		if got := jobIDs(ranked); !reflect.DeepEqual(got, want) {
			t.Fatalf("order = %v, want %v", got, want)
		}
	})

	t.Run("demotion cap is respected", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MaxDemotions = 0
		ranked, err := NewRanker(s, opts).
			RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, jobs, "", true)
		if err != nil {
			t.Fatalf("RankJobsForProfile: %v", err)
		}
		want := []string{"job-1", "job-2", "job-3", "job-4"}
		if got := jobIDs(ranked); !reflect.DeepEqual(got, want) {
			t.Fatalf("order = %v, want untouched %v", got, want)
		}
	})

	t.Run("disabled diversification keeps score order", func(t *testing.T) {
		ranked, err := NewRanker(s, DefaultOptions()).
			RankJobsForProfile(context.Background(), profile.Profile{ID: "cand"}, jobs, "", false)
		if err != nil {
			t.Fatalf("RankJobsForProfile: %v", err)
		}
		want := []string{"job-1", "job-2", "job-3", "job-4"}
		if got := jobIDs(ranked); !reflect.DeepEqual(got, want) {
			t.Fatalf("order = %v, want %v", got, want)
		}
	})
}

func TestRankProfilesForJob(t *testing.T) {
	s := &stubScorer{fn: func(p profile.Profile, j job.Job, strategy string) (match.Result, error) {
		scores := map[string]float64{"cand-z": 0.8, "cand-a": 0.8, "cand-m": 0.6}
		return match.Result{ProfileID: p.ID, JobID: j.ID, OverallScore: scores[p.ID]}, nil
	}}

	r := NewRanker(s, DefaultOptions())
	results, err := r.RankProfilesForJob(context.Background(), job.Job{ID: "job-1"}, []profile.Profile{
		{ID: "cand-z"}, {ID: "cand-m"}, {ID: "cand-a"},
	}, "")
	if err != nil {
		t.Fatalf("RankProfilesForJob: %v", err)
	}
	got := make([]string, len(results))
	for i, res := range results {
		got[i] = res.ProfileID
	}
	if !reflect.DeepEqual(got, []string{"cand-a", "cand-z", "cand-m"}) {
		t.Fatalf("order = %v, want tied candidates in id order", got)
	}
}

func TestPoolRunsEveryTask(t *testing.T) {
	p := NewPool(4, 16)
	done := make(chan int, 16)
	for i := 0; i < 16; i++ {
		i := i
		p.Submit(func(context.Context) error {
			done <- i
			return nil
		})
	}
	p.Close()

	count := 0
	for res := range p.Run(context.Background()) {
		if res.Err != nil {
			t.Fatalf("unexpected task error: %v", res.Err)
		}
		count++
	}
	if count != 16 {
		t.Fatalf("completed %d tasks, want 16", count)
	}
	close(done)
	seen := make(map[int]bool)
	for i := range done {
		seen[i] = true
	}
	if len(seen) != 16 {
		t.Fatalf("ran %d distinct tasks, want 16", len(seen))
	}
}
