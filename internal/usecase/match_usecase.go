package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillmatch/internal/domain/job"
	"skillmatch/internal/domain/match"
	"skillmatch/internal/domain/matching"
	"skillmatch/internal/domain/profile"
	"skillmatch/internal/embedding"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// ProfileInput pairs a candidate document with optional free text. When the
// document carries no embedding the summary is embedded through the cache.
type ProfileInput struct {
	Profile profile.Profile
	Summary string
}

// JobInput is the posting-side counterpart of ProfileInput.
type JobInput struct {
	Job         job.Job
	Description string
}

type MatchInput struct {
	Profile  ProfileInput
	Job      JobInput
	Strategy string
}

// ScoredMatch bundles the score with its explanation statements; both come
// from the same computation, so they can never disagree.
type ScoredMatch struct {
	Result     match.Result
	Statements []match.Statement
}

type StrategyInfo struct {
	Name    string
	Weights matching.Weights
}

type MatchUsecase interface {
	ScoreMatch(ctx context.Context, in MatchInput) (ScoredMatch, error)
	AnalyzeGap(ctx context.Context, in MatchInput) ([]match.Gap, error)
	Strategies(ctx context.Context) []StrategyInfo
}

type embeddingResolver struct {
	cache    *embedding.Cache
	embedder embedding.Embedder
}

// resolve prefers an explicit embedding, then falls back to embedding the
// text through the cache. No text and no embedding yields nil, which the
// engine treats as a neutral semantic signal.
func (r embeddingResolver) resolve(ctx context.Context, text string, explicit []float64) ([]float64, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	text = strings.TrimSpace(text)
	if text == "" || r.embedder == nil {
		return nil, nil
	}
	if r.cache == nil {
		return r.embedder.Embed(ctx, text)
	}
	return r.cache.GetOrCompute(ctx, embedding.ContentHash(text), func(ctx context.Context) ([]float64, error) {
		return r.embedder.Embed(ctx, text)
	})
}

type Match struct {
	engine   *matching.Engine
	resolver embeddingResolver
}

func NewMatchUsecase(engine *matching.Engine, cache *embedding.Cache, embedder embedding.Embedder) *Match {
	return &Match{
		engine:   engine,
		resolver: embeddingResolver{cache: cache, embedder: embedder},
	}
}

func (u *Match) ScoreMatch(ctx context.Context, in MatchInput) (ScoredMatch, error) {
	p := in.Profile.Profile
	j := in.Job.Job

	var err error
	if p.Embedding, err = u.resolver.resolve(ctx, in.Profile.Summary, p.Embedding); err != nil {
		return ScoredMatch{}, fmt.Errorf("%w: embed profile: %v", ErrInternal, err)
	}
	if j.Embedding, err = u.resolver.resolve(ctx, in.Job.Description, j.Embedding); err != nil {
		return ScoredMatch{}, fmt.Errorf("%w: embed job: %v", ErrInternal, err)
	}

	res, err := u.engine.Score(p, j, in.Strategy)
	if err != nil {
		return ScoredMatch{}, err
	}
	return ScoredMatch{Result: res, Statements: matching.Explain(res)}, nil
}

func (u *Match) AnalyzeGap(ctx context.Context, in MatchInput) ([]match.Gap, error) {
	return u.engine.AnalyzeGap(in.Profile.Profile, in.Job.Job)
}

func (u *Match) Strategies(ctx context.Context) []StrategyInfo {
	reg := u.engine.Strategies()
	snapshot := reg.Snapshot()
	out := make([]StrategyInfo, 0, len(snapshot))
	for _, name := range reg.Names() {
		out = append(out, StrategyInfo{Name: name, Weights: snapshot[name]})
	}
	return out
}
