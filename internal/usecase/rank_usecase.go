package usecase

import (
	"context"
	"fmt"

	"skillmatch/internal/domain/job"
	"skillmatch/internal/domain/match"
	"skillmatch/internal/domain/profile"
	"skillmatch/internal/embedding"
	"skillmatch/internal/ranking"
)

type RankJobsInput struct {
	Profile   ProfileInput
	Jobs      []JobInput
	Strategy  string
	Diversify bool
}

type RankProfilesInput struct {
	Job      JobInput
	Profiles []ProfileInput
	Strategy string
}

type RankUsecase interface {
	RankJobs(ctx context.Context, in RankJobsInput) ([]match.Result, error)
	RankProfiles(ctx context.Context, in RankProfilesInput) ([]match.Result, error)
}

type Rank struct {
	ranker   *ranking.Ranker
	resolver embeddingResolver
}

func NewRankUsecase(ranker *ranking.Ranker, cache *embedding.Cache, embedder embedding.Embedder) *Rank {
	return &Rank{
		ranker:   ranker,
		resolver: embeddingResolver{cache: cache, embedder: embedder},
	}
}

func (u *Rank) RankJobs(ctx context.Context, in RankJobsInput) ([]match.Result, error) {
	p := in.Profile.Profile
	var err error
	if p.Embedding, err = u.resolver.resolve(ctx, in.Profile.Summary, p.Embedding); err != nil {
		return nil, fmt.Errorf("%w: embed profile: %v", ErrInternal, err)
	}

	jobs := make([]job.Job, len(in.Jobs))
	for i, ji := range in.Jobs {
		jobs[i] = ji.Job
		if jobs[i].Embedding, err = u.resolver.resolve(ctx, ji.Description, jobs[i].Embedding); err != nil {
			return nil, fmt.Errorf("%w: embed job %q: %v", ErrInternal, ji.Job.ID, err)
		}
	}

	return u.ranker.RankJobsForProfile(ctx, p, jobs, in.Strategy, in.Diversify)
}

func (u *Rank) RankProfiles(ctx context.Context, in RankProfilesInput) ([]match.Result, error) {
	j := in.Job.Job
	var err error
	if j.Embedding, err = u.resolver.resolve(ctx, in.Job.Description, j.Embedding); err != nil {
		return nil, fmt.Errorf("%w: embed job: %v", ErrInternal, err)
	}

	profiles := make([]profile.Profile, len(in.Profiles))
	for i, pi := range in.Profiles {
		profiles[i] = pi.Profile
		if profiles[i].Embedding, err = u.resolver.resolve(ctx, pi.Summary, profiles[i].Embedding); err != nil {
			return nil, fmt.Errorf("%w: embed profile %q: %v", ErrInternal, pi.Profile.ID, err)
		}
	}

	return u.ranker.RankProfilesForJob(ctx, j, profiles, in.Strategy)
}
