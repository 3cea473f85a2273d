package matching

import (
	"fmt"
	"sort"

	"skillmatch/internal/domain/job"
	"skillmatch/internal/domain/match"
	"skillmatch/internal/domain/profile"
)

const (
	defaultDemand     = 0.5
	defaultDifficulty = 5
)

// AnalyzeGap lists the required skills the profile does not satisfy, each
// annotated with the candidate's best related proficiency and a bridging
// suggestion, ordered by demand-weighted priority then acquisition effort.
func (e *Engine) AnalyzeGap(p profile.Profile, j job.Job) ([]match.Gap, error) {
	if len(j.RequiredSkills) == 0 {
		return nil, fmt.Errorf("%w: job %q", ErrEmptyRequirements, j.ID)
	}

	idx := indexProfile(p)
	gaps := make([]match.Gap, 0)
	seen := make(map[string]bool, len(j.RequiredSkills))

	for _, req := range j.RequiredSkills {
		id := normID(req.SkillID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		if _, ok := idx[id]; ok {
			continue
		}
		if _, ok := e.bestEquivalent(idx, id, req.MinProficiency); ok {
			continue
		}

		w := req.Weight
		if w <= 0 {
			w = 1
		}

		equivalents := e.graph.Equivalents(id)
		prereqs := e.graph.Prerequisites(id)

		best := 0
		for _, rel := range equivalents {
			if lvl, ok := idx[rel]; ok && lvl > best {
				best = lvl
			}
		}
		for _, rel := range prereqs {
			if lvl, ok := idx[rel]; ok && lvl > best {
				best = lvl
			}
		}

		// Prerequisites arrive in learning order, so a later index means a
		// step closer to the gap skill. Highest proficiency wins, nearness
		// breaks ties.
		bridge, bridgeLvl, bridgePos := "", -1, -1
		for i, dep := range prereqs {
			lvl, ok := idx[dep]
			if !ok {
				continue
			}
			if lvl > bridgeLvl || (lvl == bridgeLvl && i > bridgePos) {
				bridge, bridgeLvl, bridgePos = dep, lvl, i
			}
		}

		demand, difficulty := float64(defaultDemand), float64(defaultDifficulty)
		if sk, ok := e.graph.Lookup(id); ok {
			demand = sk.Demand
			difficulty = float64(sk.Difficulty)
		}
		estimated := difficulty - float64(best)/10.0
		if estimated < 0 {
			estimated = 0
		}

		gaps = append(gaps, match.Gap{
			SkillID:          id,
			RequiredLevel:    req.MinProficiency,
			BestRelatedLevel: best,
			BridgingSkillID:  bridge,
			Demand:           demand,
			Difficulty:       estimated,
			Weight:           w,
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		pi := gaps[i].Demand * gaps[i].Weight
		pj := gaps[j].Demand * gaps[j].Weight
		if pi != pj {
			return pi > pj
		}
		if gaps[i].Difficulty != gaps[j].Difficulty {
			return gaps[i].Difficulty < gaps[j].Difficulty
		}
		return gaps[i].SkillID < gaps[j].SkillID
	})
	return gaps, nil
}
