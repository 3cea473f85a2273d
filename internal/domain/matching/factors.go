package matching

import (
	"math"
	"strings"

	"skillmatch/internal/domain/job"
	"skillmatch/internal/domain/match"
	"skillmatch/internal/domain/profile"
)

const remoteToken = "remote"

// RegionFunc reports whether two normalized locations belong to the same
// broader region. Supplied by the caller; nil disables the region tier.
type RegionFunc func(a, b string) bool

func normID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// indexProfile maps held skill ids to the best proficiency per id.
// Zero-proficiency entries count as not held.
func indexProfile(p profile.Profile) map[string]int {
	idx := make(map[string]int, len(p.Skills))
	for _, s := range p.Skills {
		id := normID(s.SkillID)
		if id == "" {
			continue
		}
		lvl := clampInt(s.Proficiency, 0, 100)
		if lvl <= 0 {
			continue
		}
		if lvl > idx[id] {
			idx[id] = lvl
		}
	}
	return idx
}

func (e *Engine) skillOverlap(idx map[string]int, j job.Job) (float64, []match.MatchedSkill, []match.MissingSkill) {
	var totalW, matchedW float64
	matched := make([]match.MatchedSkill, 0, len(j.RequiredSkills))
	missing := make([]match.MissingSkill, 0)

	seen := make(map[string]bool, len(j.RequiredSkills))
	for _, req := range j.RequiredSkills {
		id := normID(req.SkillID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		w := req.Weight
		if w <= 0 {
			w = 1
		}
		totalW += w

		if _, ok := idx[id]; ok {
			matched = append(matched, match.MatchedSkill{SkillID: id, Kind: match.MatchExact, Contribution: w})
			matchedW += w
			continue
		}

		if sub, ok := e.bestEquivalent(idx, id, req.MinProficiency); ok {
			contrib := e.tun.EquivalentWeight * w
			matched = append(matched, match.MatchedSkill{SkillID: id, Kind: match.MatchEquivalent, ViaSkillID: sub, Contribution: contrib})
			matchedW += contrib
			continue
		}

		// Partial credit rewards held prerequisites, but the skill itself is
		// still missing.
		if via, ok := e.prerequisitesHeld(idx, id); ok {
			contrib := e.tun.PrerequisiteCredit * w
			matched = append(matched, match.MatchedSkill{SkillID: id, Kind: match.MatchPrerequisite, ViaSkillID: via, Contribution: contrib})
			matchedW += contrib
		}
		missing = append(missing, match.MissingSkill{SkillID: id, RequiredLevel: req.MinProficiency, Weight: w})
	}

	if totalW <= 0 {
		return 0, matched, missing
	}
	score := matchedW / totalW

	if pw := e.tun.PreferredWeight; pw > 0 && len(j.PreferredSkills) > 0 {
		score = (1-pw)*score + pw*e.preferredCoverage(idx, j.PreferredSkills)
	}
	return clamp01(score), matched, missing
}

// bestEquivalent picks the highest-proficiency equivalent substitute held at
// or above the required level, breaking proficiency ties lexicographically.
func (e *Engine) bestEquivalent(idx map[string]int, id string, minLvl int) (string, bool) {
	best := ""
	bestLvl := -1
	for _, eq := range e.graph.Equivalents(id) {
		lvl, ok := idx[eq]
		if !ok || lvl < minLvl {
			continue
		}
		if lvl > bestLvl || (lvl == bestLvl && eq < best) {
			best, bestLvl = eq, lvl
		}
	}
	return best, best != ""
}

// prerequisitesHeld reports whether every direct prerequisite of id is held,
// returning the strongest one. Skills without prerequisites never qualify.
func (e *Engine) prerequisitesHeld(idx map[string]int, id string) (string, bool) {
	direct := e.graph.DirectPrerequisites(id)
	if len(direct) == 0 {
		return "", false
	}
	via := ""
	viaLvl := -1
	for _, dep := range direct {
		lvl, ok := idx[dep]
		if !ok {
			return "", false
		}
		if lvl > viaLvl || (lvl == viaLvl && dep < via) {
			via, viaLvl = dep, lvl
		}
	}
	return via, true
}

func (e *Engine) preferredCoverage(idx map[string]int, preferred []string) float64 {
	seen := make(map[string]bool, len(preferred))
	total, hit := 0, 0
	for _, raw := range preferred {
		id := normID(raw)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		total++

		if _, ok := idx[id]; ok {
			hit++
			continue
		}
		for _, eq := range e.graph.Equivalents(id) {
			if _, ok := idx[eq]; ok {
				hit++
				break
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hit) / float64(total)
}

func experienceFit(years, minYears, maxYears int, floor float64) float64 {
	if years < 0 {
		years = 0
	}
	if minYears < 0 {
		minYears = 0
	}

	gap := years - minYears
	if gap < 0 {
		// Linear decay from 1.0 at the minimum down to 0 at zero experience.
		return clamp01(float64(years) / float64(minYears))
	}

	unbounded := maxYears <= 0 || maxYears < minYears
	if unbounded || gap <= maxYears-minYears {
		return 1
	}

	// Overqualification decays linearly, bottoming out at the floor when the
	// candidate has twice the required maximum.
	over := float64(years - maxYears)
	score := 1 - (1-floor)*over/float64(maxYears)
	if score < floor {
		return floor
	}
	return clamp01(score)
}

func locationFit(preferred, locations []string, region RegionFunc) float64 {
	prefs := normalizeLocations(preferred)
	locs := normalizeLocations(locations)

	for _, p := range prefs {
		if p == remoteToken {
			return 1
		}
	}
	for _, l := range locs {
		if l == remoteToken {
			return 1
		}
	}

	if len(prefs) == 0 || len(locs) == 0 {
		return 0.5
	}

	for _, p := range prefs {
		for _, l := range locs {
			if p == l {
				return 1
			}
		}
	}
	if region != nil {
		for _, p := range prefs {
			for _, l := range locs {
				if region(p, l) {
					return 0.5
				}
			}
		}
	}
	return 0
}

func normalizeLocations(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, raw := range in {
		v := strings.ToLower(strings.TrimSpace(raw))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func compensationFit(pMin, pMax, jMin, jMax int64, maxGap float64) float64 {
	// Either side without a stated range scores neutrally.
	if pMax <= 0 || jMax <= 0 {
		return 0.5
	}
	if pMin <= jMax && jMin <= pMax {
		return 1
	}

	var gap, edge int64
	if pMin > jMax {
		gap, edge = pMin-jMax, jMax
	} else {
		gap, edge = jMin-pMax, pMax
	}
	if maxGap <= 0 {
		return 0
	}
	rel := float64(gap) / math.Max(float64(edge), 1)
	return clamp01(1 - rel/maxGap)
}
