package dto

import (
	"time"

	"skillmatch/internal/domain/match"
	"skillmatch/internal/domain/matching"
	"skillmatch/internal/domain/skill"
	"skillmatch/internal/usecase"
)

type FactorScoreResponse struct {
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

type MatchedSkillResponse struct {
	SkillID      string  `json:"skill_id"`
	Kind         string  `json:"kind"`
	ViaSkillID   string  `json:"via_skill_id,omitempty"`
	Contribution float64 `json:"contribution"`
}

type MissingSkillResponse struct {
	SkillID       string  `json:"skill_id"`
	RequiredLevel int     `json:"required_level"`
	Weight        float64 `json:"weight"`
}

type StatementResponse struct {
	Factor       string  `json:"factor"`
	Contribution float64 `json:"contribution"`
	Qualifier    string  `json:"qualifier"`
}

type MatchResultResponse struct {
	ProfileID     string                 `json:"profile_id"`
	JobID         string                 `json:"job_id"`
	Strategy      string                 `json:"strategy"`
	OverallScore  float64                `json:"overall_score"`
	Confidence    string                 `json:"confidence"`
	Factors       []FactorScoreResponse  `json:"factors"`
	MatchedSkills []MatchedSkillResponse `json:"matched_skills"`
	MissingSkills []MissingSkillResponse `json:"missing_skills"`
	Explanation   []StatementResponse    `json:"explanation"`
	PostedAt      time.Time              `json:"posted_at"`
}

func MatchResultFrom(res match.Result, statements []match.Statement) MatchResultResponse {
	out := MatchResultResponse{
		ProfileID:     res.ProfileID,
		JobID:         res.JobID,
		Strategy:      res.Strategy,
		OverallScore:  res.OverallScore,
		Confidence:    string(res.Confidence),
		Factors:       make([]FactorScoreResponse, 0, len(res.Factors)),
		MatchedSkills: make([]MatchedSkillResponse, 0, len(res.MatchedSkills)),
		MissingSkills: make([]MissingSkillResponse, 0, len(res.MissingSkills)),
		Explanation:   make([]StatementResponse, 0, len(statements)),
		PostedAt:      res.PostedAt,
	}
	for _, f := range res.Factors {
		out.Factors = append(out.Factors, FactorScoreResponse{
			Name:         f.Name,
			Score:        f.Score,
			Weight:       f.Weight,
			Contribution: f.Contribution,
		})
	}
	for _, ms := range res.MatchedSkills {
		out.MatchedSkills = append(out.MatchedSkills, MatchedSkillResponse{
			SkillID:      ms.SkillID,
			Kind:         string(ms.Kind),
			ViaSkillID:   ms.ViaSkillID,
			Contribution: ms.Contribution,
		})
	}
	for _, ms := range res.MissingSkills {
		out.MissingSkills = append(out.MissingSkills, MissingSkillResponse{
			SkillID:       ms.SkillID,
			RequiredLevel: ms.RequiredLevel,
			Weight:        ms.Weight,
		})
	}
	for _, st := range statements {
		out.Explanation = append(out.Explanation, StatementResponse{
			Factor:       st.Factor,
			Contribution: st.Contribution,
			Qualifier:    st.Qualifier,
		})
	}
	return out
}

// MatchResultsFrom derives each result's explanation on the way out, so
// ranked lists carry the same rationale a single score does.
func MatchResultsFrom(results []match.Result) []MatchResultResponse {
	out := make([]MatchResultResponse, 0, len(results))
	for _, res := range results {
		out = append(out, MatchResultFrom(res, matching.Explain(res)))
	}
	return out
}

type GapResponse struct {
	SkillID          string  `json:"skill_id"`
	RequiredLevel    int     `json:"required_level"`
	BestRelatedLevel int     `json:"best_related_level"`
	BridgingSkillID  string  `json:"bridging_skill_id,omitempty"`
	Demand           float64 `json:"demand"`
	Difficulty       float64 `json:"difficulty"`
	Weight           float64 `json:"weight"`
}

func GapsFrom(gaps []match.Gap) []GapResponse {
	out := make([]GapResponse, 0, len(gaps))
	for _, g := range gaps {
		out = append(out, GapResponse{
			SkillID:          g.SkillID,
			RequiredLevel:    g.RequiredLevel,
			BestRelatedLevel: g.BestRelatedLevel,
			BridgingSkillID:  g.BridgingSkillID,
			Demand:           g.Demand,
			Difficulty:       g.Difficulty,
			Weight:           g.Weight,
		})
	}
	return out
}

type SkillResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category,omitempty"`
	Aliases    []string `json:"aliases,omitempty"`
	Difficulty int      `json:"difficulty"`
	Demand     float64  `json:"demand"`
}

func SkillFrom(s skill.Skill) SkillResponse {
	return SkillResponse{
		ID:         s.ID,
		Name:       s.Name,
		Category:   s.Category,
		Aliases:    s.Aliases,
		Difficulty: s.Difficulty,
		Demand:     s.Demand,
	}
}

type RelationshipResponse struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
}

type CatalogResponse struct {
	Skills        []SkillResponse        `json:"skills"`
	Relationships []RelationshipResponse `json:"relationships"`
}

type RelatedSkillsResponse struct {
	SkillID string   `json:"skill_id"`
	Skills  []string `json:"skills"`
}

type StrategyWeightsResponse struct {
	SkillOverlap       float64 `json:"skill_overlap"`
	ExperienceFit      float64 `json:"experience_fit"`
	LocationFit        float64 `json:"location_fit"`
	SemanticSimilarity float64 `json:"semantic_similarity"`
	CompensationFit    float64 `json:"compensation_fit"`
}

type StrategyResponse struct {
	Name    string                  `json:"name"`
	Weights StrategyWeightsResponse `json:"weights"`
}

func StrategiesFrom(infos []usecase.StrategyInfo) []StrategyResponse {
	out := make([]StrategyResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, StrategyResponse{
			Name: info.Name,
			Weights: StrategyWeightsResponse{
				SkillOverlap:       info.Weights.SkillOverlap,
				ExperienceFit:      info.Weights.ExperienceFit,
				LocationFit:        info.Weights.LocationFit,
				SemanticSimilarity: info.Weights.SemanticSimilarity,
				CompensationFit:    info.Weights.CompensationFit,
			},
		})
	}
	return out
}
