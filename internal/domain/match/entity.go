package match

import "time"

type Confidence string

const (
	ConfidenceHigh    Confidence = "HIGH"
	ConfidenceMedium  Confidence = "MEDIUM"
	ConfidenceLow     Confidence = "LOW"
	ConfidenceVeryLow Confidence = "VERY_LOW"
)

// ConfidenceFor buckets an overall score using fixed thresholds.
func ConfidenceFor(score float64) Confidence {
	switch {
	case score >= 0.75:
		return ConfidenceHigh
	case score >= 0.55:
		return ConfidenceMedium
	case score >= 0.35:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

type MatchKind string

const (
	MatchExact        MatchKind = "exact"
	MatchEquivalent   MatchKind = "equivalent"
	MatchPrerequisite MatchKind = "prerequisite"
)

type MatchedSkill struct {
	SkillID      string
	Kind         MatchKind
	ViaSkillID   string  // substitute or bridging skill, empty for exact matches
	Contribution float64 // weight credited toward the overlap numerator
}

type MissingSkill struct {
	SkillID       string
	RequiredLevel int
	Weight        float64
}

type FactorScore struct {
	Name         string
	Score        float64 // [0,1]
	Weight       float64 // normalized strategy weight
	Contribution float64 // Score * Weight
}

type Result struct {
	ProfileID     string
	JobID         string
	Strategy      string
	OverallScore  float64
	Confidence    Confidence
	Factors       []FactorScore
	MatchedSkills []MatchedSkill
	MissingSkills []MissingSkill
	PostedAt      time.Time
}

type Gap struct {
	SkillID          string
	RequiredLevel    int
	BestRelatedLevel int     // candidate's best proficiency among equivalents and prerequisites
	BridgingSkillID  string  // nearest prerequisite the candidate already holds, empty if none
	Demand           float64
	Difficulty       float64 // estimated acquisition difficulty in tier units
	Weight           float64
}

type Statement struct {
	Factor       string
	Contribution float64
	Qualifier    string
}
