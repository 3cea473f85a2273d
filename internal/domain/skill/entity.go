package skill

import "strings"

type RelationKind string

const (
	ParentOf       RelationKind = "PARENT_OF"
	EquivalentTo   RelationKind = "EQUIVALENT_TO"
	PrerequisiteOf RelationKind = "PREREQUISITE_OF"
)

func ParseRelationKind(raw string) (RelationKind, bool) {
	switch RelationKind(strings.ToUpper(strings.TrimSpace(raw))) {
	case ParentOf:
		return ParentOf, true
	case EquivalentTo:
		return EquivalentTo, true
	case PrerequisiteOf:
		return PrerequisiteOf, true
	default:
		return "", false
	}
}

type Skill struct {
	ID         string
	Name       string
	Category   string
	Aliases    []string
	Difficulty int     // acquisition tier, 1 (trivial) to 10 (expert)
	Demand     float64 // market demand signal in [0,1]
}

type Relationship struct {
	Source string
	Target string
	Kind   RelationKind
	Weight float64 // [0,1]
}
