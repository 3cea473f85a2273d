package job

import "time"

type SkillRequirement struct {
	SkillID        string
	MinProficiency int     // 0..100
	Weight         float64 // importance; non-positive values count as 1.0
}

type Job struct {
	ID              string
	Title           string
	Company         string
	RequiredSkills  []SkillRequirement
	PreferredSkills []string
	ExperienceMin   int
	ExperienceMax   int // 0 or below ExperienceMin means open-ended
	Locations       []string
	CompMin         int64
	CompMax         int64 // 0 means no published range
	Embedding       []float64
	PostedAt        time.Time
}
