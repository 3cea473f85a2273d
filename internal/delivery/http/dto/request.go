package dto

import (
	"time"

	"skillmatch/internal/domain/job"
	"skillmatch/internal/domain/profile"
	"skillmatch/internal/domain/skill"
	"skillmatch/internal/usecase"
)

type ProficiencyRequest struct {
	SkillID     string `json:"skill_id"`
	Proficiency int    `json:"proficiency"`
	Verified    bool   `json:"verified"`
}

type ProfileRequest struct {
	ID                 string               `json:"id"`
	Skills             []ProficiencyRequest `json:"skills"`
	YearsExperience    int                  `json:"years_experience"`
	PreferredLocations []string             `json:"preferred_locations"`
	DesiredCompMin     int64                `json:"desired_comp_min"`
	DesiredCompMax     int64                `json:"desired_comp_max"`
	Embedding          []float64            `json:"embedding"`
	Summary            string               `json:"summary"`
}

func (r ProfileRequest) ToInput() usecase.ProfileInput {
	p := profile.Profile{
		ID:                 r.ID,
		Skills:             make([]profile.SkillLevel, 0, len(r.Skills)),
		YearsExperience:    r.YearsExperience,
		PreferredLocations: r.PreferredLocations,
		DesiredCompMin:     r.DesiredCompMin,
		DesiredCompMax:     r.DesiredCompMax,
		Embedding:          r.Embedding,
	}
	for _, s := range r.Skills {
		p.Skills = append(p.Skills, profile.SkillLevel{
			SkillID:     s.SkillID,
			Proficiency: s.Proficiency,
			Verified:    s.Verified,
		})
	}
	return usecase.ProfileInput{Profile: p, Summary: r.Summary}
}

type RequirementRequest struct {
	SkillID        string  `json:"skill_id"`
	MinProficiency int     `json:"min_proficiency"`
	Weight         float64 `json:"weight"`
}

type JobRequest struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Company         string               `json:"company"`
	RequiredSkills  []RequirementRequest `json:"required_skills"`
	PreferredSkills []string             `json:"preferred_skills"`
	ExperienceMin   int                  `json:"experience_min"`
	ExperienceMax   int                  `json:"experience_max"`
	Locations       []string             `json:"locations"`
	CompMin         int64                `json:"comp_min"`
	CompMax         int64                `json:"comp_max"`
	Embedding       []float64            `json:"embedding"`
	Description     string               `json:"description"`
	PostedAt        time.Time            `json:"posted_at"`
}

func (r JobRequest) ToInput() usecase.JobInput {
	j := job.Job{
		ID:              r.ID,
		Title:           r.Title,
		Company:         r.Company,
		RequiredSkills:  make([]job.SkillRequirement, 0, len(r.RequiredSkills)),
		PreferredSkills: r.PreferredSkills,
		ExperienceMin:   r.ExperienceMin,
		ExperienceMax:   r.ExperienceMax,
		Locations:       r.Locations,
		CompMin:         r.CompMin,
		CompMax:         r.CompMax,
		Embedding:       r.Embedding,
		PostedAt:        r.PostedAt,
	}
	for _, req := range r.RequiredSkills {
		j.RequiredSkills = append(j.RequiredSkills, job.SkillRequirement{
			SkillID:        req.SkillID,
			MinProficiency: req.MinProficiency,
			Weight:         req.Weight,
		})
	}
	return usecase.JobInput{Job: j, Description: r.Description}
}

type ScoreRequest struct {
	Profile  ProfileRequest `json:"profile"`
	Job      JobRequest     `json:"job"`
	Strategy string         `json:"strategy"`
}

type GapRequest struct {
	Profile ProfileRequest `json:"profile"`
	Job     JobRequest     `json:"job"`
}

type RankJobsRequest struct {
	Profile   ProfileRequest `json:"profile"`
	Jobs      []JobRequest   `json:"jobs"`
	Strategy  string         `json:"strategy"`
	Diversify bool           `json:"diversify"`
}

type RankProfilesRequest struct {
	Job      JobRequest       `json:"job"`
	Profiles []ProfileRequest `json:"profiles"`
	Strategy string           `json:"strategy"`
}

type SkillRequest struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Aliases    []string `json:"aliases"`
	Difficulty int      `json:"difficulty"`
	Demand     float64  `json:"demand"`
}

func (r SkillRequest) ToDomain() skill.Skill {
	return skill.Skill{
		ID:         r.ID,
		Name:       r.Name,
		Category:   r.Category,
		Aliases:    r.Aliases,
		Difficulty: r.Difficulty,
		Demand:     r.Demand,
	}
}

type RelationshipRequest struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
}

// ToDomain keeps an unknown kind verbatim so the taxonomy store rejects it
// with its own error.
func (r RelationshipRequest) ToDomain() skill.Relationship {
	kind := skill.RelationKind(r.Kind)
	if parsed, ok := skill.ParseRelationKind(r.Kind); ok {
		kind = parsed
	}
	return skill.Relationship{
		Source: r.Source,
		Target: r.Target,
		Kind:   kind,
		Weight: r.Weight,
	}
}
