package profile

type SkillLevel struct {
	SkillID     string
	Proficiency int // 0..100
	Verified    bool
}

type Profile struct {
	ID                 string
	Skills             []SkillLevel
	YearsExperience    int
	PreferredLocations []string
	DesiredCompMin     int64
	DesiredCompMax     int64 // 0 means no stated range
	Embedding          []float64
}
