package matching

// Tunables are the empirically chosen scoring constants. They are
// configuration, not truths: deployments may override them, and the defaults
// here are the values the factor algorithms were calibrated with.
type Tunables struct {
	// EquivalentWeight is the credit for satisfying a required skill through
	// an equivalent substitute instead of an exact match.
	EquivalentWeight float64
	// PrerequisiteCredit is the partial credit for a missing skill whose
	// direct prerequisites the candidate already holds.
	PrerequisiteCredit float64
	// PreferredWeight blends preferred-skill coverage into the overlap score.
	PreferredWeight float64
	// OverqualFloor is the lowest experience-fit score overqualification can
	// reach, hit at twice the required maximum.
	OverqualFloor float64
	// CompensationMaxGap is the relative gap between range edges at which
	// compensation fit bottoms out at zero.
	CompensationMaxGap float64
}

func DefaultTunables() Tunables {
	return Tunables{
		EquivalentWeight:   0.8,
		PrerequisiteCredit: 0.4,
		PreferredWeight:    0.3,
		OverqualFloor:      0.6,
		CompensationMaxGap: 0.5,
	}
}

func (t Tunables) sanitized() Tunables {
	def := DefaultTunables()
	if t.EquivalentWeight < 0 || t.EquivalentWeight > 1 {
		t.EquivalentWeight = def.EquivalentWeight
	}
	if t.PrerequisiteCredit < 0 || t.PrerequisiteCredit > 1 {
		t.PrerequisiteCredit = def.PrerequisiteCredit
	}
	if t.PreferredWeight < 0 || t.PreferredWeight > 1 {
		t.PreferredWeight = def.PreferredWeight
	}
	if t.OverqualFloor < 0 || t.OverqualFloor > 1 {
		t.OverqualFloor = def.OverqualFloor
	}
	if t.CompensationMaxGap <= 0 {
		t.CompensationMaxGap = def.CompensationMaxGap
	}
	return t
}
