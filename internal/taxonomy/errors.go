package taxonomy

import "errors"

var (
	ErrDuplicateSkill        = errors.New("skill already exists")
	ErrUnknownSkill          = errors.New("unknown skill")
	ErrCycle                 = errors.New("relationship would introduce a cycle")
	ErrSelfLoop              = errors.New("relationship endpoints must differ")
	ErrInvalidKind           = errors.New("invalid relationship kind")
	ErrInvalidWeight         = errors.New("relationship weight must be within [0,1]")
	ErrDuplicateRelationship = errors.New("relationship already exists")
	ErrUnknownRelationship   = errors.New("unknown relationship")
	ErrEmptySkillID          = errors.New("empty skill id")
	ErrInvalidDifficulty     = errors.New("skill difficulty must be within [1,10]")
	ErrInvalidDemand         = errors.New("skill demand must be within [0,1]")
)
