package matching

import "errors"

var (
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrEmptyRequirements = errors.New("job posting has no required skills")
	ErrUnknownStrategy   = errors.New("unknown scoring strategy")
	ErrInvalidWeights    = errors.New("strategy weights must be non-negative with a positive sum")
)
