package matching

import (
	"sort"

	"skillmatch/internal/domain/match"
)

const (
	QualifierPositive = "positive"
	QualifierNeutral  = "neutral"
	QualifierNegative = "negative"
)

// Explain turns a result's stored factor scores into ordered structured
// statements. It reads only what Score already computed: no recomputation,
// no graph access, no side effects.
func Explain(res match.Result) []match.Statement {
	out := make([]match.Statement, 0, len(res.Factors))
	for _, f := range res.Factors {
		q := QualifierNeutral
		switch {
		case f.Score >= 0.6:
			q = QualifierPositive
		case f.Score < 0.4:
			q = QualifierNegative
		}
		out = append(out, match.Statement{Factor: f.Name, Contribution: f.Contribution, Qualifier: q})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Contribution != out[j].Contribution {
			return out[i].Contribution > out[j].Contribution
		}
		return out[i].Factor < out[j].Factor
	})
	return out
}
